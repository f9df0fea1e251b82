package attendance

import (
	"math"
	"time"

	"go-fieldtrack/internal/domain"
)

// PunchRequest is the position fix the client obtained for a punch. A
// client that could not get one sends location_error instead.
type PunchRequest struct {
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	LocationError string   `json:"location_error"`
}

type ListFilter struct {
	Date   string
	UserID string
}

type PunchResponse struct {
	At        string  `json:"at"`
	Timestamp int64   `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type AttendanceResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name,omitempty"`
	Date        string         `json:"date"`
	PunchIn     *PunchResponse `json:"punch_in,omitempty"`
	PunchOut    *PunchResponse `json:"punch_out,omitempty"`
	Status      string         `json:"status"`
	HoursWorked *float64       `json:"hours_worked,omitempty"`
}

// DayState is where the user stands in today's punch cycle.
type DayState string

const (
	DayIdle      DayState = "IDLE"
	DayPunchedIn DayState = "PUNCHED_IN"
	DayCompleted DayState = "COMPLETED"
)

type TodayResponse struct {
	Date      string              `json:"date"`
	State     DayState            `json:"state"`
	EntryTime string              `json:"entry_time"`
	Hours     *float64            `json:"hours,omitempty"`
	Record    *AttendanceResponse `json:"record,omitempty"`
}

// DayStateOf derives the punch cycle state from today's record, if any.
func DayStateOf(rec *domain.AttendanceRecord) DayState {
	switch {
	case rec == nil || rec.PunchIn == nil:
		return DayIdle
	case rec.PunchOut == nil:
		return DayPunchedIn
	default:
		return DayCompleted
	}
}

// HoursWorked is the punch-in to punch-out span in hours, to one decimal.
func HoursWorked(rec domain.AttendanceRecord) (float64, bool) {
	if rec.PunchIn == nil || rec.PunchOut == nil {
		return 0, false
	}
	ms := rec.PunchOut.Timestamp - rec.PunchIn.Timestamp
	return math.Round(float64(ms)/float64(time.Hour.Milliseconds())*10) / 10, true
}

// EntryTime formats the punch-in as HH:MM in loc, or "--:--" without one.
func EntryTime(rec *domain.AttendanceRecord, loc *time.Location) string {
	if rec == nil || rec.PunchIn == nil {
		return "--:--"
	}
	return domain.FromMillis(rec.PunchIn.Timestamp).In(loc).Format("15:04")
}

func mapPunch(p *domain.PunchEvent, loc *time.Location) *PunchResponse {
	if p == nil {
		return nil
	}
	return &PunchResponse{
		At:        domain.FromMillis(p.Timestamp).In(loc).Format(time.RFC3339),
		Timestamp: p.Timestamp,
		Lat:       p.Location.Lat,
		Lng:       p.Location.Lng,
	}
}

func mapToResponse(a domain.AttendanceRecord, userName string, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		UserName: userName,
		Date:     a.Date,
		PunchIn:  mapPunch(a.PunchIn, loc),
		PunchOut: mapPunch(a.PunchOut, loc),
		Status:   string(a.Status),
	}
	if h, ok := HoursWorked(a); ok {
		resp.HoursWorked = &h
	}
	return resp
}
