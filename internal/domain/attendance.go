package domain

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	// Declared by the data model; no operation assigns them.
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceOnLeave AttendanceStatus = "ON_LEAVE"
)

// PunchEvent is one punch-in or punch-out capture.
type PunchEvent struct {
	Timestamp int64 `json:"timestamp"`
	Location  Point `json:"location"`
}

// AttendanceRecord is unique per (UserID, Date).
type AttendanceRecord struct {
	ID       string           `json:"id"`
	UserID   string           `json:"userId"`
	Date     string           `json:"date"`
	PunchIn  *PunchEvent      `json:"punchIn,omitempty"`
	PunchOut *PunchEvent      `json:"punchOut,omitempty"`
	Status   AttendanceStatus `json:"status"`
}

// OnDuty reports a day that was opened and not yet closed.
func (a AttendanceRecord) OnDuty() bool {
	return a.PunchIn != nil && a.PunchOut == nil
}

func (a AttendanceRecord) Clone() AttendanceRecord {
	if a.PunchIn != nil {
		in := *a.PunchIn
		a.PunchIn = &in
	}
	if a.PunchOut != nil {
		out := *a.PunchOut
		a.PunchOut = &out
	}
	return a
}
