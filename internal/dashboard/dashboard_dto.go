package dashboard

import (
	"go-fieldtrack/internal/attendance"
	"go-fieldtrack/internal/geo"
)

type StatsResponse struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	TasksDone int `json:"tasksDone"`
}

type RosterEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
	// Online is true while the employee has punched in today and not out.
	Online bool `json:"online"`
}

type MarkerResponse struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Details   string  `json:"details,omitempty"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Time      string  `json:"time"`
	Timestamp int64   `json:"timestamp"`
}

type MapResponse struct {
	Center  geo.Coordinate   `json:"center"`
	Zoom    int              `json:"zoom"`
	Markers []MarkerResponse `json:"markers"`
}

type OverviewResponse struct {
	Date   string        `json:"date"`
	Stats  StatsResponse `json:"stats"`
	Roster []RosterEntry `json:"roster"`
	Map    MapResponse   `json:"map"`
}

type HomeResponse struct {
	Greeting     string              `json:"greeting"`
	Name         string              `json:"name"`
	Details      string              `json:"details,omitempty"`
	Date         string              `json:"date"`
	State        attendance.DayState `json:"state"`
	EntryTime    string              `json:"entry_time"`
	Hours        *float64            `json:"hours,omitempty"`
	PendingTasks int                 `json:"pending_tasks"`
}
