package domain

import "time"

// Snapshot is the whole application state as it is persisted: one record
// with the three collections, in insertion order.
type Snapshot struct {
	Users      []User             `json:"users"`
	Tasks      []Task             `json:"tasks"`
	Attendance []AttendanceRecord `json:"attendance"`
}

// Clone returns a deep copy that shares no slices or pointers with s.
// Nil collections stay nil.
func (s Snapshot) Clone() Snapshot {
	var out Snapshot
	if s.Users != nil {
		out.Users = make([]User, len(s.Users))
		for i, u := range s.Users {
			out.Users[i] = u.Clone()
		}
	}
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		for i, t := range s.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	if s.Attendance != nil {
		out.Attendance = make([]AttendanceRecord, len(s.Attendance))
		for i, a := range s.Attendance {
			out.Attendance[i] = a.Clone()
		}
	}
	return out
}

func (s Snapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Employees returns the EMPLOYEE entries in roster order.
func (s Snapshot) Employees() []User {
	out := make([]User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.Role == RoleEmployee {
			out = append(out, u)
		}
	}
	return out
}

// AttendanceFor returns the record for (userID, date), if any.
func (s Snapshot) AttendanceFor(userID, date string) (AttendanceRecord, bool) {
	for _, a := range s.Attendance {
		if a.UserID == userID && a.Date == date {
			return a, true
		}
	}
	return AttendanceRecord{}, false
}

// Millis converts t to the Unix millisecond timestamps stored in snapshots.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis is the inverse of Millis.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
