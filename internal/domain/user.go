package domain

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Point is a bare coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StampedPoint is a coordinate with the moment it was reported, in Unix
// milliseconds.
type StampedPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp int64   `json:"timestamp"`
}

type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Role         Role          `json:"role"`
	Phone        string        `json:"phone"`
	LastLocation *StampedPoint `json:"lastLocation,omitempty"`
	Details      string        `json:"details,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) Clone() User {
	if u.LastLocation != nil {
		loc := *u.LastLocation
		u.LastLocation = &loc
	}
	return u
}
