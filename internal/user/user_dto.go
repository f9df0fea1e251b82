package user

import (
	"time"

	"go-fieldtrack/internal/domain"
)

type LastLocationResponse struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	At        string  `json:"at"`
	Timestamp int64   `json:"timestamp"`
}

type UserResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Role         string                `json:"role"`
	Phone        string                `json:"phone"`
	Details      string                `json:"details,omitempty"`
	LastLocation *LastLocationResponse `json:"last_location,omitempty"`
}

// Label is how the user appears in pickers, e.g. "Rohan (Field) (Sales Executive)".
func (u UserResponse) Label() string {
	if u.Details == "" {
		return u.Name
	}
	return u.Name + " (" + u.Details + ")"
}

func mapToResponse(u domain.User, loc *time.Location) UserResponse {
	resp := UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Role:    string(u.Role),
		Phone:   u.Phone,
		Details: u.Details,
	}
	if u.LastLocation != nil {
		resp.LastLocation = &LastLocationResponse{
			Lat:       u.LastLocation.Lat,
			Lng:       u.LastLocation.Lng,
			At:        domain.FromMillis(u.LastLocation.Timestamp).In(loc).Format(time.RFC3339),
			Timestamp: u.LastLocation.Timestamp,
		}
	}
	return resp
}
