package auth

import "go-fieldtrack/internal/domain"

type LoginRequest struct {
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"required,oneof=ADMIN EMPLOYEE"`
}

type UserResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Role    domain.Role `json:"role"`
	Phone   string      `json:"phone"`
	Details string      `json:"details,omitempty"`
}

type SessionResponse struct {
	User UserResponse `json:"user"`
	// Landing is the page the client opens after sign-in.
	Landing     string   `json:"landing"`
	Permissions []string `json:"permissions"`
}

const (
	LandingAdmin    = "/admin"
	LandingEmployee = "/app"
)

func landingFor(role domain.Role) string {
	if role == domain.RoleAdmin {
		return LandingAdmin
	}
	return LandingEmployee
}

func mapToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Role:    u.Role,
		Phone:   u.Phone,
		Details: u.Details,
	}
}
