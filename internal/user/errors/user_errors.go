package usererrors

import (
	"net/http"

	"go-fieldtrack/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrInvalidRole = apperror.Validation("role must be ADMIN or EMPLOYEE")
)
