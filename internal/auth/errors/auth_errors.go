package autherrors

import (
	"net/http"

	"go-fieldtrack/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials. Try 9999999999 (Admin) or 8888888888 (Employee)",
		http.StatusUnauthorized,
	)
	ErrPhoneRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please enter your phone number",
		http.StatusBadRequest,
	)
	ErrNoSession = apperror.New(
		apperror.CodeUnauthorized,
		"Please sign in first",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)
)
