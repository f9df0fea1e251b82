package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrSessionChanged = New(
		CodeConflict,
		"Your session changed, please try again",
		http.StatusConflict,
	)

	ErrPersistence = New(
		CodeServiceUnavailable,
		"Could not save changes, please try again",
		http.StatusServiceUnavailable,
	)
)

// Validation builds an INVALID_INPUT error with a custom message.
func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func RequiredField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is invalid", field))
}
