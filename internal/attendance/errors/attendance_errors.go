package attendanceerrors

import (
	"net/http"

	"go-fieldtrack/internal/shared/apperror"
)

var (
	ErrAlreadyPunchedIn = apperror.New(
		apperror.CodeConflict,
		"You have already punched in today",
		http.StatusConflict,
	)
	ErrNotPunchedIn = apperror.New(
		apperror.CodeInvalidState,
		"You have not punched in today",
		http.StatusConflict,
	)
	ErrAlreadyPunchedOut = apperror.New(
		apperror.CodeInvalidState,
		"You have already punched out today",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
