package taskerrors

import (
	"net/http"

	"go-fieldtrack/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrTaskAlreadyCompleted = apperror.New(
		apperror.CodeInvalidState,
		"Task is already completed",
		http.StatusConflict,
	)
	ErrAssigneeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Assignee must be an existing employee",
		http.StatusBadRequest,
	)
	ErrTitleRequired    = apperror.RequiredField("Title")
	ErrAssigneeRequired = apperror.RequiredField("Assigned To")
	ErrInvalidDueDate   = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
