package apperrors

import "errors"

// Sentinel errors for the domain failure taxonomy. Services wrap these with
// %w and context; handlers translate them to HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("invalid input")
	ErrAccessDenied = errors.New("access denied")
	ErrConflict     = errors.New("conflict")
)
