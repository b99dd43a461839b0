package errors

// Common error codes shared across the service.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"

	// Portal-specific codes.
	ErrParse      = "PARSE_ERROR"
	ErrStorage    = "STORAGE_ERROR"
	ErrValidation = "VALIDATION_ERROR"
)
