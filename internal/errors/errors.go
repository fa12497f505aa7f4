package errors

import "fmt"

// Error codes returned in API responses.
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeUpgradeRequired = "UPGRADE_REQUIRED"
)

// AppError carries an error code and HTTP status alongside the message.
type AppError struct {
	Code    string // machine-readable code (e.g. "UPGRADE_REQUIRED")
	Message string // human-readable message
	Status  int    // HTTP status code
	Err     error  // wrapped underlying error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a NOT_FOUND error for a missing resource.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a VALIDATION_ERROR for a rejected field.
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a BAD_REQUEST error.
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewUnauthorizedError creates an UNAUTHORIZED error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// NewUpgradeRequiredError signals that the free-usage gate refused access and
// the caller should present the upgrade prompt.
func NewUpgradeRequiredError(questionID string) *AppError {
	return &AppError{
		Code:    ErrCodeUpgradeRequired,
		Message: fmt.Sprintf("daily free question limit reached, upgrade to access question %s", questionID),
		Status:  402,
	}
}

// IsUpgradeRequired reports whether err is a gate refusal.
func IsUpgradeRequired(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == ErrCodeUpgradeRequired
}
