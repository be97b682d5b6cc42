package contract

// ErrorCode classifies request-level failures that are not domain
// validation errors.
type ErrorCode string

const (
	ErrInvalidRange   ErrorCode = "INVALID_RANGE"
	ErrInvalidScope   ErrorCode = "INVALID_SCOPE"
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrNoAllocation   ErrorCode = "NO_ALLOCATION"
	ErrNotTracking    ErrorCode = "NOT_TRACKING"
)

type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NewError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}
