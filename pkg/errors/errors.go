package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is what the HTTP front end reports to clients. Code is stable across
// releases; Message is for humans.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Code so a cause-carrying copy still matches its base error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

var (
	ErrScheduleNotFound = New("SCHEDULE_NOT_FOUND", http.StatusNotFound, "schedule not found")
	ErrInvalidRequest   = New("INVALID_REQUEST", http.StatusBadRequest, "courses, students and classrooms files are required")
	ErrInvalidRoster    = New("INVALID_ROSTER", http.StatusBadRequest, "could not read roster")

	// Generation preconditions. The engine refuses to start on these.
	ErrNoCourses    = New("NO_COURSES", http.StatusPreconditionFailed, "roster has no courses")
	ErrNoClassrooms = New("NO_CLASSROOMS", http.StatusPreconditionFailed, "roster has no classrooms")
	ErrNoTimeSlots  = New("NO_TIME_SLOTS", http.StatusPreconditionFailed, "at least one slot per day is required")
	ErrInvalidDays  = New("INVALID_DAYS", http.StatusPreconditionFailed, "number of exam days must be positive")

	ErrExportFailed = New("EXPORT_FAILED", http.StatusInternalServerError, "could not render schedule")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// WithCause returns a copy of base carrying err.
func WithCause(base *Error, err error) *Error {
	if base == nil {
		return nil
	}
	clone := *base
	clone.Err = err
	return &clone
}

// FromError returns the first *Error in err's chain, or ErrInternal wrapping
// err.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return WithCause(ErrInternal, err)
}

// Clone copies err, replacing the message when one is given.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
