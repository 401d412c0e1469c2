package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindBadRequest
)

const (
	notFoundMessage = "not found"
	otherMessage    = "Something went wrong!"
)

// Error is the only error type that crosses the HTTP boundary. Message is
// safe to show to clients; Err is kept for server-side logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: notFoundMessage}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Other(err error) *Error {
	return &Error{Kind: KindOther, Message: otherMessage, Err: err}
}

func Otherf(format string, args ...any) *Error {
	return Other(fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Public returns the text clients are allowed to see.
func (e *Error) Public() string {
	switch e.Kind {
	case KindNotFound:
		return notFoundMessage
	case KindBadRequest:
		return e.Message
	default:
		return otherMessage
	}
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// As returns err as an *Error, treating anything unclassified as Other.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Other(err)
}

func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}
