package services

import "errors"

var (
	// ErrInvalidToken is returned by every TokenVerifier when a token cannot
	// be trusted. It always means "unauthenticated", never a server fault.
	ErrInvalidToken = errors.New("invalid identity token")

	// ErrMalformedResponse means the model answered but not in the shape asked for.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrClassroomUnavailable means the classroom API could not be read.
	ErrClassroomUnavailable = errors.New("classroom unavailable")
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }
