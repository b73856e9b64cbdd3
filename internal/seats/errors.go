package seats

import "errors"

var (
	// ErrSeatNotFound is returned when a transition targets a seat with no
	// session and no student id to lazily create one.
	ErrSeatNotFound = errors.New("seat session not found")
	// ErrStudentNotFound is returned when the referenced student does not
	// exist in the organization.
	ErrStudentNotFound = errors.New("student not found")
	// ErrInvalidInput is returned for requests rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")
)
