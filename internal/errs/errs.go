// Package errs defines the closed set of error kinds produced by the
// service layer and the field-level violations carried by validation
// failures. The HTTP boundary maps each kind to exactly one status code.
package errs

import (
	"errors"
	"strings"
)

// Kind classifies an application error. The set is closed; Status
// handles every value.
type Kind int

const (
	// Internal is the zero value so unclassified errors never leak as 4xx.
	Internal Kind = iota
	Validation
	Duplicate
	NotFound
	Authentication
	Authorization
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Duplicate:
		return "duplicate"
	case NotFound:
		return "not_found"
	case Authentication:
		return "authentication"
	case Authorization:
		return "authorization"
	default:
		return "internal"
	}
}

// Violation kinds used in FieldError.Kind.
const (
	ViolationRequired      = "required"
	ViolationTooLong       = "too_long"
	ViolationInvalidFormat = "invalid_format"
	ViolationOutOfRange    = "out_of_range"
	ViolationNotAllowed    = "not_allowed"
)

// FieldError is a single (field, violation) pair.
//
//	{ "field": "email", "kind": "invalid_format", "message": "Invalid email format" }
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error is the application error value. Err, when set, is the cause and is
// never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match when target is an *Error of the same kind, so callers
// can write errors.Is(err, errs.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == ""
}

// Kind sentinels for errors.Is.
var (
	ErrValidation     = &Error{Kind: Validation}
	ErrDuplicate      = &Error{Kind: Duplicate}
	ErrNotFound       = &Error{Kind: NotFound}
	ErrAuthentication = &Error{Kind: Authentication}
	ErrAuthorization  = &Error{Kind: Authorization}
)

// NewValidationError builds a validation error from field violations. The
// message joins the individual messages the way API clients expect.
func NewValidationError(fields []FieldError) *Error {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	msg := strings.Join(msgs, "; ")
	if msg == "" {
		msg = "Invalid input data"
	}
	return &Error{Kind: Validation, Message: msg, Fields: fields}
}

// NewBadRequest is a validation error without field detail (malformed body).
func NewBadRequest(message string) *Error {
	return &Error{Kind: Validation, Message: message}
}

func NewDuplicate(message string) *Error {
	return &Error{Kind: Duplicate, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

func NewAuthentication(message string) *Error {
	return &Error{Kind: Authentication, Message: message}
}

func NewAuthorization(message string) *Error {
	return &Error{Kind: Authorization, Message: message}
}

// Wrap marks err as an internal failure with a client-safe message.
func Wrap(err error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
