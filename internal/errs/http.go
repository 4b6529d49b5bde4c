package errs

import "net/http"

// Status maps a kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Duplicate:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case Internal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Body is the JSON shape written for every failed request.
type Body struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// Render returns the status and body for e. Internal errors never expose
// their cause.
func Render(e *Error) (int, Body) {
	status := Status(e.Kind)
	if e.Kind == Internal {
		return status, Body{Error: http.StatusText(status)}
	}
	return status, Body{Error: e.Message, Fields: e.Fields}
}
