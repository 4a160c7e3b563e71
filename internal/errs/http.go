// Package errs defines the structured error type returned to API clients.
//
// Handlers and services return *HTTPError to stop processing a request with a
// specific status. The global error handler is the only place that turns one
// into a response body, so every failure a client sees has the same shape:
//
//	{ "code": "NOT_FOUND", "message": "No such invoice: 7", "status": 404, ... }
package errs

import "strings"

// FieldError points at a single request field that the store rejected.
//
// Example:
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the column/body key the error relates to (e.g. "name").
	Field string `json:"field"`

	// Error is the human-readable reason.
	Error string `json:"error"`
}

// HTTPError is the structured error carried from a handler to the responder.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND", "COMPANY_ALREADY_EXISTS").
//   - Message: human-friendly message, surfaced verbatim.
//   - Status: HTTP status code; the response status line always matches it.
//   - Override: hint for clients that the message is safe to show as-is.
//   - Errors: per-field errors, set for not-null violations.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level errors derived from store constraints.
	Errors []FieldError `json:"errors"`
}

// Error returns the client-visible message, so logging the error shows the same
// text the client received.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It compares the type only, not Code or Status, so errors.Is(err, &HTTPError{})
// answers "was this already classified?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced. The receiver is not mutated.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
// Example:
//
//	"Not Found" -> "NOT_FOUND"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
