package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
	assert.Equal(t, "", MakeUpperCaseWithUnderscores(""))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("No such company: ibm", false, nil)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "No such company: ibm", err.Error())

	code := "COMPANY_NOT_FOUND"
	custom := NewNotFoundError("gone", true, &code)
	assert.Equal(t, "COMPANY_NOT_FOUND", custom.Code)
	assert.True(t, custom.Override)
}

func TestNewBadRequestError_FieldErrors(t *testing.T) {
	fields := []FieldError{{Field: "name", Error: "is required"}}
	err := NewBadRequestError("The Name is required", true, nil, fields)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, fields, err.Errors)
}

func TestNewInternalServerError_HidesDetails(t *testing.T) {
	err := NewInternalServerError()

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}

func TestHTTPError_IsMatchesType(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("x", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHTTPError_WithMessageCopies(t *testing.T) {
	base := NewNotFoundError("original", false, nil)
	copied := base.WithMessage("changed")

	assert.Equal(t, "original", base.Message)
	assert.Equal(t, "changed", copied.Message)
	assert.Equal(t, base.Status, copied.Status)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("id must be an integer"))

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: id must be an integer", err.Message)
}
