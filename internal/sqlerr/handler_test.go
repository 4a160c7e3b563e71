package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/biztime/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_ForeignKeyOnCompCode(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "invoices" violates foreign key constraint "invoices_comp_code_fkey"`,
		TableName:      "invoices",
		ConstraintName: "invoices_comp_code_fkey",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("repository: create invoice: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "COMPANY_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Company does not exist", httpErr.Message)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	t.Run("column from constraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", TableName: "companies", ConstraintName: "companies_name_key"}

		httpErr := asHTTPError(t, HandleError(pgErr))

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "COMPANY_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Company with this Name already exists", httpErr.Message)
		assert.True(t, httpErr.Override)
	})

	t.Run("column from detail on primary key", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			TableName:      "companies",
			ConstraintName: "companies_pkey",
			Detail:         "Key (code)=(ibm) already exists.",
		}

		httpErr := asHTTPError(t, HandleError(pgErr))

		assert.Equal(t, "A Company with this Code already exists", httpErr.Message)
	})
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "companies", ColumnName: "name"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "COMPANY_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Name is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "name", Error: "is required"}, httpErr.Errors[0])
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", TableName: "invoices", ConstraintName: "invoices_amt_check"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "INVOICE_INVALID", httpErr.Code)
	assert.Equal(t, "The Amt value does not meet required conditions", httpErr.Message)
}

func TestHandleError_UnknownPgErrorIsInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "XX000", Message: "internal details that must not leak"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "internal details")
}

func TestHandleError_NoRows(t *testing.T) {
	for _, err := range []error{pgx.ErrNoRows, sql.ErrNoRows, fmt.Errorf("wrapped: %w", pgx.ErrNoRows)} {
		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("No such invoice: 9", false, nil)

	assert.Same(t, original, HandleError(fmt.Errorf("wrapped: %w", original)))
}

func TestHandleError_PlainErrorIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset by peer")))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMapCode(t *testing.T) {
	cases := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"22P02": InvalidInput,
		"08006": ConnectionFailure,
		"42P01": Other,
	}
	for state, want := range cases {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}

	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("x: %w", pgErr)))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(pgErr)))
	assert.Equal(t, Other, ErrCode(errors.New("nope")))
}

func TestColumnFromConstraint(t *testing.T) {
	assert.Equal(t, "name", columnFromConstraint("companies_name_key"))
	assert.Equal(t, "comp_code", columnFromConstraint("invoices_comp_code_fkey"))
	assert.Equal(t, "amt", columnFromConstraint("invoices_amt_check"))
	assert.Equal(t, "name", columnFromConstraint("unique_companies_name"))
	assert.Equal(t, "", columnFromConstraint("companies_pkey"))
	assert.Equal(t, "", columnFromConstraint(""))
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "company", singularize("companies"))
	assert.Equal(t, "invoice", singularize("invoices"))
	assert.Equal(t, "s", singularize("s"))
}
