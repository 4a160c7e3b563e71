package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/biztime/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// <table>_<column>_(key|ukey|fkey|check), e.g. invoices_comp_code_fkey.
	constraintColumnRe = regexp.MustCompile(`^[^_]+_(.+)_(?:key|ukey|fkey|check)$`)

	// Key (code)=(ibm) already exists.
	detailKeyRe = regexp.MustCompile(`Key \(([^)]+)\)=`)
)

// entityAliases names the entity behind abbreviated reference columns.
var entityAliases = map[string]string{
	"comp": "company",
}

// ErrCode reports the Code of err if it is (or wraps) an *Error, Other otherwise.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// ConvertPgError converts a raw *pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a machine code of the form <DOMAIN>_<ACTION>,
// e.g. companies + UniqueViolation => COMPANY_ALREADY_EXISTS.
func generateErrorCode(domain string, errType Code) string {
	if domain == "" {
		domain = "record"
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidInput:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", strings.ToUpper(strings.ReplaceAll(domain, " ", "_")), action)
}

// formatUserFriendlyMessage produces the client-facing message for a classified error.
func formatUserFriendlyMessage(sqlErr *Error, entityName string) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", humanizeText(entityName))

	case UniqueViolation:
		column := uniqueColumn(sqlErr)
		if column == "" {
			column = "identifier"
		} else {
			column = humanizeText(column)
		}
		return fmt.Sprintf("A %s with this %s already exists", humanizeText(entityName), column)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(columnFromConstraint(sqlErr.ConstraintName))
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidInput:
		return "One or more values are invalid"

	default:
		return "An error occurred while processing your request"
	}
}

// singularize handles the plural table names used by this schema.
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	}
	return word
}

// referenceEntity turns a reference column into an entity name:
// "company_id" -> "company", "comp_code" -> "company".
func referenceEntity(column string) string {
	column = strings.ToLower(column)
	for _, suffix := range []string{"_id", "_code"} {
		if strings.HasSuffix(column, suffix) {
			base := strings.TrimSuffix(column, suffix)
			if alias, ok := entityAliases[base]; ok {
				return alias
			}
			return base
		}
	}
	return ""
}

// getEntityName picks the entity a message should talk about.
//
// Foreign key violations talk about the referenced entity (derived from the
// column or constraint name); every other violation talks about the table's row.
func getEntityName(sqlErr *Error) string {
	if sqlErr.Code == ForeignKeyViolation {
		column := sqlErr.ColumnName
		if column == "" {
			column = columnFromConstraint(sqlErr.ConstraintName)
		}
		if entity := referenceEntity(column); entity != "" {
			return entity
		}
	}

	if sqlErr.TableName != "" {
		return singularize(strings.ToLower(sqlErr.TableName))
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// columnFromConstraint extracts the column from a conventional constraint name.
//
//	companies_name_key       -> name
//	invoices_comp_code_fkey  -> comp_code
//	invoices_amt_check       -> amt
//	unique_companies_name    -> name
func columnFromConstraint(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := constraintColumnRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// uniqueColumn finds the column behind a unique violation, preferring the
// constraint name and falling back to the "Key (col)=(val)" detail line.
func uniqueColumn(sqlErr *Error) string {
	if column := columnFromConstraint(sqlErr.ConstraintName); column != "" {
		return column
	}
	if matches := detailKeyRe.FindStringSubmatch(sqlErr.Detail); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: 400 for constraint and input violations, 500 otherwise
//   - pgx.ErrNoRows / sql.ErrNoRows: 404 "Resource not found"
//   - anything else: 500
//
// The global error handler calls this once for every error a handler returns
// that is not already an *errs.HTTPError.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		entityName := getEntityName(sqlErr)
		errorCode := generateErrorCode(entityName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr, entityName)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation, InvalidInput:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
