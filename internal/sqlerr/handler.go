package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/form-builder/internal/errs"
)

// ErrCode returns the Code of the driver error in err's chain, or Other.
func ErrCode(err error) Code {
	if sqlErr := Classify(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// constraintSuffixes are the Postgres default constraint name endings,
// as in forms_share_url_key or forms_visits_check.
var constraintSuffixes = []string{"_key", "_ukey", "_check", "_fkey", "_not_null", "_excl"}

// columnOf names the column a violation is about. Postgres fills
// ColumnName only for NOT NULL; otherwise the column is recovered from a
// default-style constraint name. A composite unique key such as
// forms_user_id_name_key resolves to its last column.
func columnOf(sqlErr *Error, knownColumns []string) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}

	name := sqlErr.ConstraintName
	if name == "" {
		return ""
	}
	if sqlErr.TableName != "" {
		name = strings.TrimPrefix(name, sqlErr.TableName+"_")
	}
	for _, suffix := range constraintSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}

	best := ""
	for _, column := range knownColumns {
		if strings.HasSuffix(name, column) && len(column) > len(best) {
			best = column
		}
	}
	if best != "" {
		return best
	}
	return name
}

// formColumns lists the forms table columns, used to split composite
// constraint names.
var formColumns = []string{
	"id", "user_id", "created_at", "published", "name",
	"description", "content", "visits", "submissions", "share_url",
}

// entityName singularizes a table name for messages and codes:
// forms becomes form. An unknown table is a "record".
func entityName(table string) string {
	if table == "" {
		return "record"
	}
	return strings.TrimSuffix(strings.ToLower(table), "s")
}

// humanize renders a column for people: share_url becomes "Share Url".
func humanize(column string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(column, "_", " "))
}

// errorCode builds codes like FORM_REQUIRED or FORM_INVALID.
func errorCode(table string, code Code) string {
	action := "ERROR"
	switch code {
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, ExclusionViolation:
		action = "INVALID"
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	}
	return strings.ToUpper(entityName(table)) + "_" + action
}

// HandleError maps a store error onto the response sent to the client.
//
// HTTPErrors pass through unchanged. Constraint violations become a 400
// with a field error for the offending column. Anything else is an opaque
// 500; the cause is for the logs only.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	sqlErr := Classify(err)
	if sqlErr == nil || !IsConstraintViolation(sqlErr) {
		return errs.NewInternalServerError()
	}

	entity := entityName(sqlErr.TableName)
	column := columnOf(sqlErr, formColumns)
	field := humanize(column)
	if field == "" {
		field = "Value"
	}

	var message, fieldMessage string
	switch sqlErr.Code {
	case UniqueViolation:
		message = fmt.Sprintf("A %s with this %s already exists", entity, field)
		fieldMessage = "already exists"
	case NotNullViolation:
		message = fmt.Sprintf("%s is required", field)
		fieldMessage = "is required"
	case ForeignKeyViolation:
		message = fmt.Sprintf("The referenced %s does not exist", strings.ToLower(field))
		fieldMessage = "does not exist"
	default:
		message = fmt.Sprintf("%s does not meet the %s requirements", field, entity)
		fieldMessage = "is invalid"
	}

	var fieldErrors []errs.FieldError
	if column != "" {
		fieldErrors = []errs.FieldError{{Field: column, Error: fieldMessage}}
	}

	code := errorCode(sqlErr.TableName, sqlErr.Code)
	return errs.NewBadRequestError(message, true, &code, fieldErrors)
}
