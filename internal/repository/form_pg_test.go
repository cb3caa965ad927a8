package repository

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/form-builder/internal/model"
	"github.com/deppfellow/form-builder/internal/sqlerr"
)

// stubRows is a pgx.Rows over in-memory rows. When rows run out, Next
// reports false and Err returns err, the way pgx surfaces server errors.
type stubRows struct {
	columns []string
	rows    [][]any
	err     error

	pos    int
	closed bool
}

func (r *stubRows) Close()                        { r.closed = true }
func (r *stubRows) Err() error                    { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *stubRows) RawValues() [][]byte           { return nil }
func (r *stubRows) Conn() *pgx.Conn               { return nil }

func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.columns))
	for i, name := range r.columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return fields
}

func (r *stubRows) Next() bool {
	if r.closed || r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *stubRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("scan: column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func formRow(createdAt time.Time) *stubRows {
	return &stubRows{
		columns: []string{
			"id", "user_id", "created_at", "published", "name",
			"description", "content", "visits", "submissions", "share_url",
		},
		rows: [][]any{{
			int64(7), "user_a", createdAt, false, "Survey",
			"", "[]", int64(200), int64(50), "share-1",
		}},
	}
}

func TestCollectOneFormMapsColumns(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := formRow(createdAt)

	form, err := collectOneForm(rows)
	require.NoError(t, err)

	assert.Equal(t, model.Form{
		ID:          7,
		UserID:      "user_a",
		CreatedAt:   createdAt,
		Name:        "Survey",
		Content:     "[]",
		Visits:      200,
		Submissions: 50,
		ShareURL:    "share-1",
	}, *form)
	assert.True(t, rows.closed)
}

func TestCollectOneFormNoRowsIsNotFound(t *testing.T) {
	_, err := collectOneForm(&stubRows{columns: []string{"id"}})

	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestCollectOneFormWrapsDriverErrors(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}

	_, err := collectOneForm(&stubRows{err: pgErr})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFormNotFound)
	var got *pgconn.PgError
	assert.ErrorAs(t, err, &got)
}

func TestCollectInsertedFormUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "forms",
		ConstraintName: "forms_user_id_name_key",
	}

	_, err := collectInsertedForm(&stubRows{err: pgErr}, "user_a")

	assert.ErrorIs(t, err, ErrDuplicateFormName)
}

func TestCollectInsertedFormKeepsOtherViolations(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", TableName: "forms", ConstraintName: "forms_visits_check"}

	_, err := collectInsertedForm(&stubRows{err: pgErr}, "user_a")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateFormName)
	assert.Equal(t, sqlerr.CheckViolation, sqlerr.ErrCode(err))
}

func TestCollectInsertedFormReturnsRow(t *testing.T) {
	form, err := collectInsertedForm(formRow(time.Now().UTC()), "user_a")

	require.NoError(t, err)
	assert.Equal(t, int64(7), form.ID)
	assert.Equal(t, "share-1", form.ShareURL)
}
