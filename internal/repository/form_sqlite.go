package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/deppfellow/form-builder/internal/model"
	"github.com/deppfellow/form-builder/internal/sqlerr"
)

// SQLiteFormRepository implements FormRepository on database/sql with the
// modernc.org/sqlite driver.
//
// created_at is stored as unix nanoseconds so ordering is exact.
type SQLiteFormRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteFormRepository(db *sql.DB) *SQLiteFormRepository {
	return &SQLiteFormRepository{db: db, now: time.Now}
}

func (r *SQLiteFormRepository) SumVisitsAndSubmissions(ctx context.Context, userID string) (int64, int64, error) {
	stmt := `
		SELECT COALESCE(SUM(visits), 0), COALESCE(SUM(submissions), 0)
		FROM forms
		WHERE user_id = ?
	`

	var visits, submissions int64
	if err := r.db.QueryRowContext(ctx, stmt, userID).Scan(&visits, &submissions); err != nil {
		return 0, 0, errors.Wrapf(err, "failed to sum form stats for user_id=%s", userID)
	}

	return visits, submissions, nil
}

func (r *SQLiteFormRepository) FindByOwnerAndName(ctx context.Context, userID, name string) (*model.Form, error) {
	stmt := `SELECT ` + formColumns + ` FROM forms WHERE user_id = ? AND name = ? LIMIT 1`

	form, err := scanForm(r.db.QueryRowContext(ctx, stmt, userID, name))
	if err != nil {
		return nil, wrapFindError(err, "failed to query form by name for user_id=%s", userID)
	}

	return form, nil
}

func (r *SQLiteFormRepository) FindByOwnerAndID(ctx context.Context, userID string, id int64) (*model.Form, error) {
	stmt := `SELECT ` + formColumns + ` FROM forms WHERE user_id = ? AND id = ?`

	form, err := scanForm(r.db.QueryRowContext(ctx, stmt, userID, id))
	if err != nil {
		return nil, wrapFindError(err, "failed to query form by id for user_id=%s", userID)
	}

	return form, nil
}

func (r *SQLiteFormRepository) Insert(ctx context.Context, draft model.FormDraft) (*model.Form, error) {
	stmt := `
		INSERT INTO forms (user_id, created_at, name, description, share_url)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + formColumns

	row := r.db.QueryRowContext(ctx, stmt,
		draft.UserID,
		r.now().UTC().UnixNano(),
		draft.Name,
		draft.Description,
		uuid.NewString(),
	)

	form, err := scanForm(row)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateFormName
		}
		return nil, errors.Wrapf(err, "failed to insert form for user_id=%s", draft.UserID)
	}

	return form, nil
}

func (r *SQLiteFormRepository) ListByOwner(ctx context.Context, userID string) ([]model.Form, error) {
	stmt := `
		SELECT ` + formColumns + `
		FROM forms
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, stmt, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query forms for user_id=%s", userID)
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan form for user_id=%s", userID)
		}
		forms = append(forms, *form)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate forms for user_id=%s", userID)
	}

	return forms, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (*model.Form, error) {
	var (
		form      model.Form
		createdAt int64
	)

	err := row.Scan(
		&form.ID,
		&form.UserID,
		&createdAt,
		&form.Published,
		&form.Name,
		&form.Description,
		&form.Content,
		&form.Visits,
		&form.Submissions,
		&form.ShareURL,
	)
	if err != nil {
		return nil, err
	}

	form.CreatedAt = time.Unix(0, createdAt).UTC()

	return &form, nil
}

func wrapFindError(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFormNotFound
	}
	return errors.Wrapf(err, format, args...)
}
