package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/form-builder/internal/model"
	"github.com/deppfellow/form-builder/internal/sqlerr"
)

// formColumns is the select list matching model.Form's db tags.
const formColumns = `id, user_id, created_at, published, name, description, content, visits, submissions, share_url`

// PgFormRepository implements FormRepository on a pgx pool.
type PgFormRepository struct {
	pool *pgxpool.Pool
}

func NewPgFormRepository(pool *pgxpool.Pool) *PgFormRepository {
	return &PgFormRepository{pool: pool}
}

func (r *PgFormRepository) SumVisitsAndSubmissions(ctx context.Context, userID string) (int64, int64, error) {
	stmt := `
		SELECT
			COALESCE(SUM(visits), 0)::BIGINT,
			COALESCE(SUM(submissions), 0)::BIGINT
		FROM forms
		WHERE user_id = @user_id
	`

	var visits, submissions int64
	err := r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{"user_id": userID}).Scan(&visits, &submissions)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "failed to sum form stats for user_id=%s", userID)
	}

	return visits, submissions, nil
}

func (r *PgFormRepository) FindByOwnerAndName(ctx context.Context, userID, name string) (*model.Form, error) {
	stmt := `
		SELECT ` + formColumns + `
		FROM forms
		WHERE user_id = @user_id AND name = @name
		LIMIT 1
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID, "name": name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query form by name for user_id=%s", userID)
	}

	return collectOneForm(rows)
}

func (r *PgFormRepository) FindByOwnerAndID(ctx context.Context, userID string, id int64) (*model.Form, error) {
	stmt := `
		SELECT ` + formColumns + `
		FROM forms
		WHERE user_id = @user_id AND id = @id
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID, "id": id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query form id=%d for user_id=%s", id, userID)
	}

	return collectOneForm(rows)
}

func (r *PgFormRepository) Insert(ctx context.Context, draft model.FormDraft) (*model.Form, error) {
	stmt := `
		INSERT INTO forms (user_id, name, description, share_url)
		VALUES (@user_id, @name, @description, @share_url)
		RETURNING ` + formColumns

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":     draft.UserID,
		"name":        draft.Name,
		"description": draft.Description,
		"share_url":   uuid.NewString(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to execute insert form query for user_id=%s", draft.UserID)
	}

	return collectInsertedForm(rows, draft.UserID)
}

func (r *PgFormRepository) ListByOwner(ctx context.Context, userID string) ([]model.Form, error) {
	stmt := `
		SELECT ` + formColumns + `
		FROM forms
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query forms for user_id=%s", userID)
	}

	forms, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Form])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect forms for user_id=%s", userID)
	}

	return forms, nil
}

func collectOneForm(rows pgx.Rows) (*model.Form, error) {
	form, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Form])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, errors.Wrap(err, "failed to collect form")
	}

	return &form, nil
}

// collectInsertedForm reads the RETURNING row of an insert. With Query the
// constraint error surfaces while reading the row, not from Query itself.
func collectInsertedForm(rows pgx.Rows, userID string) (*model.Form, error) {
	form, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Form])
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateFormName
		}
		return nil, errors.Wrapf(err, "failed to collect inserted form for user_id=%s", userID)
	}

	return &form, nil
}
