package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitlink-backend/internal/domains/application/model"
)

type postgresApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &postgresApplicationRepository{pool: pool}
}

const applicationColumns = `
	id, posting_id, applicant_id, studio_id,
	initiator, status, message, proposed_rate,
	created_at, updated_at
`

func (r *postgresApplicationRepository) Create(ctx context.Context, a *model.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.PostingID, a.ApplicantID, a.StudioID,
		a.Initiator, a.Status, a.Message, a.ProposedRate,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		// Unique violation on (applicant_id, posting_id)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *postgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	a, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return a, nil
}

func (r *postgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrApplicationNotFound
	}
	return nil
}

func (r *postgresApplicationRepository) ListByPosting(ctx context.Context, postingID uuid.UUID, statuses []model.Status) ([]*model.Application, error) {
	conditions := []string{"posting_id = $1"}
	args := []interface{}{postingID}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = fmt.Sprintf("$%d", i+2)
			args = append(args, s)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf(`
		SELECT `+applicationColumns+`
		FROM applications
		WHERE %s
		ORDER BY created_at ASC
	`, strings.Join(conditions, " AND "))

	return r.queryApplications(ctx, query, args...)
}

func (r *postgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`

	return r.queryApplications(ctx, query, applicantID)
}

func (r *postgresApplicationRepository) queryApplications(ctx context.Context, query string, args ...interface{}) ([]*model.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read application rows: %w", err)
	}

	return apps, nil
}

func scanApplication(row pgx.Row) (*model.Application, error) {
	a := &model.Application{}

	err := row.Scan(
		&a.ID, &a.PostingID, &a.ApplicantID, &a.StudioID,
		&a.Initiator, &a.Status, &a.Message, &a.ProposedRate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return a, nil
}
