package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"fitlink-backend/internal/domains/posting/model"
)

type postgresPostingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostingRepository(pool *pgxpool.Pool) PostingRepository {
	return &postgresPostingRepository{pool: pool}
}

const postingColumns = `
	id, studio_id, kind, status,
	title, description, location,
	compensation_min, compensation_max, start_date, end_date,
	required_styles, urgent, application_count,
	created_at, updated_at
`

func (r *postgresPostingRepository) Create(ctx context.Context, p *model.Posting) error {
	query := `
		INSERT INTO postings (` + postingColumns + `)
		VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14,
			$15, $16
		)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.StudioID, p.Kind, p.Status,
		p.Title, p.Description, p.Location,
		p.CompensationMin, p.CompensationMax, p.StartDate, p.EndDate,
		pq.Array(p.RequiredStyles), p.Urgent, p.ApplicationCount,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create posting: %w", err)
	}

	return nil
}

func (r *postgresPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE id = $1`

	p, err := scanPosting(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostingNotFound
		}
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	return p, nil
}

func (r *postgresPostingRepository) Update(ctx context.Context, p *model.Posting) error {
	query := `
		UPDATE postings
		SET
			status = $2, title = $3, description = $4, location = $5,
			compensation_min = $6, compensation_max = $7,
			start_date = $8, end_date = $9,
			required_styles = $10, urgent = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		p.ID, p.Status, p.Title, p.Description, p.Location,
		p.CompensationMin, p.CompensationMax,
		p.StartDate, p.EndDate,
		pq.Array(p.RequiredStyles), p.Urgent,
	)
	if err != nil {
		return fmt.Errorf("failed to update posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPostingNotFound
	}

	return nil
}

func (r *postgresPostingRepository) List(ctx context.Context, filter model.ListFilter) (*model.Page, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argN := 1

	appendCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argN))
		args = append(args, value)
		argN++
	}

	if filter.Kind != "" {
		appendCondition("kind = $%d", filter.Kind)
	}
	if filter.Status != "" {
		appendCondition("status = $%d", filter.Status)
	}
	if filter.Style != "" {
		appendCondition("$%d = ANY(required_styles)", filter.Style)
	}
	if filter.Location != "" {
		appendCondition("location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.Urgent != nil {
		appendCondition("urgent = $%d", *filter.Urgent)
	}
	if filter.StudioID != "" {
		appendCondition("studio_id = $%d", filter.StudioID)
	}

	if filter.Cursor != "" {
		cursorTime, cursorID, err := decodeCursor(filter.Cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", argN, argN+1))
		args = append(args, cursorTime, cursorID)
		argN += 2
	}

	query := fmt.Sprintf(`
		SELECT `+postingColumns+`
		FROM postings
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d
	`, strings.Join(conditions, " AND "), argN)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	page := &model.Page{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		page.Postings = append(page.Postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posting rows: %w", err)
	}

	if len(page.Postings) > limit {
		page.Postings = page.Postings[:limit]
		last := page.Postings[limit-1]
		page.NextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	return page, nil
}

func (r *postgresPostingRepository) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE postings SET application_count = application_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment application count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPostingNotFound
	}
	return nil
}

func (r *postgresPostingRepository) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	// Jobs close, guest spots cancel, in one statement.
	query := `
		UPDATE postings
		SET status = CASE kind WHEN 'job' THEN 'closed' ELSE 'cancelled' END,
		    updated_at = NOW()
		WHERE status = 'open' AND end_date IS NOT NULL AND end_date < $1
	`

	result, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to close expired postings: %w", err)
	}

	return int(result.RowsAffected()), nil
}

func scanPosting(row pgx.Row) (*model.Posting, error) {
	p := &model.Posting{}
	var styles []string

	err := row.Scan(
		&p.ID, &p.StudioID, &p.Kind, &p.Status,
		&p.Title, &p.Description, &p.Location,
		&p.CompensationMin, &p.CompensationMax, &p.StartDate, &p.EndDate,
		pq.Array(&styles), &p.Urgent, &p.ApplicationCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.RequiredStyles = styles
	return p, nil
}

func encodeCursor(createdAt time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%d|%s", createdAt.UnixNano(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, err
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, fmt.Errorf("malformed cursor")
	}

	var nanos int64
	if _, err := fmt.Sscanf(parts[0], "%d", &nanos); err != nil {
		return time.Time{}, uuid.Nil, err
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, err
	}

	return time.Unix(0, nanos), id, nil
}
