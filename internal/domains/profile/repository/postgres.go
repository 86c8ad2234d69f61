package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"fitlink-backend/internal/domains/profile/model"
)

type postgresProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &postgresProfileRepository{pool: pool}
}

const profileColumns = `
	id, user_id, user_type, email, handle,
	full_name, headline, bio, location,
	avatar_url, gallery_urls, styles, certifications,
	experience, availability, hourly_rate,
	status, rejection_reason, submitted_at, verified_at, rejected_at, reviewed_by,
	profile_completed, created_at, updated_at
`

// =====================================================
// CREATE / UPDATE
// =====================================================

func (r *postgresProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	experience, availability, err := marshalJSONFields(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24, $25
		)
	`

	_, err = r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.UserType, p.Email, p.Handle,
		p.FullName, p.Headline, p.Bio, p.Location,
		p.AvatarURL, pq.Array(p.GalleryURLs), pq.Array(p.Styles), pq.Array(p.Certifications),
		experience, availability, p.HourlyRate,
		p.Status, p.RejectionReason, p.SubmittedAt, p.VerifiedAt, p.RejectedAt, p.ReviewedBy,
		p.ProfileCompleted, p.CreatedAt, p.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "handle") {
				return model.ErrHandleAlreadyTaken
			}
			// one profile per user
			return model.ErrProfileNotFound
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *postgresProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	experience, availability, err := marshalJSONFields(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET
			full_name = $2, headline = $3, bio = $4, location = $5,
			avatar_url = $6, gallery_urls = $7, styles = $8, certifications = $9,
			experience = $10, availability = $11, hourly_rate = $12,
			status = $13, rejection_reason = $14,
			submitted_at = $15, verified_at = $16, rejected_at = $17, reviewed_by = $18,
			profile_completed = $19,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.FullName, p.Headline, p.Bio, p.Location,
		p.AvatarURL, pq.Array(p.GalleryURLs), pq.Array(p.Styles), pq.Array(p.Certifications),
		experience, availability, p.HourlyRate,
		p.Status, p.RejectionReason,
		p.SubmittedAt, p.VerifiedAt, p.RejectedAt, p.ReviewedBy,
		p.ProfileCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}

	return nil
}

// =====================================================
// READS
// =====================================================

func (r *postgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, userID))
}

func (r *postgresProfileRepository) GetByHandle(ctx context.Context, handle string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE handle = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, handle))
}

// =====================================================
// PUBLIC DIRECTORY
// =====================================================

func (r *postgresProfileRepository) Directory(ctx context.Context, filter model.DirectoryFilter) (*model.DirectoryPage, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	// Only verified, completed profiles ever leave this query.
	conditions := []string{"status = 'verified'", "profile_completed = TRUE"}
	args := []interface{}{}
	argN := 1

	if filter.UserType != "" {
		conditions = append(conditions, fmt.Sprintf("user_type = $%d", argN))
		args = append(args, filter.UserType)
		argN++
	}
	if filter.Style != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(styles)", argN))
		args = append(args, filter.Style)
		argN++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argN))
		args = append(args, "%"+filter.Location+"%")
		argN++
	}

	// Keyset pagination: startAfter (created_at, id) of the last row.
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
		SELECT id, handle, user_type, full_name, headline, location, avatar_url, styles, hourly_rate, created_at
		FROM profiles
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d
	`, strings.Join(conditions, " AND "), argN)
	args = append(args, limit+1) // one extra row to detect the next page

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query directory: %w", err)
	}
	defer rows.Close()

	page := &model.DirectoryPage{}
	var createdAts []time.Time

	for rows.Next() {
		var entry model.DirectoryEntry
		var styles []string
		var createdAt time.Time

		err := rows.Scan(
			&entry.ID, &entry.Handle, &entry.UserType, &entry.FullName,
			&entry.Headline, &entry.Location, &entry.AvatarURL,
			pq.Array(&styles), &entry.HourlyRate, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory entry: %w", err)
		}

		entry.Styles = styles
		page.Entries = append(page.Entries, entry)
		createdAts = append(createdAts, createdAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read directory rows: %w", err)
	}

	// The lookahead row means there is a next page; the cursor points
	// at the last row actually returned.
	if len(page.Entries) > limit {
		page.Entries = page.Entries[:limit]
		last := page.Entries[limit-1]
		page.NextCursor = encodeCursor(createdAts[limit-1], last.ID)
	}

	return page, nil
}

// =====================================================
// MODERATION
// =====================================================

func (r *postgresProfileRepository) ListPendingModeration(ctx context.Context) ([]*model.Profile, error) {
	// Oldest submission first — arrival-order fairness.
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE status = 'submitted'
		ORDER BY submitted_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pending rows: %w", err)
	}

	return profiles, nil
}

func (r *postgresProfileRepository) MarkVerified(ctx context.Context, id, reviewedBy uuid.UUID, at time.Time) error {
	// Conditional write: the submitted-state precondition and the
	// transition happen in one statement.
	query := `
		UPDATE profiles
		SET status = 'verified', verified_at = $2, reviewed_by = $3, rejection_reason = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'submitted'
	`

	result, err := r.pool.Exec(ctx, query, id, at, reviewedBy)
	if err != nil {
		return fmt.Errorf("failed to verify profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrNotSubmitted
	}

	return nil
}

func (r *postgresProfileRepository) MarkRejected(ctx context.Context, id, reviewedBy uuid.UUID, reason string, at time.Time) error {
	query := `
		UPDATE profiles
		SET status = 'rejected', rejected_at = $2, reviewed_by = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'submitted'
	`

	result, err := r.pool.Exec(ctx, query, id, at, reviewedBy, reason)
	if err != nil {
		return fmt.Errorf("failed to reject profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrNotSubmitted
	}

	return nil
}

// =====================================================
// SCANNING HELPERS
// =====================================================

func (r *postgresProfileRepository) scanOne(row pgx.Row) (*model.Profile, error) {
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *postgresProfileRepository) scanRow(rows pgx.Rows) (*model.Profile, error) {
	p, err := scanProfile(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	p := &model.Profile{}
	var galleryURLs, styles, certifications []string
	var experience, availability []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.UserType, &p.Email, &p.Handle,
		&p.FullName, &p.Headline, &p.Bio, &p.Location,
		&p.AvatarURL, pq.Array(&galleryURLs), pq.Array(&styles), pq.Array(&certifications),
		&experience, &availability, &p.HourlyRate,
		&p.Status, &p.RejectionReason, &p.SubmittedAt, &p.VerifiedAt, &p.RejectedAt, &p.ReviewedBy,
		&p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.GalleryURLs = galleryURLs
	p.Styles = styles
	p.Certifications = certifications

	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &p.Experience); err != nil {
			return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
		}
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &p.Availability); err != nil {
			return nil, fmt.Errorf("failed to unmarshal availability: %w", err)
		}
	}

	return p, nil
}

func marshalJSONFields(p *model.Profile) (experience, availability []byte, err error) {
	experience, err = json.Marshal(p.Experience)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	availability, err = json.Marshal(p.Availability)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal availability: %w", err)
	}
	return experience, availability, nil
}

// =====================================================
// CURSOR ENCODING
// =====================================================

// Cursors are "createdAtNano|uuid", base64url-encoded so they are
// opaque to clients.
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
