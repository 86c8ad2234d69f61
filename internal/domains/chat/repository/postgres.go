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

	"fitlink-backend/internal/domains/chat/model"
	"fitlink-backend/pkg/database"
)

type postgresConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresConversationRepository(pool *pgxpool.Pool) ConversationRepository {
	return &postgresConversationRepository{pool: pool}
}

const conversationColumns = `
	id, participant_a, participant_b,
	last_message_at, last_message_preview,
	unread_a, unread_b,
	created_at, updated_at
`

func (r *postgresConversationRepository) GetOrCreate(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error) {
	lo, hi := model.SortPair(a, b)
	id := model.ConversationID(a, b)

	// Both racers compute the same id; the loser's insert is a no-op.
	query := `
		INSERT INTO conversations (id, participant_a, participant_b, last_message_preview, unread_a, unread_b, created_at, updated_at)
		VALUES ($1, $2, $3, '', 0, 0, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, id, lo, hi); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *postgresConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	c, err := scanConversation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return c, nil
}

func (r *postgresConversationRepository) ListByParticipant(ctx context.Context, profileID uuid.UUID) ([]*model.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE participant_a = $1 OR participant_b = $1
		ORDER BY last_message_at DESC NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*model.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversation rows: %w", err)
	}

	return conversations, nil
}

func (r *postgresConversationRepository) SendMessage(ctx context.Context, msg *model.Message, preview string, recipientID uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO messages (id, conversation_id, sender_id, kind, body, application_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := tx.Exec(ctx, insert,
			msg.ID, msg.ConversationID, msg.SenderID, msg.Kind, msg.Body, msg.ApplicationID, msg.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}

		update := `
			UPDATE conversations
			SET last_message_at = $2,
			    last_message_preview = $3,
			    unread_a = unread_a + CASE WHEN participant_a = $4 THEN 1 ELSE 0 END,
			    unread_b = unread_b + CASE WHEN participant_b = $4 THEN 1 ELSE 0 END,
			    updated_at = NOW()
			WHERE id = $1
		`
		result, err := tx.Exec(ctx, update, msg.ConversationID, msg.CreatedAt, preview, recipientID)
		if err != nil {
			return fmt.Errorf("failed to update conversation summary: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrConversationNotFound
		}

		return nil
	})
}

func (r *postgresConversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, cursor string, limit int) (*model.MessagePage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	conditions := []string{"m.conversation_id = $1"}
	args := []interface{}{conversationID}
	argN := 2

	if cursor != "" {
		cursorTime, cursorID, err := decodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("(m.created_at, m.id) < ($%d, $%d)", argN, argN+1))
		args = append(args, cursorTime, cursorID)
		argN += 2
	}

	// Offer and invite messages render the application's live status,
	// never a stored copy.
	query := fmt.Sprintf(`
		SELECT m.id, m.conversation_id, m.sender_id, m.kind, m.body, m.application_id, m.created_at,
		       COALESCE(a.status, '')
		FROM messages m
		LEFT JOIN applications a ON a.id = m.application_id
		WHERE %s
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $%d
	`, strings.Join(conditions, " AND "), argN)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	page := &model.MessagePage{}
	for rows.Next() {
		v := &model.MessageView{}
		if err := rows.Scan(
			&v.ID, &v.ConversationID, &v.SenderID, &v.Kind, &v.Body, &v.ApplicationID, &v.CreatedAt,
			&v.ApplicationStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		page.Messages = append(page.Messages, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read message rows: %w", err)
	}

	if len(page.Messages) > limit {
		page.Messages = page.Messages[:limit]
		last := page.Messages[limit-1]
		page.NextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	return page, nil
}

func (r *postgresConversationRepository) MarkRead(ctx context.Context, conversationID, profileID uuid.UUID) error {
	query := `
		UPDATE conversations
		SET unread_a = CASE WHEN participant_a = $2 THEN 0 ELSE unread_a END,
		    unread_b = CASE WHEN participant_b = $2 THEN 0 ELSE unread_b END,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, conversationID, profileID)
	if err != nil {
		return fmt.Errorf("failed to mark conversation read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrConversationNotFound
	}

	return nil
}

func scanConversation(row pgx.Row) (*model.Conversation, error) {
	c := &model.Conversation{}

	err := row.Scan(
		&c.ID, &c.ParticipantA, &c.ParticipantB,
		&c.LastMessageAt, &c.LastMessagePreview,
		&c.UnreadA, &c.UnreadB,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return c, nil
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
