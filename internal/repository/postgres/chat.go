package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/vasool/vasool/internal/domain/chat"
	"github.com/vasool/vasool/internal/pkg/errors"
)

// ChatRepository implements chat.Repository
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *sql.DB) chat.Repository {
	return &ChatRepository{db: db}
}

// Append stores a message in a session
func (r *ChatRepository) Append(ctx context.Context, m *chat.Message) error {
	now := time.Now()
	m.CreatedAt = now

	query := `
		INSERT INTO chat_messages (user_id, session_id, sender, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		m.UserID, m.SessionID, m.Sender, m.Body, now.Unix(),
	).Scan(&m.ID)
	if err != nil {
		return errors.DatabaseError("Failed to append chat message", err)
	}

	return nil
}

// History returns a session's messages in chronological order
func (r *ChatRepository) History(ctx context.Context, userID int64, sessionID string) ([]*chat.Message, error) {
	query := `
		SELECT id, user_id, session_id, sender, body, created_at
		FROM chat_messages
		WHERE user_id = $1 AND session_id = $2
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, sessionID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list chat messages", err)
	}
	defer rows.Close()

	messages := []*chat.Message{}
	for rows.Next() {
		var m chat.Message
		var createdAt int64

		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.Sender, &m.Body, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan chat message", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate chat messages", err)
	}

	return messages, nil
}

// Sessions lists a user's session IDs, most recent first
func (r *ChatRepository) Sessions(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT session_id FROM chat_messages
		WHERE user_id = $1
		GROUP BY session_id
		ORDER BY MAX(id) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list chat sessions", err)
	}
	defer rows.Close()

	sessions := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.DatabaseError("Failed to scan session ID", err)
		}
		sessions = append(sessions, id)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate sessions", err)
	}

	return sessions, nil
}
