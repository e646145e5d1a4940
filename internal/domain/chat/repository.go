package chat

import "context"

// Repository defines the interface for chat message persistence
type Repository interface {
	// Append stores a message in a session
	Append(ctx context.Context, m *Message) error

	// History returns a session's messages in chronological order
	History(ctx context.Context, userID int64, sessionID string) ([]*Message, error)

	// Sessions lists a user's session IDs, most recent first
	Sessions(ctx context.Context, userID int64) ([]string, error)
}
