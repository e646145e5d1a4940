package integration

import (
	"context"
	"time"
)

// Repository defines the interface for integration data access
type Repository interface {
	// Upsert creates or updates the integration record for
	// (user_id, provider). Idempotent: repeated calls leave one row.
	Upsert(ctx context.Context, rec *Integration) error

	// Get retrieves the integration record for a user and provider,
	// active or not
	Get(ctx context.Context, userID int64, provider string) (*Integration, error)

	// UpdateTokens persists a refreshed access token
	UpdateTokens(ctx context.Context, userID int64, provider, accessToken string) error

	// UpdateLastSync records a successful data fetch
	UpdateLastSync(ctx context.Context, userID int64, provider string, at time.Time) error

	// Disconnect soft-deletes the record: status becomes inactive and
	// disconnected_at is set
	Disconnect(ctx context.Context, userID int64, provider string, at time.Time) error

	// CreateHandshake stores a pending OAuth handshake
	CreateHandshake(ctx context.Context, h *Handshake) error

	// ConsumeHandshake atomically reads and deletes the handshake for a
	// state token. A second call with the same state fails.
	ConsumeHandshake(ctx context.Context, state string) (*Handshake, error)
}
