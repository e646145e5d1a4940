package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/errors"
)

// IntegrationRepository implements integration.Repository
type IntegrationRepository struct {
	db *sql.DB
}

// NewIntegrationRepository creates a new integration repository
func NewIntegrationRepository(db *sql.DB) integration.Repository {
	return &IntegrationRepository{db: db}
}

// Upsert creates or updates the integration record for (user_id, provider)
func (r *IntegrationRepository) Upsert(ctx context.Context, rec *integration.Integration) error {
	now := time.Now()
	rec.UpdatedAt = now
	if rec.ConnectedAt.IsZero() {
		rec.ConnectedAt = now
	}

	var lastSync, disconnectedAt interface{}
	if rec.LastSync != nil {
		lastSync = rec.LastSync.Unix()
	}
	if rec.DisconnectedAt != nil {
		disconnectedAt = rec.DisconnectedAt.Unix()
	}

	query := `
		INSERT INTO integrations (
			user_id, provider, mode, status, email,
			access_token, refresh_token, client_id, client_secret, organization_id,
			connected_at, last_sync, disconnected_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT(user_id, provider) DO UPDATE SET
			mode = excluded.mode,
			status = excluded.status,
			email = excluded.email,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			client_id = excluded.client_id,
			client_secret = excluded.client_secret,
			organization_id = excluded.organization_id,
			connected_at = excluded.connected_at,
			last_sync = excluded.last_sync,
			disconnected_at = excluded.disconnected_at,
			updated_at = excluded.updated_at
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Provider, rec.Mode, rec.Status, rec.Email,
		rec.AccessToken, rec.RefreshToken, rec.ClientID, rec.ClientSecret, rec.OrganizationID,
		rec.ConnectedAt.Unix(), lastSync, disconnectedAt, now.Unix(), now.Unix(),
	).Scan(&rec.ID)
	if err != nil {
		return errors.DatabaseError("Failed to upsert integration", err)
	}

	return nil
}

// Get retrieves the integration record for a user and provider
func (r *IntegrationRepository) Get(ctx context.Context, userID int64, provider string) (*integration.Integration, error) {
	query := `
		SELECT id, user_id, provider, mode, status, email,
			access_token, refresh_token, client_id, client_secret, organization_id,
			connected_at, last_sync, disconnected_at, created_at, updated_at
		FROM integrations
		WHERE user_id = $1 AND provider = $2
	`

	var rec integration.Integration
	var lastSync, disconnectedAt sql.NullInt64
	var connectedAt, createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, userID, provider).Scan(
		&rec.ID, &rec.UserID, &rec.Provider, &rec.Mode, &rec.Status, &rec.Email,
		&rec.AccessToken, &rec.RefreshToken, &rec.ClientID, &rec.ClientSecret, &rec.OrganizationID,
		&connectedAt, &lastSync, &disconnectedAt, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Integration")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get integration", err)
	}

	rec.ConnectedAt = time.Unix(connectedAt, 0)
	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)
	if lastSync.Valid {
		t := time.Unix(lastSync.Int64, 0)
		rec.LastSync = &t
	}
	if disconnectedAt.Valid {
		t := time.Unix(disconnectedAt.Int64, 0)
		rec.DisconnectedAt = &t
	}

	return &rec, nil
}

// UpdateTokens persists a refreshed access token
func (r *IntegrationRepository) UpdateTokens(ctx context.Context, userID int64, provider, accessToken string) error {
	query := `UPDATE integrations SET access_token = $1, updated_at = $2 WHERE user_id = $3 AND provider = $4`

	result, err := r.db.ExecContext(ctx, query, accessToken, time.Now().Unix(), userID, provider)
	if err != nil {
		return errors.DatabaseError("Failed to update tokens", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Integration")
	}

	return nil
}

// UpdateLastSync records a successful data fetch
func (r *IntegrationRepository) UpdateLastSync(ctx context.Context, userID int64, provider string, at time.Time) error {
	query := `UPDATE integrations SET last_sync = $1, updated_at = $2 WHERE user_id = $3 AND provider = $4`

	_, err := r.db.ExecContext(ctx, query, at.Unix(), time.Now().Unix(), userID, provider)
	if err != nil {
		return errors.DatabaseError("Failed to update last sync", err)
	}

	return nil
}

// Disconnect soft-deletes the record
func (r *IntegrationRepository) Disconnect(ctx context.Context, userID int64, provider string, at time.Time) error {
	query := `
		UPDATE integrations
		SET status = $1, disconnected_at = $2, access_token = '', updated_at = $3
		WHERE user_id = $4 AND provider = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		integration.StatusInactive, at.Unix(), time.Now().Unix(), userID, provider)
	if err != nil {
		return errors.DatabaseError("Failed to disconnect integration", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Integration")
	}

	return nil
}

// CreateHandshake stores a pending OAuth handshake
func (r *IntegrationRepository) CreateHandshake(ctx context.Context, h *integration.Handshake) error {
	now := time.Now()
	h.CreatedAt = now

	query := `
		INSERT INTO oauth_handshakes (user_id, state, client_id, client_secret, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		h.UserID, h.State, h.ClientID, h.ClientSecret, h.OrganizationID, now.Unix(),
	).Scan(&h.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create handshake", err)
	}

	return nil
}

// ConsumeHandshake atomically reads and deletes the handshake for a
// state token. The select and delete run in one transaction so a state
// can only ever be redeemed once.
func (r *IntegrationRepository) ConsumeHandshake(ctx context.Context, state string) (*integration.Handshake, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	var h integration.Handshake
	var createdAt int64

	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, state, client_id, client_secret, organization_id, created_at
		FROM oauth_handshakes WHERE state = $1
	`, state).Scan(&h.ID, &h.UserID, &h.State, &h.ClientID, &h.ClientSecret, &h.OrganizationID, &createdAt)

	if err == sql.ErrNoRows {
		return nil, errors.InvalidHandshake()
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to read handshake", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM oauth_handshakes WHERE id = $1`, h.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to consume handshake", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return nil, errors.InvalidHandshake()
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.DatabaseError("Failed to commit handshake consume", err)
	}

	h.CreatedAt = time.Unix(createdAt, 0)
	return &h, nil
}
