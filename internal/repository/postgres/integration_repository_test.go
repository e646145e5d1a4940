package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/testutil"
)

func TestIntegrationRepository_UpsertIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewIntegrationRepository(db)
	ctx := context.Background()

	rec := &integration.Integration{
		UserID:   42,
		Provider: integration.ProviderZohoBooks,
		Mode:     integration.ModeDemo,
		Status:   integration.StatusActive,
		Email:    "demo@example.com",
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Second upsert switches the same row to production
	rec2 := &integration.Integration{
		UserID:         42,
		Provider:       integration.ProviderZohoBooks,
		Mode:           integration.ModeProduction,
		Status:         integration.StatusActive,
		AccessToken:    "access-1",
		RefreshToken:   "refresh-1",
		OrganizationID: "60001234567",
	}
	if err := repo.Upsert(ctx, rec2); err != nil {
		t.Fatalf("Upsert() second error = %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM integrations WHERE user_id = 42`).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after repeated upsert, got %d", count)
	}

	got, err := repo.Get(ctx, 42, integration.ProviderZohoBooks)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Mode != integration.ModeProduction {
		t.Errorf("Mode = %v, want %v", got.Mode, integration.ModeProduction)
	}
	if got.AccessToken != "access-1" {
		t.Errorf("AccessToken = %v, want access-1", got.AccessToken)
	}
}

func TestIntegrationRepository_GetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewIntegrationRepository(db)

	_, err := repo.Get(context.Background(), 99, integration.ProviderZohoBooks)
	if !errors.IsNotFound(err) {
		t.Errorf("Get() error = %v, want not found", err)
	}
}

func TestIntegrationRepository_UpdateTokens(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewIntegrationRepository(db)
	ctx := context.Background()

	rec := &integration.Integration{
		UserID:      7,
		Provider:    integration.ProviderZohoBooks,
		Mode:        integration.ModeProduction,
		Status:      integration.StatusActive,
		AccessToken: "stale",
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := repo.UpdateTokens(ctx, 7, integration.ProviderZohoBooks, "fresh"); err != nil {
		t.Fatalf("UpdateTokens() error = %v", err)
	}

	got, err := repo.Get(ctx, 7, integration.ProviderZohoBooks)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AccessToken != "fresh" {
		t.Errorf("AccessToken = %v, want fresh", got.AccessToken)
	}

	// No record for this user
	err = repo.UpdateTokens(ctx, 8, integration.ProviderZohoBooks, "fresh")
	if !errors.IsNotFound(err) {
		t.Errorf("UpdateTokens() for missing record error = %v, want not found", err)
	}
}

func TestIntegrationRepository_UpdateLastSync(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewIntegrationRepository(db)
	ctx := context.Background()

	rec := &integration.Integration{
		UserID:   7,
		Provider: integration.ProviderZohoBooks,
		Mode:     integration.ModeDemo,
		Status:   integration.StatusActive,
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	at := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	if err := repo.UpdateLastSync(ctx, 7, integration.ProviderZohoBooks, at); err != nil {
		t.Fatalf("UpdateLastSync() error = %v", err)
	}

	got, err := repo.Get(ctx, 7, integration.ProviderZohoBooks)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.LastSync == nil {
		t.Fatal("LastSync not set")
	}
	if !got.LastSync.Equal(at) {
		t.Errorf("LastSync = %v, want %v", got.LastSync, at)
	}
}

func TestIntegrationRepository_Disconnect(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewIntegrationRepository(db)
	ctx := context.Background()

	rec := &integration.Integration{
		UserID:      7,
		Provider:    integration.ProviderZohoBooks,
		Mode:        integration.ModeProduction,
		Status:      integration.StatusActive,
		AccessToken: "access-1",
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := repo.Disconnect(ctx, 7, integration.ProviderZohoBooks, time.Now()); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}

	// Record survives for audit but is inactive and token is cleared
	got, err := repo.Get(ctx, 7, integration.ProviderZohoBooks)
	if err != nil {
		t.Fatalf("Get() after disconnect error = %v", err)
	}
	if got.Status != integration.StatusInactive {
		t.Errorf("Status = %v, want %v", got.Status, integration.StatusInactive)
	}
	if got.AccessToken != "" {
		t.Error("access token not cleared on disconnect")
	}
	if got.DisconnectedAt == nil {
		t.Error("DisconnectedAt not set")
	}

	err = repo.Disconnect(ctx, 8, integration.ProviderZohoBooks, time.Now())
	if !errors.IsNotFound(err) {
		t.Errorf("Disconnect() for missing record error = %v, want not found", err)
	}
}

func TestIntegrationRepository_ConsumeHandshakeIsSingleUse(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewIntegrationRepository(db)
	ctx := context.Background()

	h := &integration.Handshake{
		UserID:         42,
		State:          "state-token-1",
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		OrganizationID: "60001234567",
	}
	if err := repo.CreateHandshake(ctx, h); err != nil {
		t.Fatalf("CreateHandshake() error = %v", err)
	}
	if h.ID == 0 {
		t.Fatal("CreateHandshake() did not set ID")
	}

	got, err := repo.ConsumeHandshake(ctx, "state-token-1")
	if err != nil {
		t.Fatalf("ConsumeHandshake() error = %v", err)
	}
	if got.UserID != 42 || got.ClientID != "client-id" {
		t.Errorf("ConsumeHandshake() = %+v, want stored credentials", got)
	}

	// Replaying the same state must fail
	_, err = repo.ConsumeHandshake(ctx, "state-token-1")
	if !errors.HasCode(err, errors.ErrCodeInvalidHandshake) {
		t.Errorf("replayed ConsumeHandshake() error = %v, want invalid handshake", err)
	}

	_, err = repo.ConsumeHandshake(ctx, "never-issued")
	if !errors.HasCode(err, errors.ErrCodeInvalidHandshake) {
		t.Errorf("unknown state ConsumeHandshake() error = %v, want invalid handshake", err)
	}
}
