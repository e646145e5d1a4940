package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vasool/vasool/internal/config"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/testutil"
	"github.com/vasool/vasool/internal/zoho"
)

func newIntegrationFixture(t *testing.T) (integration.Service, *testutil.MockIntegrationRepository, func()) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.Form.Get("grant_type") {
		case "authorization_code":
			if r.Form.Get("code") != "grant-code" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_code"}`)
				return
			}
			fmt.Fprint(w, `{"access_token":"access-1","refresh_token":"refresh-1","token_type":"Bearer","expires_in":3600}`)
		case "refresh_token":
			fmt.Fprint(w, `{"access_token":"access-2","token_type":"Bearer","expires_in":3600}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	srv := httptest.NewServer(mux)

	client := zoho.NewClient(zoho.Config{AccountsURL: srv.URL, BooksURL: srv.URL})
	repo := testutil.NewMockIntegrationRepository()
	svc := NewIntegrationService(repo, client, config.ZohoConfig{
		RedirectURL: "http://localhost:5173/zoho/callback",
	}, logger.Nop())

	return svc, repo, srv.Close
}

func TestIntegrationService_ResolveMode(t *testing.T) {
	svc, repo, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	// No record yet
	mode, err := svc.ResolveMode(ctx, 1)
	if err != nil {
		t.Fatalf("ResolveMode() error = %v", err)
	}
	if mode != integration.Disconnected {
		t.Errorf("mode = %s, want disconnected", mode)
	}

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	mode, err = svc.ResolveMode(ctx, 1)
	if err != nil {
		t.Fatalf("ResolveMode() error = %v", err)
	}
	if mode != integration.ProductionAuthenticated {
		t.Errorf("mode = %s, want production_authenticated", mode)
	}
}

func TestIntegrationService_ConnectDemoIsIdempotent(t *testing.T) {
	svc, repo, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	first, err := svc.ConnectDemo(ctx, 1, "user@example.com")
	if err != nil {
		t.Fatalf("ConnectDemo() error = %v", err)
	}
	second, err := svc.ConnectDemo(ctx, 1, "user@example.com")
	if err != nil {
		t.Fatalf("ConnectDemo() second call error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("repeated connect created a new record: ids %d and %d", first.ID, second.ID)
	}
	if len(repo.Records) != 1 {
		t.Errorf("record count = %d, want 1", len(repo.Records))
	}

	mode, _ := svc.ResolveMode(ctx, 1)
	if mode != integration.Demo {
		t.Errorf("mode = %s, want demo", mode)
	}
}

func TestIntegrationService_OAuthFlow(t *testing.T) {
	svc, repo, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	start, err := svc.BeginOAuth(ctx, 1, "client-id", "client-secret", "org-42")
	if err != nil {
		t.Fatalf("BeginOAuth() error = %v", err)
	}
	if start.State == "" {
		t.Fatal("BeginOAuth() returned empty state")
	}

	parsed, err := url.Parse(start.AuthURL)
	if err != nil {
		t.Fatalf("auth URL does not parse: %v", err)
	}
	q := parsed.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("auth URL client_id = %q", q.Get("client_id"))
	}
	if q.Get("state") != start.State {
		t.Errorf("auth URL state = %q, want %q", q.Get("state"), start.State)
	}
	if !strings.Contains(q.Get("scope"), "ZohoBooks") {
		t.Errorf("auth URL scope = %q", q.Get("scope"))
	}

	rec, err := svc.CompleteOAuth(ctx, 1, "grant-code", start.State)
	if err != nil {
		t.Fatalf("CompleteOAuth() error = %v", err)
	}
	if rec.AccessToken != "access-1" || rec.RefreshToken != "refresh-1" {
		t.Errorf("tokens = %q/%q, want access-1/refresh-1", rec.AccessToken, rec.RefreshToken)
	}
	if rec.OrganizationID != "org-42" {
		t.Errorf("organization = %q, want org-42", rec.OrganizationID)
	}

	mode, _ := svc.ResolveMode(ctx, 1)
	if mode != integration.ProductionAuthenticated {
		t.Errorf("mode after callback = %s, want production_authenticated", mode)
	}

	// The state token is single-use: replaying the callback must fail
	if _, err := svc.CompleteOAuth(ctx, 1, "grant-code", start.State); !errors.HasCode(err, errors.ErrCodeInvalidHandshake) {
		t.Errorf("replayed callback error = %v, want invalid handshake", err)
	}
	if repo.ConsumeCalls != 2 {
		t.Errorf("consume calls = %d, want 2", repo.ConsumeCalls)
	}
}

func TestIntegrationService_CompleteOAuthRejectsWrongUser(t *testing.T) {
	svc, _, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	start, err := svc.BeginOAuth(ctx, 1, "client-id", "client-secret", "org-42")
	if err != nil {
		t.Fatalf("BeginOAuth() error = %v", err)
	}

	if _, err := svc.CompleteOAuth(ctx, 2, "grant-code", start.State); !errors.HasCode(err, errors.ErrCodeInvalidHandshake) {
		t.Errorf("cross-user callback error = %v, want invalid handshake", err)
	}
}

func TestIntegrationService_CompleteOAuthUnknownState(t *testing.T) {
	svc, _, cleanup := newIntegrationFixture(t)
	defer cleanup()

	if _, err := svc.CompleteOAuth(context.Background(), 1, "grant-code", "made-up"); !errors.HasCode(err, errors.ErrCodeInvalidHandshake) {
		t.Errorf("unknown state error = %v, want invalid handshake", err)
	}
}

func TestIntegrationService_RefreshAccessToken(t *testing.T) {
	svc, repo, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	rec := productionRecord(1, "access-1")
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	token, err := svc.RefreshAccessToken(ctx, rec)
	if err != nil {
		t.Fatalf("RefreshAccessToken() error = %v", err)
	}
	if token != "access-2" {
		t.Errorf("token = %q, want access-2", token)
	}

	stored, _ := repo.Get(ctx, 1, integration.ProviderZohoBooks)
	if stored.AccessToken != "access-2" {
		t.Errorf("stored token = %q, want access-2", stored.AccessToken)
	}
}

func TestIntegrationService_Status(t *testing.T) {
	svc, repo, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	info, err := svc.Status(ctx, 1)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if info.Connected {
		t.Error("Status() reports connected with no record")
	}

	rec := productionRecord(1, "token")
	now := time.Now()
	rec.LastSync = &now
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	info, err = svc.Status(ctx, 1)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !info.Connected {
		t.Fatal("Status() reports disconnected for an active record")
	}
	if info.Mode != "production_authenticated" {
		t.Errorf("mode = %q, want production_authenticated", info.Mode)
	}
	if info.LastSync == nil {
		t.Error("last sync missing from status")
	}
}

func TestIntegrationService_Disconnect(t *testing.T) {
	svc, repo, cleanup := newIntegrationFixture(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.Disconnect(ctx, 1); !errors.HasCode(err, errors.ErrCodeNotConnected) {
		t.Errorf("Disconnect() without record error = %v, want not connected", err)
	}

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := svc.Disconnect(ctx, 1); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}

	mode, _ := svc.ResolveMode(ctx, 1)
	if mode != integration.Disconnected {
		t.Errorf("mode after disconnect = %s, want disconnected", mode)
	}

	stored, _ := repo.Get(ctx, 1, integration.ProviderZohoBooks)
	if stored.AccessToken != "" {
		t.Error("access token not cleared on disconnect")
	}
}
