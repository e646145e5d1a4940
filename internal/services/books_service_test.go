package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vasool/vasool/internal/config"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/testutil"
	"github.com/vasool/vasool/internal/zoho"
)

type upstream struct {
	resourceCalls atomic.Int64
	tokenCalls    atomic.Int64

	// acceptToken is the only access token the resource endpoints accept
	acceptToken string
	// refreshedToken is handed out by the token endpoint; empty means
	// refresh requests fail
	refreshedToken string
	// resourceStatus overrides the resource response when non-zero
	resourceStatus int
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		u.tokenCalls.Add(1)
		if u.refreshedToken == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_code"}`)
			return
		}
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, u.refreshedToken)
	})
	mux.HandleFunc("/invoices", u.resource(`{"invoices":[
		{"invoice_number":"INV-001","customer_name":"ABC Corp","status":"unpaid","balance":50000,"date":"2026-07-20","due_date":"2026-08-01"},
		{"invoice_number":"INV-002","customer_name":"XYZ Ltd","status":"unpaid","balance":75000,"date":"2026-08-30","due_date":"2026-09-15"}
	]}`))
	mux.HandleFunc("/contacts", u.resource(`{"contacts":[
		{"contact_name":"ABC Corp","outstanding_receivable_amount":50000},
		{"contact_name":"XYZ Ltd","outstanding_receivable_amount":75000}
	]}`))
	mux.HandleFunc("/customerpayments", u.resource(`{"customerpayments":[
		{"payment_id":"PMT-001","customer_name":"ABC Corp","amount":30000,"date":"2026-08-10"},
		{"payment_id":"PMT-002","customer_name":"XYZ Ltd","amount":20000,"date":"2026-06-05"}
	]}`))
	return mux
}

func (u *upstream) resource(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u.resourceCalls.Add(1)
		if u.resourceStatus != 0 {
			w.WriteHeader(u.resourceStatus)
			return
		}
		if r.Header.Get("Authorization") != "Zoho-oauthtoken "+u.acceptToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, body)
	}
}

func newBooksFixture(t *testing.T, u *upstream) (*BooksService, *testutil.MockIntegrationRepository, func()) {
	t.Helper()

	srv := httptest.NewServer(u.handler())
	client := zoho.NewClient(zoho.Config{
		AccountsURL: srv.URL,
		BooksURL:    srv.URL,
		Timeout:     5 * time.Second,
	})

	repo := testutil.NewMockIntegrationRepository()
	refresher := NewIntegrationService(repo, client, config.ZohoConfig{
		RedirectURL: "http://localhost/callback",
	}, logger.Nop())

	return NewBooksService(repo, refresher, client, logger.Nop()), repo, srv.Close
}

func productionRecord(userID int64, token string) *integration.Integration {
	return &integration.Integration{
		UserID:         userID,
		Provider:       integration.ProviderZohoBooks,
		Mode:           integration.ModeProduction,
		Status:         integration.StatusActive,
		AccessToken:    token,
		RefreshToken:   "refresh-token",
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		OrganizationID: "org-42",
		ConnectedAt:    time.Now(),
	}
}

func TestBooksService_Invoices(t *testing.T) {
	u := &upstream{acceptToken: "good-token"}
	svc, repo, cleanup := newBooksFixture(t, u)
	defer cleanup()

	if err := repo.Upsert(context.Background(), productionRecord(1, "good-token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	invoices, err := svc.Invoices(context.Background(), 1, "unpaid")
	if err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("Invoices() returned %d invoices, want 2", len(invoices))
	}
	if got := u.resourceCalls.Load(); got != 1 {
		t.Errorf("resource calls = %d, want 1", got)
	}
	if got := u.tokenCalls.Load(); got != 0 {
		t.Errorf("token calls = %d, want 0", got)
	}

	rec, err := repo.Get(context.Background(), 1, integration.ProviderZohoBooks)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.LastSync == nil {
		t.Error("last sync not recorded after successful fetch")
	}
}

func TestBooksService_RefreshesOnceAndRetries(t *testing.T) {
	u := &upstream{acceptToken: "fresh-token", refreshedToken: "fresh-token"}
	svc, repo, cleanup := newBooksFixture(t, u)
	defer cleanup()

	// Stored token is stale, so the first call gets a 401
	if err := repo.Upsert(context.Background(), productionRecord(1, "stale-token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	invoices, err := svc.Invoices(context.Background(), 1, "unpaid")
	if err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("Invoices() returned %d invoices, want 2", len(invoices))
	}
	if got := u.resourceCalls.Load(); got != 2 {
		t.Errorf("resource calls = %d, want 2 (original plus retry)", got)
	}
	if got := u.tokenCalls.Load(); got != 1 {
		t.Errorf("token calls = %d, want 1", got)
	}

	rec, _ := repo.Get(context.Background(), 1, integration.ProviderZohoBooks)
	if rec.AccessToken != "fresh-token" {
		t.Errorf("stored token = %q, want refreshed token persisted", rec.AccessToken)
	}
}

func TestBooksService_BoundedCallsOnPersistentUnauthorized(t *testing.T) {
	// The token endpoint succeeds but the resource keeps rejecting, e.g.
	// a revoked grant. The fetch must stop after one refresh and one
	// retry instead of looping.
	u := &upstream{acceptToken: "never-issued", refreshedToken: "still-bad"}
	svc, repo, cleanup := newBooksFixture(t, u)
	defer cleanup()

	if err := repo.Upsert(context.Background(), productionRecord(1, "stale-token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	_, err := svc.Invoices(context.Background(), 1, "unpaid")
	var unavailable *integration.UnavailableError
	if !stderrors.As(err, &unavailable) {
		t.Fatalf("Invoices() error = %v, want UnavailableError", err)
	}
	if unavailable.Reason != integration.ReasonAuthExpired {
		t.Errorf("reason = %s, want %s", unavailable.Reason, integration.ReasonAuthExpired)
	}
	if got := u.resourceCalls.Load(); got != 2 {
		t.Errorf("resource calls = %d, want exactly 2", got)
	}
	if got := u.tokenCalls.Load(); got != 1 {
		t.Errorf("token calls = %d, want exactly 1", got)
	}
}

func TestBooksService_RefreshFailure(t *testing.T) {
	u := &upstream{acceptToken: "other-token"} // refresh endpoint rejects
	svc, repo, cleanup := newBooksFixture(t, u)
	defer cleanup()

	if err := repo.Upsert(context.Background(), productionRecord(1, "stale-token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	_, err := svc.Invoices(context.Background(), 1, "unpaid")
	var unavailable *integration.UnavailableError
	if !stderrors.As(err, &unavailable) {
		t.Fatalf("Invoices() error = %v, want UnavailableError", err)
	}
	if unavailable.Reason != integration.ReasonAuthExpired {
		t.Errorf("reason = %s, want %s", unavailable.Reason, integration.ReasonAuthExpired)
	}
	// No retry without a fresh token
	if got := u.resourceCalls.Load(); got != 1 {
		t.Errorf("resource calls = %d, want 1", got)
	}
	if got := u.tokenCalls.Load(); got != 1 {
		t.Errorf("token calls = %d, want 1", got)
	}
}

func TestBooksService_NoRefreshWithoutRefreshToken(t *testing.T) {
	// A working token endpoint must not be called when the record has no
	// refresh token to send it.
	u := &upstream{acceptToken: "other-token", refreshedToken: "other-token"}
	svc, repo, cleanup := newBooksFixture(t, u)
	defer cleanup()

	rec := productionRecord(1, "stale-token")
	rec.RefreshToken = ""
	if err := repo.Upsert(context.Background(), rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	_, err := svc.Invoices(context.Background(), 1, "unpaid")
	var unavailable *integration.UnavailableError
	if !stderrors.As(err, &unavailable) {
		t.Fatalf("Invoices() error = %v, want UnavailableError", err)
	}
	if unavailable.Reason != integration.ReasonAuthExpired {
		t.Errorf("reason = %s, want %s", unavailable.Reason, integration.ReasonAuthExpired)
	}
	if got := u.resourceCalls.Load(); got != 1 {
		t.Errorf("resource calls = %d, want 1", got)
	}
	if got := u.tokenCalls.Load(); got != 0 {
		t.Errorf("token calls = %d, want 0", got)
	}
}

func TestBooksService_ProviderError(t *testing.T) {
	u := &upstream{acceptToken: "good-token", resourceStatus: http.StatusInternalServerError}
	svc, repo, cleanup := newBooksFixture(t, u)
	defer cleanup()

	if err := repo.Upsert(context.Background(), productionRecord(1, "good-token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	_, err := svc.Invoices(context.Background(), 1, "unpaid")
	var unavailable *integration.UnavailableError
	if !stderrors.As(err, &unavailable) {
		t.Fatalf("Invoices() error = %v, want UnavailableError", err)
	}
	if unavailable.Reason != integration.ReasonProviderError {
		t.Errorf("reason = %s, want %s", unavailable.Reason, integration.ReasonProviderError)
	}
	if got := u.tokenCalls.Load(); got != 0 {
		t.Errorf("token calls = %d, want 0", got)
	}
}

func TestBooksService_NoLiveFetchOutsideAuthenticatedProduction(t *testing.T) {
	tests := []struct {
		name   string
		record *integration.Integration
	}{
		{name: "no record", record: nil},
		{
			name: "demo mode",
			record: &integration.Integration{
				UserID: 1, Provider: integration.ProviderZohoBooks,
				Mode: integration.ModeDemo, Status: integration.StatusActive,
			},
		},
		{
			name: "disconnected record",
			record: &integration.Integration{
				UserID: 1, Provider: integration.ProviderZohoBooks,
				Mode: integration.ModeProduction, Status: integration.StatusInactive,
				AccessToken: "token",
			},
		},
		{
			name: "production without token",
			record: &integration.Integration{
				UserID: 1, Provider: integration.ProviderZohoBooks,
				Mode: integration.ModeProduction, Status: integration.StatusActive,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &upstream{acceptToken: "good-token"}
			svc, repo, cleanup := newBooksFixture(t, u)
			defer cleanup()

			if tt.record != nil {
				if err := repo.Upsert(context.Background(), tt.record); err != nil {
					t.Fatalf("Upsert() error = %v", err)
				}
			}

			_, err := svc.Invoices(context.Background(), 1, "unpaid")
			var unavailable *integration.UnavailableError
			if !stderrors.As(err, &unavailable) {
				t.Fatalf("Invoices() error = %v, want UnavailableError", err)
			}
			if unavailable.Reason != integration.ReasonNotConnected {
				t.Errorf("reason = %s, want %s", unavailable.Reason, integration.ReasonNotConnected)
			}
			if got := u.resourceCalls.Load() + u.tokenCalls.Load(); got != 0 {
				t.Errorf("upstream calls = %d, want 0", got)
			}
		})
	}
}
