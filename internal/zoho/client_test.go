package zoho

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_RefreshAccessToken(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantToken string
		wantErr   bool
	}{
		{
			name:      "successful refresh",
			status:    http.StatusOK,
			body:      `{"access_token":"new-token","expires_in":3600,"token_type":"Bearer"}`,
			wantToken: "new-token",
		},
		{
			name:    "invalid refresh token",
			status:  http.StatusOK,
			body:    `{"error":"invalid_code"}`,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotForm string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/oauth/v2/token" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if err := r.ParseForm(); err == nil {
					gotForm = r.PostForm.Encode()
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Config{AccountsURL: srv.URL, BooksURL: srv.URL})
			token, err := c.RefreshAccessToken(context.Background(), "cid", "secret", "rt")

			if (err != nil) != tt.wantErr {
				t.Fatalf("RefreshAccessToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if token != tt.wantToken {
					t.Errorf("RefreshAccessToken() = %q, want %q", token, tt.wantToken)
				}
				if !strings.Contains(gotForm, "grant_type=refresh_token") {
					t.Errorf("request form missing grant_type: %s", gotForm)
				}
				if !strings.Contains(gotForm, "refresh_token=rt") {
					t.Errorf("request form missing refresh_token: %s", gotForm)
				}
			}
		})
	}
}

func TestClient_Invoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Zoho-oauthtoken tok" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("organization_id"); got != "org-1" {
			t.Errorf("organization_id = %q", got)
		}
		if got := r.URL.Query().Get("status"); got != "unpaid" {
			t.Errorf("status = %q", got)
		}
		w.Write([]byte(`{"code":0,"invoices":[
			{"invoice_id":"1","invoice_number":"INV-001","customer_name":"ABC Corp","status":"unpaid","total":50000,"balance":50000}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{AccountsURL: srv.URL, BooksURL: srv.URL})
	creds := Credentials{AccessToken: "tok", OrganizationID: "org-1"}

	invoices, err := c.Invoices(context.Background(), creds, "unpaid")
	if err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("Invoices() returned %d invoices, want 1", len(invoices))
	}
	if invoices[0].InvoiceNumber != "INV-001" {
		t.Errorf("InvoiceNumber = %q", invoices[0].InvoiceNumber)
	}
	if invoices[0].Balance != 50000 {
		t.Errorf("Balance = %v", invoices[0].Balance)
	}
}

func TestClient_Invoices_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"message":"success"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{AccountsURL: srv.URL, BooksURL: srv.URL})
	invoices, err := c.Invoices(context.Background(), Credentials{AccessToken: "tok", OrganizationID: "org"}, "")
	if err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	if invoices == nil {
		t.Fatal("Invoices() returned nil, want empty slice")
	}
	if len(invoices) != 0 {
		t.Errorf("Invoices() returned %d invoices, want 0", len(invoices))
	}
}

func TestClient_Get_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":57,"message":"You are not authorized to perform this operation"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{AccountsURL: srv.URL, BooksURL: srv.URL})
	_, err := c.Customers(context.Background(), Credentials{AccessToken: "stale", OrganizationID: "org"})

	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Customers() error = %v, want ErrUnauthorized", err)
	}
}

func TestClient_Get_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"code":500,"message":"internal error"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{AccountsURL: srv.URL, BooksURL: srv.URL})
	_, err := c.Payments(context.Background(), Credentials{AccessToken: "tok", OrganizationID: "org"})

	if err == nil {
		t.Fatal("Payments() expected error")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("Payments() should not map 502 to ErrUnauthorized")
	}
}
