package zoho

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized is returned when Zoho rejects the access token. The
// caller is expected to refresh once and retry.
var ErrUnauthorized = errors.New("zoho: access token rejected")

// Config holds the client configuration
type Config struct {
	AccountsURL string        // OAuth endpoints (default: https://accounts.zoho.com)
	BooksURL    string        // Books API base (default: https://books.zoho.com/api/v3)
	Timeout     time.Duration // HTTP client timeout (default: 30s)
	HTTPClient  *http.Client  // Optional custom HTTP client
}

// Client talks to the Zoho accounts and Books APIs
type Client struct {
	accountsURL string
	booksURL    string
	httpClient  *http.Client
}

// NewClient creates a new Zoho API client
func NewClient(cfg Config) *Client {
	if cfg.AccountsURL == "" {
		cfg.AccountsURL = "https://accounts.zoho.com"
	}
	if cfg.BooksURL == "" {
		cfg.BooksURL = "https://books.zoho.com/api/v3"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		accountsURL: strings.TrimRight(cfg.AccountsURL, "/"),
		booksURL:    strings.TrimRight(cfg.BooksURL, "/"),
		httpClient:  httpClient,
	}
}

// AuthorizeURL builds the consent page URL for a user-supplied OAuth app.
func (c *Client) AuthorizeURL(clientID, redirectURI, state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", clientID)
	q.Set("scope", "ZohoBooks.fullaccess.all")
	q.Set("redirect_uri", redirectURI)
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	q.Set("state", state)
	return c.accountsURL + "/oauth/v2/auth?" + q.Encode()
}

// ExchangeCode trades an authorization grant code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, redirectURI, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("redirect_uri", redirectURI)

	return c.tokenRequest(ctx, form)
}

// RefreshAccessToken obtains a fresh access token from a refresh token.
// Exactly one HTTP call; the caller decides what to do on failure.
func (c *Client) RefreshAccessToken(ctx context.Context, clientID, clientSecret, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	resp, err := c.tokenRequest(ctx, form)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsURL+"/oauth/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	var tok TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || tok.Error != "" || tok.AccessToken == "" {
		if tok.Error != "" {
			return nil, fmt.Errorf("token request rejected: %s", tok.Error)
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	return &tok, nil
}

// Invoices lists invoices, optionally filtered by status (e.g. "unpaid").
func (c *Client) Invoices(ctx context.Context, creds Credentials, status string) ([]Invoice, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}

	var envelope struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := c.get(ctx, "/invoices", creds, params, &envelope); err != nil {
		return nil, err
	}
	if envelope.Invoices == nil {
		return []Invoice{}, nil
	}
	return envelope.Invoices, nil
}

// Customers lists contacts of type customer.
func (c *Client) Customers(ctx context.Context, creds Credentials) ([]Customer, error) {
	params := url.Values{}
	params.Set("contact_type", "customer")

	var envelope struct {
		Contacts []Customer `json:"contacts"`
	}
	if err := c.get(ctx, "/contacts", creds, params, &envelope); err != nil {
		return nil, err
	}
	if envelope.Contacts == nil {
		return []Customer{}, nil
	}
	return envelope.Contacts, nil
}

// Payments lists customer payments.
func (c *Client) Payments(ctx context.Context, creds Credentials) ([]Payment, error) {
	var envelope struct {
		Payments []Payment `json:"customerpayments"`
	}
	if err := c.get(ctx, "/customerpayments", creds, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Payments == nil {
		return []Payment{}, nil
	}
	return envelope.Payments, nil
}

// Receivables fetches the receivables aging report. The report shape is
// passed through untouched.
func (c *Client) Receivables(ctx context.Context, creds Credentials) (map[string]interface{}, error) {
	var envelope map[string]interface{}
	if err := c.get(ctx, "/reports/receivables", creds, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

// get performs a single authenticated Books API call. A 401 maps to
// ErrUnauthorized so the caller can refresh and retry.
func (c *Client) get(ctx context.Context, path string, creds Credentials, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("organization_id", creds.OrganizationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.booksURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("zoho API error (status %d, code %d): %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("zoho API error (status %d)", resp.StatusCode)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
