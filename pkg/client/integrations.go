package client

import "context"

// IntegrationService manages accounting integrations
type IntegrationService struct {
	client *Client
}

// OAuthSetupRequest carries the user's own Zoho OAuth app credentials
type OAuthSetupRequest struct {
	ClientID       string `json:"client_id"`
	ClientSecret   string `json:"client_secret"`
	OrganizationID string `json:"organization_id"`
}

// OAuthCallbackRequest completes the consent flow
type OAuthCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// Status returns the current accounting connection state
func (s *IntegrationService) Status(ctx context.Context) (*IntegrationStatus, error) {
	var status IntegrationStatus
	if err := s.client.doRequest(ctx, "GET", "/api/integrations/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ConnectDemo activates a demo-mode connection with curated sample data
func (s *IntegrationService) ConnectDemo(ctx context.Context, email string) (*Integration, error) {
	req := map[string]string{}
	if email != "" {
		req["email"] = email
	}

	var rec Integration
	if err := s.client.doRequest(ctx, "POST", "/api/integrations/zoho/connect", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// BeginOAuth stores OAuth app credentials and returns the consent URL
func (s *IntegrationService) BeginOAuth(ctx context.Context, req OAuthSetupRequest) (*OAuthStart, error) {
	var start OAuthStart
	if err := s.client.doRequest(ctx, "POST", "/api/integrations/zoho/user-oauth-setup", req, &start); err != nil {
		return nil, err
	}
	return &start, nil
}

// CompleteOAuth exchanges the grant code and activates the connection
func (s *IntegrationService) CompleteOAuth(ctx context.Context, code, state string) (*Integration, error) {
	req := OAuthCallbackRequest{Code: code, State: state}

	var rec Integration
	if err := s.client.doRequest(ctx, "POST", "/api/integrations/zoho/callback", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Disconnect removes the accounting connection
func (s *IntegrationService) Disconnect(ctx context.Context) error {
	return s.client.doRequest(ctx, "DELETE", "/api/integrations/zoho/disconnect", nil, nil)
}
