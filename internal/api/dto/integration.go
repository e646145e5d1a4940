package dto

// ConnectDemoRequest activates a demo-mode accounting connection
type ConnectDemoRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// OAuthSetupRequest carries the user's own Zoho OAuth app credentials
type OAuthSetupRequest struct {
	ClientID       string `json:"client_id" validate:"required"`
	ClientSecret   string `json:"client_secret" validate:"required"`
	OrganizationID string `json:"organization_id" validate:"required"`
}

// OAuthCallbackRequest completes the OAuth consent flow
type OAuthCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}
