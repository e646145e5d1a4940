package integration

import "context"

// StatusInfo is the connection summary exposed to API callers. Secrets
// never leave the service layer.
type StatusInfo struct {
	Connected      bool       `json:"connected"`
	Provider       string     `json:"provider,omitempty"`
	Mode           string     `json:"mode,omitempty"`
	OrganizationID string     `json:"organization_id,omitempty"`
	ConnectedAt    *string    `json:"connected_at,omitempty"`
	LastSync       *string    `json:"last_sync,omitempty"`
}

// OAuthStart is the response to a user-supplied OAuth app setup request.
type OAuthStart struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// Service defines the interface for integration business logic
type Service interface {
	// ResolveMode derives the operating mode for a user
	ResolveMode(ctx context.Context, userID int64) (Mode, error)

	// ConnectDemo activates a demo-mode connection
	ConnectDemo(ctx context.Context, userID int64, email string) (*Integration, error)

	// BeginOAuth stores the user's OAuth app credentials behind a
	// single-use state token and returns the provider consent URL
	BeginOAuth(ctx context.Context, userID int64, clientID, clientSecret, organizationID string) (*OAuthStart, error)

	// CompleteOAuth consumes the state token, exchanges the grant code
	// for tokens and activates a production-mode connection
	CompleteOAuth(ctx context.Context, userID int64, code, state string) (*Integration, error)

	// RefreshAccessToken obtains and persists a fresh access token for
	// the record. Returns the new token.
	RefreshAccessToken(ctx context.Context, rec *Integration) (string, error)

	// Status summarizes the user's connection state
	Status(ctx context.Context, userID int64) (*StatusInfo, error)

	// Disconnect soft-deletes the user's connection
	Disconnect(ctx context.Context, userID int64) error
}
