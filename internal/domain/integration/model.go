package integration

import (
	"fmt"
	"time"
)

// Provider types
const (
	ProviderZohoBooks = "zohobooks"
)

// Integration modes as stored on the record
const (
	ModeDemo       = "demo"
	ModeProduction = "production"
)

// Integration statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Mode is the resolved operating mode for a user's accounting integration.
// It drives every downstream data-fetch decision.
type Mode int

const (
	// Disconnected means no active integration record exists.
	Disconnected Mode = iota
	// Demo means the user connected in demo mode; the curated demo
	// dataset is served as if it were their own books.
	Demo
	// ProductionUnauthenticated means a production record exists but
	// carries no usable access token. Behaves as Disconnected for data
	// fetching.
	ProductionUnauthenticated
	// ProductionAuthenticated means a production record with an access
	// token exists; live fetches are attempted.
	ProductionAuthenticated
)

func (m Mode) String() string {
	switch m {
	case Demo:
		return "demo"
	case ProductionUnauthenticated:
		return "production_unauthenticated"
	case ProductionAuthenticated:
		return "production_authenticated"
	default:
		return "disconnected"
	}
}

// CanFetchLive reports whether live provider calls may be attempted in
// this mode.
func (m Mode) CanFetchLive() bool {
	return m == ProductionAuthenticated
}

// Integration is the stored per-user provider connection record.
// One row per (user_id, provider).
type Integration struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Provider       string     `json:"provider"`
	Mode           string     `json:"mode"`
	Status         string     `json:"status"`
	Email          string     `json:"email,omitempty"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	ClientID       string     `json:"-"`
	ClientSecret   string     `json:"-"`
	OrganizationID string     `json:"-"`
	ConnectedAt    time.Time  `json:"connected_at"`
	LastSync       *time.Time `json:"last_sync,omitempty"`
	DisconnectedAt *time.Time `json:"disconnected_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ResolveMode derives the operating mode from a record. A nil record or
// an inactive one resolves to Disconnected.
func ResolveMode(rec *Integration) Mode {
	if rec == nil || rec.Status != StatusActive {
		return Disconnected
	}
	if rec.Mode == ModeDemo {
		return Demo
	}
	if rec.AccessToken == "" {
		return ProductionUnauthenticated
	}
	return ProductionAuthenticated
}

// Handshake is a pending OAuth authorization attempt. The state token
// binds the provider callback to the user who started the flow and is
// consumed exactly once.
type Handshake struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	State          string    `json:"state"`
	ClientID       string    `json:"-"`
	ClientSecret   string    `json:"-"`
	OrganizationID string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Reason classifies why live accounting data was unavailable.
type Reason string

const (
	ReasonNotConnected  Reason = "not_connected"
	ReasonAuthExpired   Reason = "auth_expired"
	ReasonProviderError Reason = "provider_error"
)

// UnavailableError reports that live data could not be fetched. All
// reasons are recoverable; callers degrade to fallback data instead of
// failing the request.
type UnavailableError struct {
	Reason Reason
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("accounting data unavailable (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("accounting data unavailable (%s)", e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Unavailable builds an UnavailableError.
func Unavailable(reason Reason, err error) *UnavailableError {
	return &UnavailableError{Reason: reason, Err: err}
}
