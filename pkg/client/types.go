package client

import "time"

// User represents a registered account
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthResponse is returned from signup and login
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// IntegrationStatus summarizes the accounting connection state
type IntegrationStatus struct {
	Connected      bool    `json:"connected"`
	Provider       string  `json:"provider,omitempty"`
	Mode           string  `json:"mode,omitempty"`
	OrganizationID string  `json:"organization_id,omitempty"`
	ConnectedAt    *string `json:"connected_at,omitempty"`
	LastSync       *string `json:"last_sync,omitempty"`
}

// OAuthStart holds the provider consent URL for the OAuth flow
type OAuthStart struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// Integration is a stored accounting connection record
type Integration struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Provider       string     `json:"provider"`
	Mode           string     `json:"mode"`
	Status         string     `json:"status"`
	OrganizationID string     `json:"organization_id,omitempty"`
	ConnectedAt    *time.Time `json:"connected_at,omitempty"`
	LastSync       *time.Time `json:"last_sync,omitempty"`
}

// InvoiceSummary is one invoice row on the collections dashboard
type InvoiceSummary struct {
	Number      string  `json:"invoice_number"`
	Customer    string  `json:"customer_name"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	DaysOverdue int     `json:"days_overdue,omitempty"`
}

// Overview is the headline analytics card
type Overview struct {
	TotalOutstanding float64 `json:"total_outstanding"`
	RecoveryRate     float64 `json:"recovery_rate"`
	ActiveAccounts   int     `json:"active_accounts"`
	Provenance       string  `json:"provenance"`
	Notice           string  `json:"notice,omitempty"`
}

// Collections is the unpaid/overdue invoice breakdown
type Collections struct {
	RecentInvoices  []InvoiceSummary `json:"recent_invoices"`
	OverdueInvoices []InvoiceSummary `json:"overdue_invoices"`
	TotalUnpaid     float64          `json:"total_unpaid"`
	TotalOverdue    float64          `json:"total_overdue"`
	Provenance      string           `json:"provenance"`
	Notice          string           `json:"notice,omitempty"`
}

// TrendPoint is one month of collection history
type TrendPoint struct {
	Month       string  `json:"month"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
}

// Analytics is the trailing six-month collection trend view
type Analytics struct {
	Trend             []TrendPoint `json:"trend"`
	TotalCollected    float64      `json:"total_collected"`
	TotalOutstanding  float64      `json:"total_outstanding"`
	Efficiency        float64      `json:"collection_efficiency"`
	AvgCollectionDays int          `json:"avg_collection_days"`
	Provenance        string       `json:"provenance"`
	Notice            string       `json:"notice,omitempty"`
}

// Reconciliation is the payment matching summary
type Reconciliation struct {
	TotalPayments int    `json:"total_payments"`
	Matched       int    `json:"matched"`
	Unmatched     int    `json:"unmatched"`
	Provenance    string `json:"provenance"`
	Notice        string `json:"notice,omitempty"`
}

// ChatReply is the assistant's response to a message
type ChatReply struct {
	SessionID  string `json:"session_id"`
	Reply      string `json:"reply"`
	Intent     string `json:"intent"`
	Provenance string `json:"provenance"`
}

// ChatMessage is one stored turn in a chat session
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Lead is a captured demo-scheduling or contact-sales request
type Lead struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message,omitempty"`
	PreferredAt string    `json:"preferred_at,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// HealthResponse is the liveness probe payload
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
