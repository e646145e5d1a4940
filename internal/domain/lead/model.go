package lead

import "time"

// Lead kinds
const (
	KindDemo    = "demo"
	KindContact = "contact"
)

// Lead statuses
const (
	StatusPending = "pending"
	StatusNew     = "new"
)

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
