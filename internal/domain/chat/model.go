package chat

import "time"

// Message senders
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one turn in a chat session
type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Intent is the grounding topic classified from a user message. The set
// is closed: anything unrecognized is IntentNone.
type Intent int

const (
	IntentNone Intent = iota
	IntentInvoices
	IntentCustomers
	IntentReceivables
)

func (i Intent) String() string {
	switch i {
	case IntentInvoices:
		return "invoices"
	case IntentCustomers:
		return "customers"
	case IntentReceivables:
		return "receivables"
	default:
		return "none"
	}
}
