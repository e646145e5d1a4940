package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vasool/vasool/internal/ai"
	"github.com/vasool/vasool/internal/domain/chat"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/mockdata"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/metrics"
	"github.com/vasool/vasool/internal/zoho"
)

const assistantSystemPrompt = "You are Vasool, a credit collections assistant. " +
	"Answer questions about the user's receivables using only the figures provided. " +
	"If the figures carry a placeholder disclaimer, repeat it verbatim at the start of your answer. " +
	"Keep answers short and concrete."

// ChatReply is one assistant response.
type ChatReply struct {
	SessionID  string     `json:"session_id"`
	Reply      string     `json:"reply"`
	Intent     string     `json:"intent"`
	Provenance Provenance `json:"provenance"`
}

// ChatService runs the collections chat assistant. Each message is
// classified to an accounting topic, grounded on the user's data (live,
// demo or placeholder) and answered by the LLM. Without an LLM the
// grounding summary itself is the answer.
type ChatService struct {
	repo         chat.Repository
	books        *BooksService
	integrations integration.Service
	assistant    ai.Assistant
	logger       *logger.Logger
}

// NewChatService creates a new chat service. assistant may be nil, in
// which case deterministic replies are served.
func NewChatService(repo chat.Repository, books *BooksService, integrations integration.Service, assistant ai.Assistant, log *logger.Logger) *ChatService {
	return &ChatService{
		repo:         repo,
		books:        books,
		integrations: integrations,
		assistant:    assistant,
		logger:       log,
	}
}

// Message processes one user message and returns the assistant's reply.
// An empty sessionID starts a new session.
func (s *ChatService) Message(ctx context.Context, userID int64, sessionID, body string) (*ChatReply, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	userMsg := &chat.Message{
		UserID:    userID,
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Body:      body,
	}
	if err := s.repo.Append(ctx, userMsg); err != nil {
		return nil, err
	}

	intent := ClassifyIntent(body)
	grounding, provenance := s.grounding(ctx, userID, intent)

	reply := s.compose(ctx, body, grounding, provenance)

	assistantMsg := &chat.Message{
		UserID:    userID,
		SessionID: sessionID,
		Sender:    chat.SenderAssistant,
		Body:      reply,
	}
	if err := s.repo.Append(ctx, assistantMsg); err != nil {
		return nil, err
	}

	metrics.RecordChatMessage(intent.String())

	return &ChatReply{
		SessionID:  sessionID,
		Reply:      reply,
		Intent:     intent.String(),
		Provenance: provenance,
	}, nil
}

// History returns a session's messages in chronological order.
func (s *ChatService) History(ctx context.Context, userID int64, sessionID string) ([]*chat.Message, error) {
	return s.repo.History(ctx, userID, sessionID)
}

// Sessions lists the user's chat sessions, most recent first.
func (s *ChatService) Sessions(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.Sessions(ctx, userID)
}

// grounding builds the figures block for the classified topic and tags
// where the figures came from.
func (s *ChatService) grounding(ctx context.Context, userID int64, intent chat.Intent) (string, Provenance) {
	mode, err := s.integrations.ResolveMode(ctx, userID)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to resolve integration mode")
		mode = integration.Disconnected
	}

	if intent == chat.IntentNone {
		switch mode {
		case integration.Demo:
			return "", ProvenanceDemo
		case integration.ProductionAuthenticated:
			return "", ProvenanceLive
		default:
			return "", ProvenanceMock
		}
	}

	if mode == integration.Demo {
		metrics.RecordFallback(string(ProvenanceDemo))
		return demoGrounding(intent), ProvenanceDemo
	}

	if mode.CanFetchLive() {
		if text, err := s.liveGrounding(ctx, userID, intent); err == nil {
			return text, ProvenanceLive
		} else {
			s.logger.WithFields(map[string]interface{}{
				"user_id": userID,
				"intent":  intent.String(),
			}).WithError(err).Warn("Chat grounding falling back to placeholder data")
		}
	}

	metrics.RecordFallback(string(ProvenanceMock))
	return demoGrounding(intent), ProvenanceMock
}

func (s *ChatService) liveGrounding(ctx context.Context, userID int64, intent chat.Intent) (string, error) {
	switch intent {
	case chat.IntentInvoices:
		invoices, err := s.books.Invoices(ctx, userID, "unpaid")
		if err != nil {
			return "", err
		}
		return formatInvoices(invoices), nil
	case chat.IntentCustomers:
		customers, err := s.books.Customers(ctx, userID)
		if err != nil {
			return "", err
		}
		return formatCustomers(customers), nil
	case chat.IntentReceivables:
		invoices, err := s.books.Invoices(ctx, userID, "unpaid")
		if err != nil {
			return "", err
		}
		var total float64
		for _, inv := range invoices {
			total += inv.Balance
		}
		return fmt.Sprintf("Total outstanding receivables: %.2f across %d unpaid invoices.", total, len(invoices)), nil
	}
	return "", nil
}

func demoGrounding(intent chat.Intent) string {
	var b strings.Builder
	switch intent {
	case chat.IntentInvoices:
		b.WriteString("Unpaid invoices:\n")
		for _, inv := range mockdata.RecentInvoices() {
			fmt.Fprintf(&b, "- %s, %s: %.2f (%s)\n", inv.Number, inv.Customer, inv.Amount, inv.Status)
		}
		b.WriteString("Overdue invoices:\n")
		for _, inv := range mockdata.OverdueInvoices() {
			fmt.Fprintf(&b, "- %s, %s: %.2f (%d days overdue)\n", inv.Number, inv.Customer, inv.Amount, inv.DaysOverdue)
		}
		fmt.Fprintf(&b, "Total unpaid: %.2f. Total overdue: %.2f.", mockdata.TotalUnpaid, mockdata.TotalOverdue)
	case chat.IntentCustomers:
		b.WriteString("Customer accounts:\n")
		for _, c := range mockdata.Customers() {
			fmt.Fprintf(&b, "- %s: %.2f outstanding\n", c.Name, c.Outstanding)
		}
	case chat.IntentReceivables:
		fmt.Fprintf(&b, "Total outstanding: %.2f. Recovery rate: %.1f%%. Active accounts: %d.",
			mockdata.AnalyticsOutstanding, mockdata.AnalyticsRecoveryRate, mockdata.AnalyticsAccounts)
	}
	return b.String()
}

func formatInvoices(invoices []zoho.Invoice) string {
	if len(invoices) == 0 {
		return "No unpaid invoices."
	}
	var b strings.Builder
	var total float64
	b.WriteString("Unpaid invoices:\n")
	for _, inv := range invoices {
		fmt.Fprintf(&b, "- %s, %s: %.2f %s (%s)\n", inv.InvoiceNumber, inv.CustomerName, inv.Balance, inv.Currency, inv.Status)
		total += inv.Balance
	}
	fmt.Fprintf(&b, "Total unpaid: %.2f.", total)
	return b.String()
}

func formatCustomers(customers []zoho.Customer) string {
	if len(customers) == 0 {
		return "No customer accounts."
	}
	var b strings.Builder
	b.WriteString("Customer accounts:\n")
	for _, c := range customers {
		name := c.ContactName
		if name == "" {
			name = c.CompanyName
		}
		fmt.Fprintf(&b, "- %s: %.2f outstanding\n", name, c.OutstandingAmount)
	}
	return b.String()
}

// compose produces the reply text. Placeholder-grounded answers always
// carry the disclaimer marker, whether the LLM wrote them or not.
func (s *ChatService) compose(ctx context.Context, body, grounding string, provenance Provenance) string {
	reply := ""
	if s.assistant != nil {
		prompt := body
		if grounding != "" {
			prompt = "Figures:\n" + grounding
			if provenance == ProvenanceMock {
				prompt += "\nDisclaimer: " + mockdata.Notice
			}
			prompt += "\n\nQuestion: " + body
		}
		var err error
		reply, err = s.assistant.Reply(ctx, assistantSystemPrompt, prompt)
		if err != nil {
			s.logger.ErrorWithErr(err, "Assistant reply failed, serving deterministic answer")
			reply = ""
		}
	}

	if reply == "" {
		if grounding != "" {
			reply = grounding
		} else {
			reply = "I can help with your receivables. Ask me about unpaid invoices, customer accounts or collection totals."
		}
	}

	if provenance == ProvenanceMock && grounding != "" && !strings.Contains(reply, mockdata.Marker) {
		reply = mockdata.Notice + "\n" + reply
	}

	return reply
}
