package services

import (
	"strings"

	"github.com/vasool/vasool/internal/domain/chat"
)

// Intent keyword sets, checked in order. The first matching set wins, so
// "overdue customer invoices" grounds on invoices.
var (
	invoiceKeywords    = []string{"invoice", "overdue", "outstanding", "unpaid"}
	customerKeywords   = []string{"customer", "client", "account"}
	receivableKeywords = []string{"receivable", "collection", "summary", "total"}
)

// ClassifyIntent maps a user message to the accounting resource it
// should be grounded on. Unrecognized messages get no grounding.
func ClassifyIntent(message string) chat.Intent {
	m := strings.ToLower(message)
	switch {
	case containsAny(m, invoiceKeywords):
		return chat.IntentInvoices
	case containsAny(m, customerKeywords):
		return chat.IntentCustomers
	case containsAny(m, receivableKeywords):
		return chat.IntentReceivables
	}
	return chat.IntentNone
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
