// Package mockdata holds the curated demo dataset served when no live
// accounting data is available. Figures are stable so the product demo
// and the fallback path look identical across environments.
package mockdata

// Marker prefixes any numeric answer composed from placeholder data so
// users never mistake it for their own books.
const Marker = "[DUMMY DATA]"

// Notice is the standard placeholder disclaimer attached to mock responses.
const Notice = Marker + " Connect your accounting software to see live figures."

// Invoice is a demo invoice
type Invoice struct {
	Number      string  `json:"invoice_number"`
	Customer    string  `json:"customer_name"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	DaysOverdue int     `json:"days_overdue,omitempty"`
}

// TrendPoint is one month of collection history
type TrendPoint struct {
	Month       string  `json:"month"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
}

// Customer is a demo customer account
type Customer struct {
	Name        string  `json:"name"`
	Outstanding float64 `json:"outstanding"`
}

// RecentInvoices are the unpaid invoices shown on the demo dashboard.
func RecentInvoices() []Invoice {
	return []Invoice{
		{Number: "INV-2024-001", Customer: "ABC Corp", Amount: 50000, Status: "unpaid"},
		{Number: "INV-2024-002", Customer: "XYZ Ltd", Amount: 75000, Status: "unpaid"},
	}
}

// OverdueInvoices are the overdue invoices shown on the demo dashboard.
func OverdueInvoices() []Invoice {
	return []Invoice{
		{Number: "INV-2024-003", Customer: "DEF Industries", Amount: 120000, Status: "overdue", DaysOverdue: 15},
		{Number: "INV-2024-004", Customer: "GHI Enterprises", Amount: 90000, Status: "overdue", DaysOverdue: 30},
	}
}

// Demo dashboard totals.
const (
	TotalUnpaid  = 125000.0
	TotalOverdue = 210000.0
)

// Trends is the six-month demo collection history, oldest first.
func Trends() []TrendPoint {
	return []TrendPoint{
		{Month: "May 2024", Collected: 850000, Outstanding: 520000},
		{Month: "Jun 2024", Collected: 920000, Outstanding: 495000},
		{Month: "Jul 2024", Collected: 980000, Outstanding: 470000},
		{Month: "Aug 2024", Collected: 1050000, Outstanding: 440000},
		{Month: "Sep 2024", Collected: 1120000, Outstanding: 410000},
		{Month: "Oct 2024", Collected: 1200000, Outstanding: 380000},
	}
}

// Collection summary figures for the trends view.
const (
	TotalCollected        = 6120000.0
	TotalOutstandingTrend = 2650000.0
	CollectionEfficiency  = 75.5
	AvgCollectionDays     = 28
)

// Analytics summary figures for the overview card.
const (
	AnalyticsOutstanding  = 4520000.0
	AnalyticsRecoveryRate = 68.0
	AnalyticsAccounts     = 124
)

// Customers are the demo customer accounts used for chat grounding.
func Customers() []Customer {
	return []Customer{
		{Name: "ABC Corp", Outstanding: 50000},
		{Name: "XYZ Ltd", Outstanding: 75000},
		{Name: "DEF Industries", Outstanding: 120000},
		{Name: "GHI Enterprises", Outstanding: 90000},
	}
}
