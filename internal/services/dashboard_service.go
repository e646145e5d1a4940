package services

import (
	"context"
	"time"

	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/mockdata"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/metrics"
	"github.com/vasool/vasool/internal/zoho"
)

// Provenance tags where the figures in a response came from.
type Provenance string

const (
	// ProvenanceLive means the figures came from the user's own books.
	ProvenanceLive Provenance = "live"
	// ProvenanceDemo means a demo-mode user was served the demo dataset.
	ProvenanceDemo Provenance = "demo"
	// ProvenanceMock means live data was unavailable and placeholder
	// figures were served with a disclaimer.
	ProvenanceMock Provenance = "mock"
)

// InvoiceSummary is one invoice row on the collections dashboard.
type InvoiceSummary struct {
	Number      string  `json:"invoice_number"`
	Customer    string  `json:"customer_name"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	DaysOverdue int     `json:"days_overdue,omitempty"`
}

// Overview is the headline analytics card.
type Overview struct {
	TotalOutstanding float64    `json:"total_outstanding"`
	RecoveryRate     float64    `json:"recovery_rate"`
	ActiveAccounts   int        `json:"active_accounts"`
	Provenance       Provenance `json:"provenance"`
	Notice           string     `json:"notice,omitempty"`
}

// Collections is the unpaid/overdue invoice breakdown.
type Collections struct {
	RecentInvoices  []InvoiceSummary `json:"recent_invoices"`
	OverdueInvoices []InvoiceSummary `json:"overdue_invoices"`
	TotalUnpaid     float64          `json:"total_unpaid"`
	TotalOverdue    float64          `json:"total_overdue"`
	Provenance      Provenance       `json:"provenance"`
	Notice          string           `json:"notice,omitempty"`
}

// TrendPoint is one month of collection history.
type TrendPoint struct {
	Month       string  `json:"month"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
}

// Analytics is the trailing six-month collection trend view.
type Analytics struct {
	Trend             []TrendPoint `json:"trend"`
	TotalCollected    float64      `json:"total_collected"`
	TotalOutstanding  float64      `json:"total_outstanding"`
	Efficiency        float64      `json:"collection_efficiency"`
	AvgCollectionDays int          `json:"avg_collection_days"`
	Provenance        Provenance   `json:"provenance"`
	Notice            string       `json:"notice,omitempty"`
}

// Reconciliation is the payment matching summary. Matching is not yet
// implemented, so every fetched payment reports as matched.
type Reconciliation struct {
	TotalPayments int        `json:"total_payments"`
	Matched       int        `json:"matched"`
	Unmatched     int        `json:"unmatched"`
	Provenance    Provenance `json:"provenance"`
	Notice        string     `json:"notice,omitempty"`
}

// DashboardService composes dashboard views from live accounting data,
// degrading to the demo dataset when live data is unavailable. Responses
// built from placeholder figures carry a disclaimer notice.
type DashboardService struct {
	books        *BooksService
	integrations integration.Service
	logger       *logger.Logger
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(books *BooksService, integrations integration.Service, log *logger.Logger) *DashboardService {
	return &DashboardService{
		books:        books,
		integrations: integrations,
		logger:       log,
		now:          time.Now,
	}
}

// Overview returns the headline analytics for a user.
func (s *DashboardService) Overview(ctx context.Context, userID int64) (*Overview, error) {
	mode, err := s.integrations.ResolveMode(ctx, userID)
	if err != nil {
		return nil, err
	}

	if mode == integration.Demo {
		metrics.RecordFallback(string(ProvenanceDemo))
		return &Overview{
			TotalOutstanding: mockdata.AnalyticsOutstanding,
			RecoveryRate:     mockdata.AnalyticsRecoveryRate,
			ActiveAccounts:   mockdata.AnalyticsAccounts,
			Provenance:       ProvenanceDemo,
		}, nil
	}

	if mode.CanFetchLive() {
		invoices, err := s.books.Invoices(ctx, userID, "unpaid")
		if err == nil {
			customers, cerr := s.books.Customers(ctx, userID)
			if cerr == nil {
				return s.liveOverview(invoices, customers), nil
			}
			err = cerr
		}
		s.logFallback(userID, "overview", err)
	}

	metrics.RecordFallback(string(ProvenanceMock))
	return &Overview{
		TotalOutstanding: mockdata.AnalyticsOutstanding,
		RecoveryRate:     mockdata.AnalyticsRecoveryRate,
		ActiveAccounts:   mockdata.AnalyticsAccounts,
		Provenance:       ProvenanceMock,
		Notice:           mockdata.Notice,
	}, nil
}

func (s *DashboardService) liveOverview(invoices []zoho.Invoice, customers []zoho.Customer) *Overview {
	var total float64
	var overdue int
	today := s.now()
	for _, inv := range invoices {
		total += inv.Balance
		if isOverdue(inv, today) {
			overdue++
		}
	}
	// Recovery rate counts invoices, not amounts, so one large overdue
	// invoice weighs the same as a small one.
	return &Overview{
		TotalOutstanding: total,
		RecoveryRate:     recoveryRate(float64(len(invoices)), float64(overdue)),
		ActiveAccounts:   len(customers),
		Provenance:       ProvenanceLive,
	}
}

// Collections returns the unpaid and overdue invoice breakdown.
func (s *DashboardService) Collections(ctx context.Context, userID int64) (*Collections, error) {
	mode, err := s.integrations.ResolveMode(ctx, userID)
	if err != nil {
		return nil, err
	}

	if mode == integration.Demo {
		metrics.RecordFallback(string(ProvenanceDemo))
		return demoCollections(ProvenanceDemo, ""), nil
	}

	if mode.CanFetchLive() {
		invoices, err := s.books.Invoices(ctx, userID, "unpaid")
		if err == nil {
			return s.liveCollections(invoices), nil
		}
		s.logFallback(userID, "collections", err)
	}

	metrics.RecordFallback(string(ProvenanceMock))
	return demoCollections(ProvenanceMock, mockdata.Notice), nil
}

func demoCollections(p Provenance, notice string) *Collections {
	return &Collections{
		RecentInvoices:  toSummaries(mockdata.RecentInvoices()),
		OverdueInvoices: toSummaries(mockdata.OverdueInvoices()),
		TotalUnpaid:     mockdata.TotalUnpaid,
		TotalOverdue:    mockdata.TotalOverdue,
		Provenance:      p,
		Notice:          notice,
	}
}

func (s *DashboardService) liveCollections(invoices []zoho.Invoice) *Collections {
	out := &Collections{
		RecentInvoices:  []InvoiceSummary{},
		OverdueInvoices: []InvoiceSummary{},
		Provenance:      ProvenanceLive,
	}
	today := s.now()
	for _, inv := range invoices {
		row := InvoiceSummary{
			Number:   inv.InvoiceNumber,
			Customer: inv.CustomerName,
			Amount:   inv.Balance,
			Status:   inv.Status,
		}
		out.TotalUnpaid += inv.Balance
		if isOverdue(inv, today) {
			row.DaysOverdue = daysOverdue(inv, today)
			out.OverdueInvoices = append(out.OverdueInvoices, row)
			out.TotalOverdue += inv.Balance
		} else {
			out.RecentInvoices = append(out.RecentInvoices, row)
		}
	}
	return out
}

// Analytics returns the trailing six calendar months of collection
// history, oldest month first.
func (s *DashboardService) Analytics(ctx context.Context, userID int64) (*Analytics, error) {
	mode, err := s.integrations.ResolveMode(ctx, userID)
	if err != nil {
		return nil, err
	}

	if mode == integration.Demo {
		metrics.RecordFallback(string(ProvenanceDemo))
		return demoAnalytics(ProvenanceDemo, ""), nil
	}

	if mode.CanFetchLive() {
		payments, err := s.books.Payments(ctx, userID)
		if err == nil {
			invoices, ierr := s.books.Invoices(ctx, userID, "unpaid")
			if ierr == nil {
				return s.liveAnalytics(payments, invoices), nil
			}
			err = ierr
		}
		s.logFallback(userID, "analytics", err)
	}

	metrics.RecordFallback(string(ProvenanceMock))
	return demoAnalytics(ProvenanceMock, mockdata.Notice), nil
}

func demoAnalytics(p Provenance, notice string) *Analytics {
	trend := make([]TrendPoint, 0, 6)
	for _, pt := range mockdata.Trends() {
		trend = append(trend, TrendPoint(pt))
	}
	return &Analytics{
		Trend:             trend,
		TotalCollected:    mockdata.TotalCollected,
		TotalOutstanding:  mockdata.TotalOutstandingTrend,
		Efficiency:        mockdata.CollectionEfficiency,
		AvgCollectionDays: mockdata.AvgCollectionDays,
		Provenance:        p,
		Notice:            notice,
	}
}

func (s *DashboardService) liveAnalytics(payments []zoho.Payment, invoices []zoho.Invoice) *Analytics {
	months := trailingMonths(s.now(), 6)
	byMonth := make(map[string]*TrendPoint, len(months))
	trend := make([]TrendPoint, len(months))
	for i, m := range months {
		trend[i] = TrendPoint{Month: m.Format("Jan 2006")}
		byMonth[m.Format("2006-01")] = &trend[i]
	}

	var totalCollected float64
	for _, p := range payments {
		totalCollected += p.Amount
		if pt, ok := byMonth[monthKey(p.Date)]; ok {
			pt.Collected += p.Amount
		}
	}

	// Invoices bucket by their issue date, not by when they fall due.
	var totalOutstanding float64
	for _, inv := range invoices {
		totalOutstanding += inv.Balance
		if pt, ok := byMonth[monthKey(inv.Date)]; ok {
			pt.Outstanding += inv.Balance
		}
	}

	return &Analytics{
		Trend:             trend,
		TotalCollected:    totalCollected,
		TotalOutstanding:  totalOutstanding,
		Efficiency:        recoveryRate(totalCollected+totalOutstanding, totalOutstanding),
		AvgCollectionDays: mockdata.AvgCollectionDays,
		Provenance:        ProvenanceLive,
	}
}

// Reconciliation returns the payment matching summary.
func (s *DashboardService) Reconciliation(ctx context.Context, userID int64) (*Reconciliation, error) {
	mode, err := s.integrations.ResolveMode(ctx, userID)
	if err != nil {
		return nil, err
	}

	if mode == integration.Demo {
		metrics.RecordFallback(string(ProvenanceDemo))
		return &Reconciliation{TotalPayments: 4, Matched: 4, Provenance: ProvenanceDemo}, nil
	}

	if mode.CanFetchLive() {
		payments, err := s.books.Payments(ctx, userID)
		if err == nil {
			return &Reconciliation{
				TotalPayments: len(payments),
				Matched:       len(payments),
				Provenance:    ProvenanceLive,
			}, nil
		}
		s.logFallback(userID, "reconciliation", err)
	}

	metrics.RecordFallback(string(ProvenanceMock))
	return &Reconciliation{
		TotalPayments: 4,
		Matched:       4,
		Provenance:    ProvenanceMock,
		Notice:        mockdata.Notice,
	}, nil
}

func (s *DashboardService) logFallback(userID int64, view string, err error) {
	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"view":    view,
	}).WithError(err).Warn("Serving placeholder data, live fetch unavailable")
}

// recoveryRate is the non-overdue share of a total, as a percentage.
// A zero or negative total reports 0 rather than dividing by zero.
func recoveryRate(total, overdue float64) float64 {
	if total <= 0 {
		return 0
	}
	return (total - overdue) / total * 100
}

func isOverdue(inv zoho.Invoice, today time.Time) bool {
	if inv.Status == "overdue" {
		return true
	}
	due, err := time.Parse("2006-01-02", inv.DueDate)
	if err != nil {
		return false
	}
	return due.Before(today.Truncate(24 * time.Hour))
}

func daysOverdue(inv zoho.Invoice, today time.Time) int {
	due, err := time.Parse("2006-01-02", inv.DueDate)
	if err != nil {
		return 0
	}
	days := int(today.Sub(due).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// trailingMonths returns the first day of each of the n calendar months
// ending with the current one, oldest first.
func trailingMonths(now time.Time, n int) []time.Time {
	months := make([]time.Time, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		months[n-1-i] = first.AddDate(0, -i, 0)
	}
	return months
}

// monthKey reduces a provider date string (2006-01-02) to its month.
func monthKey(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}

func toSummaries(invoices []mockdata.Invoice) []InvoiceSummary {
	out := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, InvoiceSummary(inv))
	}
	return out
}
