package services

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vasool/vasool/internal/config"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/mockdata"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/testutil"
	"github.com/vasool/vasool/internal/zoho"
)

// fixedNow keeps overdue math stable against the upstream fixture dates.
var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func newDashboardFixture(t *testing.T, u *upstream) (*DashboardService, *testutil.MockIntegrationRepository, func()) {
	t.Helper()

	books, repo, cleanup := newBooksFixture(t, u)
	integrations := NewIntegrationService(repo, zoho.NewClient(zoho.Config{}), config.ZohoConfig{}, logger.Nop())

	svc := NewDashboardService(books, integrations, logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, cleanup
}

func TestDashboardService_CollectionsDemo(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, &integration.Integration{
		UserID: 1, Provider: integration.ProviderZohoBooks,
		Mode: integration.ModeDemo, Status: integration.StatusActive,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Collections(ctx, 1)
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if got.Provenance != ProvenanceDemo {
		t.Errorf("provenance = %s, want demo", got.Provenance)
	}
	if got.Notice != "" {
		t.Errorf("demo response carries a notice: %q", got.Notice)
	}
	if got.TotalUnpaid != 125000 || got.TotalOverdue != 210000 {
		t.Errorf("totals = %.0f/%.0f, want 125000/210000", got.TotalUnpaid, got.TotalOverdue)
	}
	if len(got.RecentInvoices) != 2 || len(got.OverdueInvoices) != 2 {
		t.Errorf("invoice counts = %d/%d, want 2/2", len(got.RecentInvoices), len(got.OverdueInvoices))
	}
}

func TestDashboardService_CollectionsDisconnectedServesPlaceholder(t *testing.T) {
	svc, _, cleanup := newDashboardFixture(t, &upstream{})
	defer cleanup()

	got, err := svc.Collections(context.Background(), 1)
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if got.Provenance != ProvenanceMock {
		t.Errorf("provenance = %s, want mock", got.Provenance)
	}
	if !strings.Contains(got.Notice, mockdata.Marker) {
		t.Errorf("notice %q missing placeholder marker", got.Notice)
	}
}

func TestDashboardService_CollectionsLive(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{acceptToken: "token"})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Collections(ctx, 1)
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if got.Provenance != ProvenanceLive {
		t.Fatalf("provenance = %s, want live", got.Provenance)
	}
	if got.Notice != "" {
		t.Errorf("live response carries a notice: %q", got.Notice)
	}
	// INV-001 due 2026-08-01 is 31 days past the fixed clock, INV-002 is not due yet
	if got.TotalUnpaid != 125000 {
		t.Errorf("total unpaid = %.0f, want 125000", got.TotalUnpaid)
	}
	if got.TotalOverdue != 50000 {
		t.Errorf("total overdue = %.0f, want 50000", got.TotalOverdue)
	}
	if len(got.OverdueInvoices) != 1 || got.OverdueInvoices[0].Number != "INV-001" {
		t.Fatalf("overdue invoices = %+v, want INV-001 only", got.OverdueInvoices)
	}
	if got.OverdueInvoices[0].DaysOverdue != 31 {
		t.Errorf("days overdue = %d, want 31", got.OverdueInvoices[0].DaysOverdue)
	}
}

func TestDashboardService_CollectionsFallsBackOnProviderError(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{acceptToken: "token", resourceStatus: 500})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Collections(ctx, 1)
	if err != nil {
		t.Fatalf("Collections() error = %v", err)
	}
	if got.Provenance != ProvenanceMock {
		t.Errorf("provenance = %s, want mock", got.Provenance)
	}
	if !strings.Contains(got.Notice, mockdata.Marker) {
		t.Errorf("notice %q missing placeholder marker", got.Notice)
	}
	if got.TotalUnpaid != 125000 {
		t.Errorf("placeholder total unpaid = %.0f, want 125000", got.TotalUnpaid)
	}
}

func TestDashboardService_OverviewLive(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{acceptToken: "token"})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Overview(ctx, 1)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if got.Provenance != ProvenanceLive {
		t.Fatalf("provenance = %s, want live", got.Provenance)
	}
	if got.TotalOutstanding != 125000 {
		t.Errorf("total outstanding = %.0f, want 125000", got.TotalOutstanding)
	}
	// 1 of 2 invoices is overdue
	if got.RecoveryRate != 50 {
		t.Errorf("recovery rate = %.2f, want 50.00", got.RecoveryRate)
	}
	if got.ActiveAccounts != 2 {
		t.Errorf("active accounts = %d, want 2", got.ActiveAccounts)
	}
}

func TestLiveOverviewRecoveryRateCountsInvoices(t *testing.T) {
	// Two small overdue invoices against one large current one: the rate
	// reflects invoice counts, so the big balance must not drag it up.
	svc := &DashboardService{now: func() time.Time { return fixedNow }}
	invoices := []zoho.Invoice{
		{InvoiceNumber: "INV-101", Status: "overdue", Balance: 10000, DueDate: "2026-07-01"},
		{InvoiceNumber: "INV-102", Status: "overdue", Balance: 10000, DueDate: "2026-07-15"},
		{InvoiceNumber: "INV-103", Status: "unpaid", Balance: 80000, DueDate: "2026-10-01"},
	}

	got := svc.liveOverview(invoices, nil)
	want := 1.0 / 3.0 * 100
	if math.Abs(got.RecoveryRate-want) > 0.001 {
		t.Errorf("recovery rate = %.2f, want %.2f", got.RecoveryRate, want)
	}
	if got.TotalOutstanding != 100000 {
		t.Errorf("total outstanding = %.0f, want 100000", got.TotalOutstanding)
	}
}

func TestDashboardService_AnalyticsDemo(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, &integration.Integration{
		UserID: 1, Provider: integration.ProviderZohoBooks,
		Mode: integration.ModeDemo, Status: integration.StatusActive,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Analytics(ctx, 1)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if got.Provenance != ProvenanceDemo {
		t.Errorf("provenance = %s, want demo", got.Provenance)
	}
	if len(got.Trend) != 6 {
		t.Fatalf("trend has %d points, want 6", len(got.Trend))
	}
	if got.Trend[0].Month != "May 2024" || got.Trend[5].Month != "Oct 2024" {
		t.Errorf("trend order = %s..%s, want May 2024..Oct 2024", got.Trend[0].Month, got.Trend[5].Month)
	}
	if got.TotalCollected != 6120000 {
		t.Errorf("total collected = %.0f, want 6120000", got.TotalCollected)
	}
}

func TestDashboardService_AnalyticsLive(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{acceptToken: "token"})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Analytics(ctx, 1)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if got.Provenance != ProvenanceLive {
		t.Fatalf("provenance = %s, want live", got.Provenance)
	}
	if len(got.Trend) != 6 {
		t.Fatalf("trend has %d points, want 6", len(got.Trend))
	}
	if got.Trend[0].Month != "Apr 2026" || got.Trend[5].Month != "Sep 2026" {
		t.Errorf("trend window = %s..%s, want Apr 2026..Sep 2026", got.Trend[0].Month, got.Trend[5].Month)
	}
	if got.TotalCollected != 50000 {
		t.Errorf("total collected = %.0f, want 50000", got.TotalCollected)
	}
	// PMT-001 (Aug 2026) lands in the window, PMT-002 (Jun 2026) too
	byName := map[string]TrendPoint{}
	for _, pt := range got.Trend {
		byName[pt.Month] = pt
	}
	if aug, jun := byName["Aug 2026"].Collected, byName["Jun 2026"].Collected; aug != 30000 || jun != 20000 {
		t.Errorf("bucketed collections Aug/Jun = %.0f/%.0f, want 30000/20000", aug, jun)
	}
	// Invoices bucket by issue date: INV-001 issued Jul (due Aug),
	// INV-002 issued Aug (due Sep)
	if jul := byName["Jul 2026"].Outstanding; jul != 50000 {
		t.Errorf("Jul outstanding = %.0f, want 50000", jul)
	}
	if aug := byName["Aug 2026"].Outstanding; aug != 75000 {
		t.Errorf("Aug outstanding = %.0f, want 75000", aug)
	}
	if sep := byName["Sep 2026"].Outstanding; sep != 0 {
		t.Errorf("Sep outstanding = %.0f, want 0 (due dates must not bucket)", sep)
	}
}

func TestDashboardService_Reconciliation(t *testing.T) {
	svc, repo, cleanup := newDashboardFixture(t, &upstream{acceptToken: "token"})
	defer cleanup()
	ctx := context.Background()

	if err := repo.Upsert(ctx, productionRecord(1, "token")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := svc.Reconciliation(ctx, 1)
	if err != nil {
		t.Fatalf("Reconciliation() error = %v", err)
	}
	if got.TotalPayments != 2 || got.Matched != 2 || got.Unmatched != 0 {
		t.Errorf("reconciliation = %+v, want all payments matched", got)
	}
}

func TestRecoveryRate(t *testing.T) {
	tests := []struct {
		name           string
		total, overdue float64
		want           float64
	}{
		{name: "normal", total: 100000, overdue: 25000, want: 75},
		{name: "all overdue", total: 100000, overdue: 100000, want: 0},
		{name: "zero total", total: 0, overdue: 0, want: 0},
		{name: "negative total", total: -10, overdue: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recoveryRate(tt.total, tt.overdue); got != tt.want {
				t.Errorf("recoveryRate(%.0f, %.0f) = %.2f, want %.2f", tt.total, tt.overdue, got, tt.want)
			}
		})
	}
}

func TestTrailingMonths(t *testing.T) {
	months := trailingMonths(fixedNow, 6)
	if len(months) != 6 {
		t.Fatalf("got %d months, want 6", len(months))
	}
	if months[0].Format("Jan 2006") != "Apr 2026" {
		t.Errorf("oldest month = %s, want Apr 2026", months[0].Format("Jan 2006"))
	}
	if months[5].Format("Jan 2006") != "Sep 2026" {
		t.Errorf("newest month = %s, want Sep 2026", months[5].Format("Jan 2006"))
	}
	for i := 1; i < len(months); i++ {
		if !months[i].After(months[i-1]) {
			t.Errorf("months out of order at %d: %v then %v", i, months[i-1], months[i])
		}
	}
}
