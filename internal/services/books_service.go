package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/metrics"
	"github.com/vasool/vasool/internal/zoho"
)

// BooksService fetches live accounting data for a user. Every fetch
// resolves the user's connection mode first; only an authenticated
// production connection results in provider calls. A rejected access
// token triggers exactly one refresh followed by one retry of the
// original call, so a single fetch performs at most two resource calls
// and one token refresh.
type BooksService struct {
	integrations integration.Repository
	refresher    integration.Service
	zoho         *zoho.Client
	logger       *logger.Logger
}

// NewBooksService creates a new books service
func NewBooksService(repo integration.Repository, svc integration.Service, client *zoho.Client, log *logger.Logger) *BooksService {
	return &BooksService{
		integrations: repo,
		refresher:    svc,
		zoho:         client,
		logger:       log,
	}
}

// Invoices fetches invoices, optionally filtered by status.
func (s *BooksService) Invoices(ctx context.Context, userID int64, status string) ([]zoho.Invoice, error) {
	var invoices []zoho.Invoice
	err := s.fetch(ctx, userID, "invoices", func(creds zoho.Credentials) error {
		var err error
		invoices, err = s.zoho.Invoices(ctx, creds, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Customers fetches the user's customer contacts.
func (s *BooksService) Customers(ctx context.Context, userID int64) ([]zoho.Customer, error) {
	var customers []zoho.Customer
	err := s.fetch(ctx, userID, "customers", func(creds zoho.Credentials) error {
		var err error
		customers, err = s.zoho.Customers(ctx, creds)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Payments fetches the user's customer payments.
func (s *BooksService) Payments(ctx context.Context, userID int64) ([]zoho.Payment, error) {
	var payments []zoho.Payment
	err := s.fetch(ctx, userID, "payments", func(creds zoho.Credentials) error {
		var err error
		payments, err = s.zoho.Payments(ctx, creds)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// Receivables fetches the receivables aging report.
func (s *BooksService) Receivables(ctx context.Context, userID int64) (map[string]interface{}, error) {
	var report map[string]interface{}
	err := s.fetch(ctx, userID, "receivables", func(creds zoho.Credentials) error {
		var err error
		report, err = s.zoho.Receivables(ctx, creds)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// fetch resolves the user's mode, runs the resource call and handles
// token refresh. Failures come back as *integration.UnavailableError so
// callers can degrade to fallback data.
func (s *BooksService) fetch(ctx context.Context, userID int64, resource string, call func(creds zoho.Credentials) error) error {
	start := time.Now()

	rec, err := s.integrations.Get(ctx, userID, integration.ProviderZohoBooks)
	if err != nil {
		if errors.IsNotFound(err) {
			metrics.RecordBooksFetch(resource, "not_connected", time.Since(start))
			return integration.Unavailable(integration.ReasonNotConnected, nil)
		}
		return err
	}

	mode := integration.ResolveMode(rec)
	if !mode.CanFetchLive() {
		metrics.RecordBooksFetch(resource, "not_connected", time.Since(start))
		return integration.Unavailable(integration.ReasonNotConnected, nil)
	}

	creds := zoho.Credentials{
		AccessToken:    rec.AccessToken,
		OrganizationID: rec.OrganizationID,
	}

	err = call(creds)
	if stderrors.Is(err, zoho.ErrUnauthorized) {
		// Without a refresh token there is nothing to retry with.
		if rec.RefreshToken == "" {
			metrics.RecordBooksFetch(resource, "auth_expired", time.Since(start))
			return integration.Unavailable(integration.ReasonAuthExpired, err)
		}

		token, refreshErr := s.refresher.RefreshAccessToken(ctx, rec)
		if refreshErr != nil {
			metrics.RecordBooksFetch(resource, "auth_expired", time.Since(start))
			return integration.Unavailable(integration.ReasonAuthExpired, refreshErr)
		}

		creds.AccessToken = token
		err = call(creds)
		if stderrors.Is(err, zoho.ErrUnauthorized) {
			metrics.RecordBooksFetch(resource, "auth_expired", time.Since(start))
			return integration.Unavailable(integration.ReasonAuthExpired, err)
		}
	}

	if err != nil {
		metrics.RecordBooksFetch(resource, "provider_error", time.Since(start))
		s.logger.WithFields(map[string]interface{}{
			"user_id":  userID,
			"resource": resource,
		}).Warn("Provider fetch failed")
		return integration.Unavailable(integration.ReasonProviderError, err)
	}

	if err := s.integrations.UpdateLastSync(ctx, userID, integration.ProviderZohoBooks, time.Now()); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record last sync time")
	}

	metrics.RecordBooksFetch(resource, "success", time.Since(start))
	return nil
}
