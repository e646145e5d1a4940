package services

import (
	"context"

	"github.com/vasool/vasool/internal/domain/lead"
	"github.com/vasool/vasool/internal/pkg/logger"
)

// LeadService captures demo requests and sales inquiries from the
// public site.
type LeadService struct {
	repo   lead.Repository
	logger *logger.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(repo lead.Repository, log *logger.Logger) *LeadService {
	return &LeadService{repo: repo, logger: log}
}

// ScheduleDemo records a demo request.
func (s *LeadService) ScheduleDemo(ctx context.Context, name, email, company, phone, preferredAt string) (*lead.Lead, error) {
	l := &lead.Lead{
		Kind:        lead.KindDemo,
		Name:        name,
		Email:       email,
		Company:     company,
		Phone:       phone,
		PreferredAt: preferredAt,
		Status:      lead.StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"lead_id": l.ID,
		"kind":    l.Kind,
	}).Info("Demo request captured")

	return l, nil
}

// ContactSales records a sales inquiry.
func (s *LeadService) ContactSales(ctx context.Context, name, email, company, message string) (*lead.Lead, error) {
	l := &lead.Lead{
		Kind:    lead.KindContact,
		Name:    name,
		Email:   email,
		Company: company,
		Message: message,
		Status:  lead.StatusNew,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"lead_id": l.ID,
		"kind":    l.Kind,
	}).Info("Sales inquiry captured")

	return l, nil
}

// List returns captured leads of a kind, most recent first.
func (s *LeadService) List(ctx context.Context, kind string, limit, offset int) ([]*lead.Lead, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, kind, limit, offset)
}
