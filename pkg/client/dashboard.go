package client

import "context"

// DashboardService fetches collection analytics views
type DashboardService struct {
	client *Client
}

// Overview returns the headline analytics card
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	var view Overview
	if err := s.client.doRequest(ctx, "GET", "/api/dashboard/overview", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Collections returns the unpaid/overdue invoice breakdown
func (s *DashboardService) Collections(ctx context.Context) (*Collections, error) {
	var view Collections
	if err := s.client.doRequest(ctx, "GET", "/api/dashboard/collections", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Analytics returns the trailing six-month collection trend
func (s *DashboardService) Analytics(ctx context.Context) (*Analytics, error) {
	var view Analytics
	if err := s.client.doRequest(ctx, "GET", "/api/dashboard/analytics", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Reconciliation returns the payment matching summary
func (s *DashboardService) Reconciliation(ctx context.Context) (*Reconciliation, error) {
	var view Reconciliation
	if err := s.client.doRequest(ctx, "GET", "/api/dashboard/reconciliation", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
