package client

import "context"

// LeadService captures demo and sales requests. These endpoints are
// public and need no authentication.
type LeadService struct {
	client *Client
}

// ScheduleDemoRequest books a product demo
type ScheduleDemoRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
	Phone       string `json:"phone,omitempty"`
	PreferredAt string `json:"preferred_at,omitempty"`
}

// ContactSalesRequest sends a message to the sales team
type ContactSalesRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// ScheduleDemo captures a demo request
func (s *LeadService) ScheduleDemo(ctx context.Context, req ScheduleDemoRequest) (*Lead, error) {
	var l Lead
	if err := s.client.doRequest(ctx, "POST", "/api/demo/schedule", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ContactSales captures a sales inquiry
func (s *LeadService) ContactSales(ctx context.Context, req ContactSalesRequest) (*Lead, error) {
	var l Lead
	if err := s.client.doRequest(ctx, "POST", "/api/contact/sales", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
