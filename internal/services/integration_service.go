package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/vasool/vasool/internal/config"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/metrics"
	"github.com/vasool/vasool/internal/zoho"
)

// IntegrationService implements integration.Service
type IntegrationService struct {
	repo   integration.Repository
	zoho   *zoho.Client
	cfg    config.ZohoConfig
	logger *logger.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(repo integration.Repository, client *zoho.Client, cfg config.ZohoConfig, log *logger.Logger) integration.Service {
	return &IntegrationService{
		repo:   repo,
		zoho:   client,
		cfg:    cfg,
		logger: log,
	}
}

// ResolveMode derives the operating mode for a user
func (s *IntegrationService) ResolveMode(ctx context.Context, userID int64) (integration.Mode, error) {
	rec, err := s.repo.Get(ctx, userID, integration.ProviderZohoBooks)
	if err != nil {
		if errors.IsNotFound(err) {
			return integration.Disconnected, nil
		}
		return integration.Disconnected, err
	}
	return integration.ResolveMode(rec), nil
}

// ConnectDemo activates a demo-mode connection
func (s *IntegrationService) ConnectDemo(ctx context.Context, userID int64, email string) (*integration.Integration, error) {
	rec := &integration.Integration{
		UserID:      userID,
		Provider:    integration.ProviderZohoBooks,
		Mode:        integration.ModeDemo,
		Status:      integration.StatusActive,
		Email:       email,
		ConnectedAt: time.Now(),
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"provider": rec.Provider,
	}).Info("Demo connection activated")

	return rec, nil
}

// BeginOAuth stores the user's OAuth app credentials behind a single-use
// state token and returns the provider consent URL
func (s *IntegrationService) BeginOAuth(ctx context.Context, userID int64, clientID, clientSecret, organizationID string) (*integration.OAuthStart, error) {
	state, err := newStateToken()
	if err != nil {
		return nil, errors.Internal("Failed to generate state token", err)
	}

	h := &integration.Handshake{
		UserID:         userID,
		State:          state,
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		OrganizationID: organizationID,
	}
	if err := s.repo.CreateHandshake(ctx, h); err != nil {
		return nil, err
	}

	return &integration.OAuthStart{
		AuthURL: s.zoho.AuthorizeURL(clientID, s.cfg.RedirectURL, state),
		State:   state,
	}, nil
}

// CompleteOAuth consumes the state token, exchanges the grant code for
// tokens and activates a production-mode connection. A replayed or
// unknown state fails the flow.
func (s *IntegrationService) CompleteOAuth(ctx context.Context, userID int64, code, state string) (*integration.Integration, error) {
	h, err := s.repo.ConsumeHandshake(ctx, state)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, errors.InvalidHandshake()
	}

	tok, err := s.zoho.ExchangeCode(ctx, h.ClientID, h.ClientSecret, s.cfg.RedirectURL, code)
	if err != nil {
		s.logger.ErrorWithErr(err, "OAuth code exchange failed")
		return nil, errors.ProviderError("zohobooks", err)
	}

	rec := &integration.Integration{
		UserID:         userID,
		Provider:       integration.ProviderZohoBooks,
		Mode:           integration.ModeProduction,
		Status:         integration.StatusActive,
		AccessToken:    tok.AccessToken,
		RefreshToken:   tok.RefreshToken,
		ClientID:       h.ClientID,
		ClientSecret:   h.ClientSecret,
		OrganizationID: h.OrganizationID,
		ConnectedAt:    time.Now(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"provider": rec.Provider,
		"mode":     rec.Mode,
	}).Info("Production connection activated")

	return rec, nil
}

// RefreshAccessToken obtains and persists a fresh access token for the
// record. Returns the new token.
func (s *IntegrationService) RefreshAccessToken(ctx context.Context, rec *integration.Integration) (string, error) {
	token, err := s.zoho.RefreshAccessToken(ctx, rec.ClientID, rec.ClientSecret, rec.RefreshToken)
	if err != nil {
		metrics.RecordTokenRefresh("failure")
		s.logger.WithFields(map[string]interface{}{
			"user_id": rec.UserID,
		}).Warn("Access token refresh failed")
		return "", err
	}

	if err := s.repo.UpdateTokens(ctx, rec.UserID, rec.Provider, token); err != nil {
		metrics.RecordTokenRefresh("failure")
		return "", err
	}

	metrics.RecordTokenRefresh("success")
	rec.AccessToken = token
	return token, nil
}

// Status summarizes the user's connection state
func (s *IntegrationService) Status(ctx context.Context, userID int64) (*integration.StatusInfo, error) {
	rec, err := s.repo.Get(ctx, userID, integration.ProviderZohoBooks)
	if err != nil {
		if errors.IsNotFound(err) {
			return &integration.StatusInfo{Connected: false}, nil
		}
		return nil, err
	}

	mode := integration.ResolveMode(rec)
	if mode == integration.Disconnected {
		return &integration.StatusInfo{Connected: false}, nil
	}

	info := &integration.StatusInfo{
		Connected:      true,
		Provider:       rec.Provider,
		Mode:           mode.String(),
		OrganizationID: rec.OrganizationID,
	}
	connectedAt := rec.ConnectedAt.UTC().Format(time.RFC3339)
	info.ConnectedAt = &connectedAt
	if rec.LastSync != nil {
		lastSync := rec.LastSync.UTC().Format(time.RFC3339)
		info.LastSync = &lastSync
	}
	return info, nil
}

// Disconnect soft-deletes the user's connection
func (s *IntegrationService) Disconnect(ctx context.Context, userID int64) error {
	err := s.repo.Disconnect(ctx, userID, integration.ProviderZohoBooks, time.Now())
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.NotConnected("zohobooks")
		}
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Integration disconnected")

	return nil
}

func newStateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
