package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vasool/vasool/internal/api/dto"
	"github.com/vasool/vasool/internal/api/middleware"
	"github.com/vasool/vasool/internal/domain/integration"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/utils"
	"github.com/vasool/vasool/internal/pkg/validator"
)

// IntegrationHandler handles accounting integration requests
type IntegrationHandler struct {
	integrationService integration.Service
	logger             *logger.Logger
	validator          *validator.Validator
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(svc integration.Service, log *logger.Logger, val *validator.Validator) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: svc,
		logger:             log,
		validator:          val,
	}
}

// ConnectDemo activates a demo-mode connection
// @Summary Connect in demo mode
// @Description Activate a demo-mode Zoho Books connection with curated sample data
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body dto.ConnectDemoRequest false "Optional email"
// @Success 200 {object} integration.Integration "Demo connection"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /integrations/zoho/connect [post]
func (h *IntegrationHandler) ConnectDemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.ConnectDemoRequest
	if r.Body != nil {
		// Body is optional for demo connect
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError(validator.Flatten(validationErrs), validationErrs))
		return
	}

	email := req.Email
	if email == "" {
		email, _ = middleware.GetUserEmail(r)
	}

	rec, err := h.integrationService.ConnectDemo(r.Context(), userID, email)
	if err != nil {
		h.logger.ErrorWithErr(err, "Demo connect failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Connected in demo mode", rec)
}

// BeginOAuth starts the user-supplied OAuth app flow
// @Summary Start Zoho OAuth setup
// @Description Store the user's Zoho OAuth app credentials and return the consent URL
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body dto.OAuthSetupRequest true "OAuth app credentials"
// @Success 200 {object} integration.OAuthStart "Consent URL and state"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /integrations/zoho/user-oauth-setup [post]
func (h *IntegrationHandler) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.OAuthSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError(validator.Flatten(validationErrs), validationErrs))
		return
	}

	start, err := h.integrationService.BeginOAuth(r.Context(), userID, req.ClientID, req.ClientSecret, req.OrganizationID)
	if err != nil {
		h.logger.ErrorWithErr(err, "OAuth setup failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, start)
}

// Callback completes the OAuth consent flow
// @Summary Complete Zoho OAuth
// @Description Exchange the grant code for tokens and activate the production connection
// @Tags Integrations
// @Accept json
// @Produce json
// @Param request body dto.OAuthCallbackRequest true "Grant code and state"
// @Success 200 {object} integration.Integration "Production connection"
// @Failure 400 {object} utils.ErrorResponse "Invalid or replayed state"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /integrations/zoho/callback [post]
func (h *IntegrationHandler) Callback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.OAuthCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError(validator.Flatten(validationErrs), validationErrs))
		return
	}

	rec, err := h.integrationService.CompleteOAuth(r.Context(), userID, req.Code, req.State)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"user_id": userID,
		}).WithError(err).Warn("OAuth callback failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Zoho Books connected", rec)
}

// Status summarizes the user's connection state
// @Summary Integration status
// @Description Get the current accounting integration status
// @Tags Integrations
// @Produce json
// @Success 200 {object} integration.StatusInfo "Connection status"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /integrations/status [get]
func (h *IntegrationHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	info, err := h.integrationService.Status(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get integration status")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, info)
}

// Disconnect soft-deletes the user's connection
// @Summary Disconnect integration
// @Description Disconnect the accounting integration, keeping the record for audit
// @Tags Integrations
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse "Not connected"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /integrations/zoho/disconnect [delete]
func (h *IntegrationHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.integrationService.Disconnect(r.Context(), userID); err != nil {
		h.logger.ErrorWithErr(err, "Disconnect failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Zoho Books disconnected", nil)
}
