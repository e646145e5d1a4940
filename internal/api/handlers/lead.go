package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vasool/vasool/internal/api/dto"
	"github.com/vasool/vasool/internal/domain/lead"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/utils"
	"github.com/vasool/vasool/internal/pkg/validator"
	"github.com/vasool/vasool/internal/services"
)

// LeadHandler handles public lead capture requests
type LeadHandler struct {
	leadService *services.LeadService
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService, log *logger.Logger, val *validator.Validator) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      log,
		validator:   val,
	}
}

// ScheduleDemo captures a demo request
// @Summary Schedule a demo
// @Description Capture a product demo request from the public site
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body dto.ScheduleDemoRequest true "Demo request"
// @Success 201 {object} lead.Lead "Captured request"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Router /demo/schedule [post]
func (h *LeadHandler) ScheduleDemo(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleDemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError(validator.Flatten(validationErrs), validationErrs))
		return
	}

	l, err := h.leadService.ScheduleDemo(r.Context(), req.Name, req.Email, req.Company, req.Phone, req.PreferredAt)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to capture demo request")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Demo request received, our team will reach out shortly", l)
}

// ContactSales captures a sales inquiry
// @Summary Contact sales
// @Description Capture a sales inquiry from the public site
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body dto.ContactSalesRequest true "Sales inquiry"
// @Success 201 {object} lead.Lead "Captured inquiry"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Router /contact/sales [post]
func (h *LeadHandler) ContactSales(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactSalesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError(validator.Flatten(validationErrs), validationErrs))
		return
	}

	l, err := h.leadService.ContactSales(r.Context(), req.Name, req.Email, req.Company, req.Message)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to capture sales inquiry")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Message received, our sales team will get back to you", l)
}

// List returns captured leads for the sales team
// @Summary List leads
// @Description List captured demo requests or sales inquiries, most recent first
// @Tags Leads
// @Produce json
// @Param kind query string false "Lead kind: demo or contact" default(demo)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} utils.PaginatedResponse "Captured leads"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = lead.KindDemo
	}
	if kind != lead.KindDemo && kind != lead.KindContact {
		utils.WriteError(w, errors.BadRequest("Unknown lead kind"))
		return
	}

	params := utils.ParsePaginationParams(r)

	leads, err := h.leadService.List(r.Context(), kind, params.PageSize, params.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list leads")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(leads, params.Page, params.PageSize))
}
