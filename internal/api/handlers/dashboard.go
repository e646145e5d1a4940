package handlers

import (
	"net/http"

	"github.com/vasool/vasool/internal/api/middleware"
	"github.com/vasool/vasool/internal/pkg/errors"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/utils"
	"github.com/vasool/vasool/internal/services"
)

// DashboardHandler handles dashboard analytics requests
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           log,
	}
}

// Overview returns the headline analytics card
// @Summary Dashboard overview
// @Description Get headline receivables analytics for the current user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Overview "Overview figures"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	overview, err := h.dashboardService.Overview(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build overview")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, overview)
}

// Collections returns the unpaid and overdue invoice breakdown
// @Summary Collections breakdown
// @Description Get unpaid and overdue invoices for the current user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Collections "Collections breakdown"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/collections [get]
func (h *DashboardHandler) Collections(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	collections, err := h.dashboardService.Collections(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build collections view")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, collections)
}

// Analytics returns the six-month collection trend
// @Summary Collection analytics
// @Description Get the trailing six-month collection trend for the current user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Analytics "Collection trend"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/analytics [get]
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	analytics, err := h.dashboardService.Analytics(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build analytics view")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, analytics)
}

// Reconciliation returns the payment matching summary
// @Summary Payment reconciliation
// @Description Get the payment reconciliation summary for the current user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Reconciliation "Reconciliation summary"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /dashboard/reconciliation [get]
func (h *DashboardHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	reconciliation, err := h.dashboardService.Reconciliation(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build reconciliation view")
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, reconciliation)
}
