package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
	"github.com/SscSPs/site_expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler serves computed balances. Nothing here is cached.
type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func newBalanceHandler(bs portssvc.BalanceSvc) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers the per-site, per-supervisor and rollup balance routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := newBalanceHandler(balanceService)

	rg.GET("/sites/:site_id/balance", h.getSiteBalance)
	rg.GET("/supervisors/:supervisor_id/balance", h.getSupervisorBalance)
	rg.GET("/balances", h.getBalanceRollup)
}

// getSiteBalance godoc
// @Summary Get the balance summary of a site
// @Description Recomputes the site's balance from all of its recorded transactions
// @Tags balances
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Success 200 {object} domain.BalanceSummary
// @Failure 400 {object} map[string]string "Invalid site ID"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /sites/{site_id}/balance [get]
func (h *balanceHandler) getSiteBalance(c *gin.Context) {
	siteID, ok := uuidParam(c, "site_id")
	if !ok {
		return
	}

	summary, err := h.balanceService.GetSiteBalance(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getSupervisorBalance godoc
// @Summary Get balances of a supervisor's sites
// @Tags balances
// @Produce  json
// @Param   supervisor_id path string true "Supervisor ID"
// @Success 200 {object} dto.SupervisorBalanceResponse
// @Failure 400 {object} map[string]string "Invalid supervisor ID"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /supervisors/{supervisor_id}/balance [get]
func (h *balanceHandler) getSupervisorBalance(c *gin.Context) {
	supervisorID := strings.TrimSpace(c.Param("supervisor_id"))
	if supervisorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supervisor ID is required"})
		return
	}

	result, err := h.balanceService.GetSupervisorBalance(c.Request.Context(), supervisorID)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupervisorBalanceResponse(result))
}

// getBalanceRollup godoc
// @Summary Get balances of every site grouped by supervisor
// @Tags balances
// @Produce  json
// @Success 200 {object} dto.BalanceRollupResponse
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) getBalanceRollup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request for balance rollup")

	rollup, err := h.balanceService.GetBalanceRollup(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}

	logger.Info("Balance rollup served", slog.Int("supervisor_count", len(rollup.Supervisors)))
	c.JSON(http.StatusOK, dto.ToBalanceRollupResponse(rollup))
}
