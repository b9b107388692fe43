package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
	"github.com/SscSPs/site_expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// siteHandler handles HTTP requests related to sites.
type siteHandler struct {
	siteService portssvc.SiteSvcFacade
}

func newSiteHandler(ss portssvc.SiteSvcFacade) *siteHandler {
	return &siteHandler{siteService: ss}
}

// registerSiteRoutes registers the /sites collection and single-site routes.
func registerSiteRoutes(rg *gin.RouterGroup, siteService portssvc.SiteSvcFacade) {
	h := newSiteHandler(siteService)

	sites := rg.Group("/sites")
	{
		sites.POST("", h.createSite)
		sites.GET("", h.listSites)
		sites.GET("/:site_id", h.getSite)
		sites.POST("/:site_id/complete", h.completeSite)
	}
}

// createSite godoc
// @Summary Create a new site
// @Description Registers an active construction site with a zero funds counter
// @Tags sites
// @Accept  json
// @Produce  json
// @Param   site body dto.CreateSiteRequest true "Site details"
// @Success 201 {object} dto.SiteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create site"
// @Security BearerAuth
// @Router /sites [post]
func (h *siteHandler) createSite(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSite", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	site, err := h.siteService.CreateSite(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create site")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSiteResponse(site))
}

// listSites godoc
// @Summary List sites
// @Description Lists sites newest first, optionally restricted to one supervisor
// @Tags sites
// @Produce  json
// @Param   supervisorID query string false "Supervisor ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.SiteResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list sites"
// @Security BearerAuth
// @Router /sites [get]
func (h *siteHandler) listSites(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSitesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListSites", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sites, err := h.siteService.ListSites(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list sites")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSiteResponse(sites))
}

// getSite godoc
// @Summary Get a site
// @Tags sites
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Success 200 {object} dto.SiteResponse
// @Failure 400 {object} map[string]string "Invalid site ID"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to retrieve site"
// @Security BearerAuth
// @Router /sites/{site_id} [get]
func (h *siteHandler) getSite(c *gin.Context) {
	siteID, ok := uuidParam(c, "site_id")
	if !ok {
		return
	}

	site, err := h.siteService.GetSiteByID(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err, "Failed to retrieve site")
		return
	}

	c.JSON(http.StatusOK, dto.ToSiteResponse(site))
}

// completeSite godoc
// @Summary Complete a site
// @Description Moves an active site to completed. The transition cannot be undone.
// @Tags sites
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   completion body dto.CompleteSiteRequest true "Completion date"
// @Success 200 {object} dto.SiteResponse
// @Failure 400 {object} map[string]string "Invalid input or completion date"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 409 {object} map[string]string "Site already completed"
// @Failure 500 {object} map[string]string "Failed to complete site"
// @Security BearerAuth
// @Router /sites/{site_id}/complete [post]
func (h *siteHandler) completeSite(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	siteID, ok := uuidParam(c, "site_id")
	if !ok {
		return
	}
	var req dto.CompleteSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CompleteSite", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	site, err := h.siteService.CompleteSite(c.Request.Context(), siteID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to complete site")
		return
	}

	c.JSON(http.StatusOK, dto.ToSiteResponse(site))
}
