package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/middleware"
)

// maxImportBytes caps how much of an export upload is read.
const maxImportBytes = 16 << 20

// dashboardHandler handles settings and whole-dashboard export/import.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers settings and export/import routes.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/settings", h.getSettings)
		dashboard.PATCH("/settings", h.updateSettings)
		dashboard.GET("/export", h.exportDashboard)
		dashboard.POST("/import", h.importDashboard)
	}
}

// getSettings godoc
// @Summary Get dashboard preferences
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.Settings
// @Router /dashboard/settings [get]
func (h *dashboardHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settings, err := h.dashboardService.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update dashboard preferences
// @Tags dashboard
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} domain.Settings
// @Router /dashboard/settings [patch]
func (h *dashboardHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSettings", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.dashboardService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// exportDashboard godoc
// @Summary Export the whole dashboard as one JSON document
// @Tags dashboard
// @Produce  json
// @Success 200 {object} domain.DashboardExport
// @Router /dashboard/export [get]
func (h *dashboardHandler) exportDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	export, err := h.dashboardService.Export(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export dashboard")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dashboard-export.json"`)
	c.JSON(http.StatusOK, export)
}

// importDashboard godoc
// @Summary Replace the whole dashboard from an export document
// @Description Validates that every required collection key is present before anything is written; a rejected file leaves prior state untouched
// @Tags dashboard
// @Accept  json
// @Produce  json
// @Success 200 {object} dto.ImportDashboardResponse
// @Failure 400 {object} map[string]string "Malformed or incomplete export file"
// @Router /dashboard/import [post]
func (h *dashboardHandler) importDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read import body")
		return
	}

	result, err := h.dashboardService.Import(c.Request.Context(), raw)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import dashboard")
		return
	}
	c.JSON(http.StatusOK, result)
}
