package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/middleware"
)

// summaryHandler handles the aggregate metrics endpoint.
type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

// registerSummaryRoutes registers the aggregate metrics route.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := &summaryHandler{summaryService: summaryService}
	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Get portfolio-level aggregate figures
// @Description Returns net worth, debt, assets, savings and investments with previous-month comparisons
// @Tags summary
// @Produce  json
// @Success 200 {object} dto.SummaryResponse
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
