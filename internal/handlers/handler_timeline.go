package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/middleware"
)

// timelineHandler handles the chart data endpoint.
type timelineHandler struct {
	timelineService portssvc.TimelineSvcFacade
}

// registerTimelineRoutes registers the chart data route.
func registerTimelineRoutes(rg *gin.RouterGroup, timelineService portssvc.TimelineSvcFacade) {
	h := &timelineHandler{timelineService: timelineService}
	rg.GET("/timeline", h.getTimeline)
}

// getTimeline godoc
// @Summary Get chart series and markers
// @Description Returns one processed time series per item plus goal and milestone markers
// @Tags timeline
// @Produce  json
// @Success 200 {object} dto.TimelineResponse
// @Router /timeline [get]
func (h *timelineHandler) getTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timeline, err := h.timelineService.GetTimeline(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build timeline")
		return
	}
	c.JSON(http.StatusOK, timeline)
}
