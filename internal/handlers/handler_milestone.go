package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/middleware"
)

// milestoneHandler handles HTTP requests related to milestones.
type milestoneHandler struct {
	milestoneService portssvc.MilestoneSvcFacade
}

func newMilestoneHandler(ms portssvc.MilestoneSvcFacade) *milestoneHandler {
	return &milestoneHandler{milestoneService: ms}
}

// registerMilestoneRoutes registers routes related to milestones.
func registerMilestoneRoutes(rg *gin.RouterGroup, milestoneService portssvc.MilestoneSvcFacade) {
	h := newMilestoneHandler(milestoneService)

	milestones := rg.Group("/milestones")
	{
		milestones.POST("", h.createMilestone)
		milestones.GET("", h.listMilestones)
		milestones.DELETE("/:id", h.deleteMilestone)
	}
}

// createMilestone godoc
// @Summary Create a milestone marker
// @Description Adds a dated marker to the timeline; the (date, description) pair must be unique
// @Tags milestones
// @Accept  json
// @Produce  json
// @Param   milestone body dto.CreateMilestoneRequest true "Milestone details"
// @Success 201 {object} domain.Milestone
// @Failure 409 {object} map[string]string "Duplicate milestone"
// @Router /milestones [post]
func (h *milestoneHandler) createMilestone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMilestone", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create milestone")
		return
	}
	c.JSON(http.StatusCreated, milestone)
}

// listMilestones godoc
// @Summary List all milestones in date order
// @Tags milestones
// @Produce  json
// @Success 200 {array} domain.Milestone
// @Router /milestones [get]
func (h *milestoneHandler) listMilestones(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	milestones, err := h.milestoneService.ListMilestones(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list milestones")
		return
	}
	c.JSON(http.StatusOK, milestones)
}

// deleteMilestone godoc
// @Summary Delete a milestone
// @Tags milestones
// @Param   id path string true "Milestone ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Milestone not found"
// @Router /milestones/{id} [delete]
func (h *milestoneHandler) deleteMilestone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.milestoneService.DeleteMilestone(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete milestone")
		return
	}
	c.Status(http.StatusNoContent)
}
