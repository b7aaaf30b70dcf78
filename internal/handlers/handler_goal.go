package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/middleware"
)

// goalHandler handles HTTP requests related to financial goals.
type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

func newGoalHandler(gs portssvc.GoalSvcFacade) *goalHandler {
	return &goalHandler{goalService: gs}
}

// registerGoalRoutes registers routes related to financial goals.
func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PATCH("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)
	}
}

// createGoal godoc
// @Summary Create a financial goal
// @Description Creates a goal linked to one or more existing, type-compatible items
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Invalid input or incompatible linked items"
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateGoal", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// listGoals godoc
// @Summary List all goals with current progress
// @Tags goals
// @Produce  json
// @Success 200 {array} dto.GoalResponse
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goals, err := h.goalService.ListGoals(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

// getGoal godoc
// @Summary Get a goal with current progress
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Router /goals/{id} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goal, err := h.goalService.GetGoal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// updateGoal godoc
// @Summary Update a goal
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   goal body dto.UpdateGoalRequest true "Fields to change"
// @Success 200 {object} dto.GoalResponse
// @Failure 404 {object} map[string]string "Goal not found"
// @Router /goals/{id} [patch]
func (h *goalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateGoal", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// deleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Param   id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Goal not found"
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.goalService.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}
