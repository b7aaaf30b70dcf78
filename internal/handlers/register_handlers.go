package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerItemRoutes(v1, services.Item)
	registerGoalRoutes(v1, services.Goal)
	registerMilestoneRoutes(v1, services.Milestone)
	registerSummaryRoutes(v1, services.Summary)
	registerTimelineRoutes(v1, services.Timeline)
	registerDashboardRoutes(v1, services.Dashboard)
}

// registerCustomValidators wires the enum validators the binding tags use.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("itemtype", func(fl validator.FieldLevel) bool {
		return domain.ItemType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("goaltype", func(fl validator.FieldLevel) bool {
		return domain.GoalType(fl.Field().String()).Valid()
	})
}
