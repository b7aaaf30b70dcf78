package services

import (
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/platform/events"
	"github.com/findash/finance_dashboard_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. All services share one event bus; the timeline
// service subscribes to it for cache invalidation, the item and dashboard
// services publish to it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, bus *events.Bus) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Item service first since goal, summary and timeline read through it.
	container.Item = NewItemService(repos.ItemRepo, bus)
	itemReader := container.Item.(portssvc.ItemReaderSvc)

	container.Goal = NewGoalService(repos.GoalRepo, itemReader)
	container.Milestone = NewMilestoneService(repos.MilestoneRepo)
	container.Summary = NewSummaryService(itemReader, cfg.CurrencyCode)
	container.Timeline = NewTimelineService(itemReader, repos.GoalRepo, repos.MilestoneRepo, bus)
	container.Dashboard = NewDashboardService(repos, bus)

	return container
}
