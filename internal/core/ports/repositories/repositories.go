package repositories

// RepositoryProvider bundles every repository implementation so the
// service container can be wired from a single storage backend.
type RepositoryProvider struct {
	ItemRepo      ItemRepositoryFacade
	GoalRepo      GoalRepositoryFacade
	MilestoneRepo MilestoneRepositoryFacade
	SettingsRepo  SettingsRepository
}
