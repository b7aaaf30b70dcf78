package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Item      ItemSvcFacade
	Goal      GoalSvcFacade
	Milestone MilestoneSvcFacade
	Summary   SummarySvcFacade
	Timeline  TimelineSvcFacade
	Dashboard DashboardSvcFacade
}
