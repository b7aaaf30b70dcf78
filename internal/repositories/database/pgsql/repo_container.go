package pgsql

import (
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
)

// NewRepositoryProvider bundles every repository backed by one document store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ItemRepo:      newItemRepository(store),
		GoalRepo:      newGoalRepository(store),
		MilestoneRepo: newMilestoneRepository(store),
		SettingsRepo:  newSettingsRepository(store),
	}
}
