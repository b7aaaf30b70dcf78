package pgsql

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
)

type settingsRepository struct {
	store *Store
}

func newSettingsRepository(store *Store) portsrepo.SettingsRepository {
	return &settingsRepository{store: store}
}

var _ portsrepo.SettingsRepository = (*settingsRepository)(nil)

func (r *settingsRepository) FindSettings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	if err := r.store.getCollection(ctx, collectionSettings, &settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if settings.VisibleMetrics == nil {
		settings.VisibleMetrics = []string{}
	}
	return r.store.putCollection(ctx, collectionSettings, settings)
}
