package jsondb

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
	r.store.read(func(doc document) {
		settings = domain.Settings{
			VisibleMetrics: append([]string(nil), doc.VisibleMetrics...),
			Theme:          doc.Theme,
		}
	})
	return settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return r.store.mutate(func(doc *document) {
		doc.VisibleMetrics = append([]string(nil), settings.VisibleMetrics...)
		doc.Theme = settings.Theme
	})
}
