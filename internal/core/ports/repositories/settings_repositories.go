package repositories

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// SettingsRepository stores the flat dashboard preferences.
type SettingsRepository interface {
	FindSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
