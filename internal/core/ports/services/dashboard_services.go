package services

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/dto"
)

// SummarySvcFacade produces the portfolio-level aggregate figures.
type SummarySvcFacade interface {
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
}

// TimelineSvcFacade produces the processed per-item series plus goal and
// milestone markers consumed by the chart renderer.
type TimelineSvcFacade interface {
	GetTimeline(ctx context.Context) (*dto.TimelineResponse, error)
}

// DashboardSvcFacade handles settings plus whole-dashboard export/import.
type DashboardSvcFacade interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.Settings, error)

	// Export returns the union of every persisted collection.
	Export(ctx context.Context) (*domain.DashboardExport, error)
	// Import replaces every collection from an export document. A document
	// missing any required top-level key is rejected and prior state is
	// left untouched.
	Import(ctx context.Context, raw []byte) (*dto.ImportDashboardResponse, error)
}
