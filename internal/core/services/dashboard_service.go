package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/core/metrics"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/platform/events"
)

// dashboardService handles preferences plus whole-dashboard export and
// import. Import is all-or-nothing: the export document is validated in
// full before any collection is touched, so a malformed file leaves prior
// state intact.
type dashboardService struct {
	BaseService
	repos portsrepo.RepositoryProvider
	bus   *events.Bus
	now   func() domain.Date
}

// DashboardServiceOption customizes a dashboardService.
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock pins the service's notion of "today". Intended for tests.
func WithDashboardClock(now func() domain.Date) DashboardServiceOption {
	return func(s *dashboardService) { s.now = now }
}

// NewDashboardService creates the dashboard settings and export/import service.
func NewDashboardService(repos portsrepo.RepositoryProvider, bus *events.Bus, opts ...DashboardServiceOption) portssvc.DashboardSvcFacade {
	s := &dashboardService{repos: repos, bus: bus, now: domain.Today}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) GetSettings(ctx context.Context) (domain.Settings, error) {
	return s.repos.SettingsRepo.FindSettings(ctx)
}

func (s *dashboardService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.Settings, error) {
	settings, err := s.repos.SettingsRepo.FindSettings(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	if req.VisibleMetrics != nil {
		settings.VisibleMetrics = *req.VisibleMetrics
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if err := s.repos.SettingsRepo.SaveSettings(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("saving settings: %w", err)
	}
	return settings, nil
}

func (s *dashboardService) Export(ctx context.Context) (*domain.DashboardExport, error) {
	items, err := s.repos.ItemRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting items: %w", err)
	}
	goals, err := s.repos.GoalRepo.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting goals: %w", err)
	}
	milestones, err := s.repos.MilestoneRepo.ListMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting milestones: %w", err)
	}
	order, err := s.repos.ItemRepo.FindItemOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting item order: %w", err)
	}
	settings, err := s.repos.SettingsRepo.FindSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting settings: %w", err)
	}

	export := &domain.DashboardExport{
		FinancialItems:      items,
		FinancialGoals:      goals,
		FinancialMilestones: milestones,
		ItemOrder:           order,
		VisibleMetrics:      settings.VisibleMetrics,
		Theme:               settings.Theme,
	}
	if export.FinancialItems == nil {
		export.FinancialItems = []domain.Item{}
	}
	if export.FinancialGoals == nil {
		export.FinancialGoals = []domain.Goal{}
	}
	if export.FinancialMilestones == nil {
		export.FinancialMilestones = []domain.Milestone{}
	}
	if export.ItemOrder == nil {
		export.ItemOrder = []string{}
	}
	if export.VisibleMetrics == nil {
		export.VisibleMetrics = []string{}
	}
	return export, nil
}

func (s *dashboardService) Import(ctx context.Context, raw []byte) (*dto.ImportDashboardResponse, error) {
	// Key presence is checked on the raw document, not the decoded struct,
	// so an absent collection is distinguishable from a present empty one.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: export file is not a JSON object: %v", apperrors.ErrParse, err)
	}
	for _, key := range domain.DashboardExportKeys {
		if _, ok := doc[key]; !ok {
			return nil, fmt.Errorf("%w: export file missing required key %q", apperrors.ErrValidation, key)
		}
	}

	var export domain.DashboardExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("%w: decoding export file: %v", apperrors.ErrParse, err)
	}

	// Imported derived state is untrusted; re-sort and recompute every
	// item before anything is written.
	today := s.now()
	loans := make(map[string]*domain.Item)
	for i := range export.FinancialItems {
		item := &export.FinancialItems[i]
		item.SortData()
		if item.Type == domain.ItemTypeLoan {
			loans[item.ItemID] = item
		}
	}
	for i := range export.FinancialItems {
		item := &export.FinancialItems[i]
		opts := metrics.Options{Today: today}
		if item.Type == domain.ItemTypeAsset && item.AssociatedLoanID != "" {
			opts.AssociatedLoan = loans[item.AssociatedLoanID]
		}
		result, err := metrics.Compute(*item, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", apperrors.ErrValidation, item.ItemID, err)
		}
		item.Metrics = &result.Bundle
		item.SetCurrentScalar(result.Current)
	}

	if err := s.repos.ItemRepo.ReplaceItems(ctx, export.FinancialItems); err != nil {
		return nil, fmt.Errorf("replacing items: %w", err)
	}
	if err := s.repos.GoalRepo.ReplaceGoals(ctx, export.FinancialGoals); err != nil {
		return nil, fmt.Errorf("replacing goals: %w", err)
	}
	if err := s.repos.MilestoneRepo.ReplaceMilestones(ctx, export.FinancialMilestones); err != nil {
		return nil, fmt.Errorf("replacing milestones: %w", err)
	}
	if err := s.repos.ItemRepo.SaveItemOrder(ctx, reconcileOrder(export.ItemOrder, export.FinancialItems)); err != nil {
		return nil, fmt.Errorf("replacing item order: %w", err)
	}
	settings := domain.Settings{VisibleMetrics: export.VisibleMetrics, Theme: export.Theme}
	if err := s.repos.SettingsRepo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("replacing settings: %w", err)
	}

	s.bus.Publish(events.DashboardReplaced{})
	s.LogInfo(ctx, "dashboard imported",
		"items", len(export.FinancialItems),
		"goals", len(export.FinancialGoals),
		"milestones", len(export.FinancialMilestones))

	return &dto.ImportDashboardResponse{
		Items:      len(export.FinancialItems),
		Goals:      len(export.FinancialGoals),
		Milestones: len(export.FinancialMilestones),
	}, nil
}

// reconcileOrder drops ids the import no longer has and appends items the
// ordering never mentioned, preserving the given sequence otherwise.
func reconcileOrder(order []string, items []domain.Item) []string {
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.ItemID] = true
	}
	reconciled := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, id := range order {
		if known[id] && !seen[id] {
			reconciled = append(reconciled, id)
			seen[id] = true
		}
	}
	for _, item := range items {
		if !seen[item.ItemID] {
			reconciled = append(reconciled, item.ItemID)
		}
	}
	return reconciled
}
