package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
)

var (
	ErrNoLinkedItems = errors.New("goal must link at least one item")
)

// goalService is the goal tracker. Goals hold weak references into the
// item registry; progress is a pure read-only derivation over whatever
// linked items still exist, recomputed on every read and never persisted.
type goalService struct {
	BaseService
	repo  portsrepo.GoalRepositoryFacade
	items portssvc.ItemReaderSvc
	now   func() domain.Date
}

// GoalServiceOption customizes a goalService.
type GoalServiceOption func(*goalService)

// WithGoalClock pins the tracker's notion of "today". Intended for tests.
func WithGoalClock(now func() domain.Date) GoalServiceOption {
	return func(s *goalService) { s.now = now }
}

// NewGoalService creates the goal tracker service.
func NewGoalService(repo portsrepo.GoalRepositoryFacade, items portssvc.ItemReaderSvc, opts ...GoalServiceOption) portssvc.GoalSvcFacade {
	s := &goalService{repo: repo, items: items, now: domain.Today}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown goal type %q", apperrors.ErrValidation, req.Type)
	}
	if len(req.LinkedItems) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoLinkedItems)
	}
	if req.TargetAmount == nil {
		return nil, fmt.Errorf("%w: missing required field %q for %s goal", apperrors.ErrValidation, "targetAmount", req.Type)
	}
	if req.Type == domain.GoalSaving && req.SubType == "" {
		return nil, fmt.Errorf("%w: missing required field %q for %s goal", apperrors.ErrValidation, "subType", req.Type)
	}

	// At creation time every linked item must exist and be eligible for
	// the goal type; only later deletions degrade to zero-contribution.
	linked, err := s.resolveLinked(ctx, req.Type, req.LinkedItems)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		Type:         req.Type,
		SubType:      req.SubType,
		Name:         req.Name,
		TargetAmount: *req.TargetAmount,
		TargetDate:   req.TargetDate,
		LinkedItems:  req.LinkedItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if req.Type == domain.GoalDebt {
		// Captured once so payoff progress has a fixed starting line.
		initial := decimal.Zero
		for _, item := range linked {
			initial = initial.Add(item.CurrentScalar())
		}
		goal.InitialAmount = &initial
	}

	if err := s.repo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return s.toResponse(ctx, goal), nil
}

func (s *goalService) resolveLinked(ctx context.Context, goalType domain.GoalType, ids []string) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		item, err := s.items.GetItem(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: linked item %q not found", apperrors.ErrValidation, id)
		}
		if !goalType.Accepts(item.Type) {
			return nil, fmt.Errorf("%w: %s goal cannot link a %s item", apperrors.ErrValidation, goalType, item.Type)
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *goalService) GetGoal(ctx context.Context, goalID string) (*dto.GoalResponse, error) {
	goal, err := s.repo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, *goal), nil
}

func (s *goalService) ListGoals(ctx context.Context) ([]dto.GoalResponse, error) {
	goals, err := s.repo.ListGoals(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = *s.toResponse(ctx, goal)
	}
	return responses, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.repo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.LinkedItems != nil {
		if len(*req.LinkedItems) == 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoLinkedItems)
		}
		if _, err := s.resolveLinked(ctx, goal.Type, *req.LinkedItems); err != nil {
			return nil, err
		}
		goal.LinkedItems = *req.LinkedItems
	}
	goal.LastUpdatedAt = time.Now()
	if err := s.repo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return s.toResponse(ctx, *goal), nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID string) error {
	return s.repo.DeleteGoal(ctx, goalID)
}

func (s *goalService) toResponse(ctx context.Context, goal domain.Goal) *dto.GoalResponse {
	return &dto.GoalResponse{
		Goal:     goal,
		Progress: s.progress(ctx, goal),
	}
}

// progress derives the goal's snapshot figures from linked items' current
// derived state. A linked item that no longer exists contributes zero.
func (s *goalService) progress(ctx context.Context, goal domain.Goal) domain.GoalProgress {
	var progress domain.GoalProgress

	switch goal.Type {
	case domain.GoalBudgeting:
		today := s.now()
		currentKey := today.MonthKey()
		lastKey := today.StartOfMonth().AddMonths(-1).MonthKey()
		for _, item := range s.linkedItems(ctx, goal.LinkedItems) {
			progress.CurrentMonthExpenses = progress.CurrentMonthExpenses.Add(monthExpenses(item, currentKey))
			progress.LastMonthExpenses = progress.LastMonthExpenses.Add(monthExpenses(item, lastKey))
		}
		progress.PercentComplete = ratioPercent(progress.CurrentMonthExpenses, goal.TargetAmount)

	case domain.GoalSaving, domain.GoalInvesting:
		for _, item := range s.linkedItems(ctx, goal.LinkedItems) {
			progress.CurrentAmount = progress.CurrentAmount.Add(item.CurrentScalar())
		}
		progress.PercentComplete = ratioPercent(progress.CurrentAmount, goal.TargetAmount)

	case domain.GoalRetirement:
		for _, item := range s.linkedItems(ctx, goal.LinkedItems) {
			progress.CurrentAmount = progress.CurrentAmount.Add(retirementContribution(item))
		}
		progress.PercentComplete = ratioPercent(progress.CurrentAmount, goal.TargetAmount)

	case domain.GoalDebt:
		for _, item := range s.linkedItems(ctx, goal.LinkedItems) {
			progress.CurrentAmount = progress.CurrentAmount.Add(item.CurrentScalar())
		}
		initial := decimal.Zero
		if goal.InitialAmount != nil {
			initial = *goal.InitialAmount
		}
		// Share of the planned paydown already achieved. Raw, unclamped.
		denom := initial.Sub(goal.TargetAmount)
		if !denom.IsZero() {
			progress.PercentComplete = initial.Sub(progress.CurrentAmount).
				Div(denom).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}

	progress.CurrentAmount = progress.CurrentAmount.Round(2)
	progress.CurrentMonthExpenses = progress.CurrentMonthExpenses.Round(2)
	progress.LastMonthExpenses = progress.LastMonthExpenses.Round(2)
	return progress
}

// linkedItems resolves ids to items, silently skipping dangling references.
func (s *goalService) linkedItems(ctx context.Context, ids []string) []domain.Item {
	items := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		item, err := s.items.GetItem(ctx, id)
		if err != nil {
			continue
		}
		items = append(items, *item)
	}
	return items
}

// monthExpenses reads one item's spending figure for a month: the expense
// magnitude for accounts, total spent for credit cards.
func monthExpenses(item domain.Item, monthKey string) decimal.Decimal {
	if item.Metrics == nil {
		return decimal.Zero
	}
	mm, ok := item.Metrics.Monthly[monthKey]
	if !ok {
		return decimal.Zero
	}
	if item.Type == domain.ItemTypeCredit {
		return mm.TotalSpent
	}
	return mm.Expenses.Neg()
}

// retirementContribution is an item's current value, except assets which
// contribute their equity (value net of the associated loan).
func retirementContribution(item domain.Item) decimal.Decimal {
	if item.Type == domain.ItemTypeAsset && item.Metrics != nil && item.Metrics.Summary != nil {
		return item.Metrics.Summary.Equity
	}
	return item.CurrentScalar()
}

// ratioPercent is part/whole*100 with a zero denominator resolving to 0.
func ratioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}
