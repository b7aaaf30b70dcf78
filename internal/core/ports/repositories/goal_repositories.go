package repositories

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// GoalReader defines read operations for financial goals.
type GoalReader interface {
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
}

// GoalWriter defines write operations for financial goals.
type GoalWriter interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, goalID string) error
	ReplaceGoals(ctx context.Context, goals []domain.Goal) error
}

// GoalRepositoryFacade combines all goal repository interfaces.
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
