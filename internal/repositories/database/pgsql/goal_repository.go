package pgsql

import (
	"context"
	"fmt"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
)

type goalRepository struct {
	store *Store
}

func newGoalRepository(store *Store) portsrepo.GoalRepositoryFacade {
	return &goalRepository{store: store}
}

var _ portsrepo.GoalRepositoryFacade = (*goalRepository)(nil)

func (r *goalRepository) loadGoals(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := r.store.getCollection(ctx, collectionGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	goals, err := r.loadGoals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].GoalID == goalID {
			return &goals[i], nil
		}
	}
	return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
}

func (r *goalRepository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	return r.loadGoals(ctx)
}

func (r *goalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	goals, err := r.loadGoals(ctx)
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].GoalID == goal.GoalID {
			return fmt.Errorf("%w: goal %s", apperrors.ErrDuplicate, goal.GoalID)
		}
	}
	return r.store.putCollection(ctx, collectionGoals, append(goals, goal))
}

func (r *goalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	goals, err := r.loadGoals(ctx)
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].GoalID == goal.GoalID {
			goals[i] = goal
			return r.store.putCollection(ctx, collectionGoals, goals)
		}
	}
	return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goal.GoalID)
}

func (r *goalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	goals, err := r.loadGoals(ctx)
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].GoalID == goalID {
			goals = append(goals[:i], goals[i+1:]...)
			return r.store.putCollection(ctx, collectionGoals, goals)
		}
	}
	return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
}

func (r *goalRepository) ReplaceGoals(ctx context.Context, goals []domain.Goal) error {
	if goals == nil {
		goals = []domain.Goal{}
	}
	return r.store.putCollection(ctx, collectionGoals, goals)
}
