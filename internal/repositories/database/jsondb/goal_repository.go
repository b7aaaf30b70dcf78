package jsondb

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

func (r *goalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	var found *domain.Goal
	r.store.read(func(doc document) {
		for i := range doc.FinancialGoals {
			if doc.FinancialGoals[i].GoalID == goalID {
				goal := doc.FinancialGoals[i]
				found = &goal
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
	}
	return found, nil
}

func (r *goalRepository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	r.store.read(func(doc document) {
		goals = append([]domain.Goal(nil), doc.FinancialGoals...)
	})
	return goals, nil
}

func (r *goalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	var dup bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialGoals {
			if doc.FinancialGoals[i].GoalID == goal.GoalID {
				dup = true
				return
			}
		}
		doc.FinancialGoals = append(doc.FinancialGoals, goal)
	})
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("%w: goal %s", apperrors.ErrDuplicate, goal.GoalID)
	}
	return nil
}

func (r *goalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	var found bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialGoals {
			if doc.FinancialGoals[i].GoalID == goal.GoalID {
				doc.FinancialGoals[i] = goal
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goal.GoalID)
	}
	return nil
}

func (r *goalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	var found bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialGoals {
			if doc.FinancialGoals[i].GoalID == goalID {
				doc.FinancialGoals = append(doc.FinancialGoals[:i], doc.FinancialGoals[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, goalID)
	}
	return nil
}

func (r *goalRepository) ReplaceGoals(ctx context.Context, goals []domain.Goal) error {
	return r.store.mutate(func(doc *document) {
		doc.FinancialGoals = append([]domain.Goal(nil), goals...)
	})
}
