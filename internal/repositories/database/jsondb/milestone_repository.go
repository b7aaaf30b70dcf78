package jsondb

import (
	"context"
	"fmt"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
)

type milestoneRepository struct {
	store *Store
}

func newMilestoneRepository(store *Store) portsrepo.MilestoneRepositoryFacade {
	return &milestoneRepository{store: store}
}

var _ portsrepo.MilestoneRepositoryFacade = (*milestoneRepository)(nil)

func (r *milestoneRepository) FindMilestoneByID(ctx context.Context, milestoneID string) (*domain.Milestone, error) {
	var found *domain.Milestone
	r.store.read(func(doc document) {
		for i := range doc.FinancialMilestones {
			if doc.FinancialMilestones[i].MilestoneID == milestoneID {
				milestone := doc.FinancialMilestones[i]
				found = &milestone
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("%w: milestone %s", apperrors.ErrNotFound, milestoneID)
	}
	return found, nil
}

func (r *milestoneRepository) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	var milestones []domain.Milestone
	r.store.read(func(doc document) {
		milestones = append([]domain.Milestone(nil), doc.FinancialMilestones...)
	})
	return milestones, nil
}

func (r *milestoneRepository) SaveMilestone(ctx context.Context, milestone domain.Milestone) error {
	return r.store.mutate(func(doc *document) {
		doc.FinancialMilestones = append(doc.FinancialMilestones, milestone)
	})
}

func (r *milestoneRepository) DeleteMilestone(ctx context.Context, milestoneID string) error {
	var found bool
	err := r.store.mutate(func(doc *document) {
		for i := range doc.FinancialMilestones {
			if doc.FinancialMilestones[i].MilestoneID == milestoneID {
				doc.FinancialMilestones = append(doc.FinancialMilestones[:i], doc.FinancialMilestones[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: milestone %s", apperrors.ErrNotFound, milestoneID)
	}
	return nil
}

func (r *milestoneRepository) ReplaceMilestones(ctx context.Context, milestones []domain.Milestone) error {
	return r.store.mutate(func(doc *document) {
		doc.FinancialMilestones = append([]domain.Milestone(nil), milestones...)
	})
}
