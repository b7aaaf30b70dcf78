package pgsql

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

func (r *milestoneRepository) loadMilestones(ctx context.Context) ([]domain.Milestone, error) {
	var milestones []domain.Milestone
	if err := r.store.getCollection(ctx, collectionMilestones, &milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *milestoneRepository) FindMilestoneByID(ctx context.Context, milestoneID string) (*domain.Milestone, error) {
	milestones, err := r.loadMilestones(ctx)
	if err != nil {
		return nil, err
	}
	for i := range milestones {
		if milestones[i].MilestoneID == milestoneID {
			return &milestones[i], nil
		}
	}
	return nil, fmt.Errorf("%w: milestone %s", apperrors.ErrNotFound, milestoneID)
}

func (r *milestoneRepository) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	return r.loadMilestones(ctx)
}

func (r *milestoneRepository) SaveMilestone(ctx context.Context, milestone domain.Milestone) error {
	milestones, err := r.loadMilestones(ctx)
	if err != nil {
		return err
	}
	return r.store.putCollection(ctx, collectionMilestones, append(milestones, milestone))
}

func (r *milestoneRepository) DeleteMilestone(ctx context.Context, milestoneID string) error {
	milestones, err := r.loadMilestones(ctx)
	if err != nil {
		return err
	}
	for i := range milestones {
		if milestones[i].MilestoneID == milestoneID {
			milestones = append(milestones[:i], milestones[i+1:]...)
			return r.store.putCollection(ctx, collectionMilestones, milestones)
		}
	}
	return fmt.Errorf("%w: milestone %s", apperrors.ErrNotFound, milestoneID)
}

func (r *milestoneRepository) ReplaceMilestones(ctx context.Context, milestones []domain.Milestone) error {
	if milestones == nil {
		milestones = []domain.Milestone{}
	}
	return r.store.putCollection(ctx, collectionMilestones, milestones)
}
