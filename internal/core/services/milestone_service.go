package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/findash/finance_dashboard_app/internal/apperrors"
	"github.com/findash/finance_dashboard_app/internal/core/domain"
	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/dto"
)

// milestoneService is the milestone tracker. Milestones carry no derived
// state; the only rule is uniqueness of the (date, description) pair.
type milestoneService struct {
	BaseService
	repo portsrepo.MilestoneRepositoryFacade
}

// NewMilestoneService creates the milestone tracker service.
func NewMilestoneService(repo portsrepo.MilestoneRepositoryFacade) portssvc.MilestoneSvcFacade {
	return &milestoneService{repo: repo}
}

var _ portssvc.MilestoneSvcFacade = (*milestoneService)(nil)

func (s *milestoneService) CreateMilestone(ctx context.Context, req dto.CreateMilestoneRequest) (*domain.Milestone, error) {
	existing, err := s.repo.ListMilestones(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range existing {
		if m.Date.Equal(req.Date) && m.Description == req.Description {
			return nil, fmt.Errorf("%w: milestone %q on %s", apperrors.ErrDuplicate, req.Description, req.Date)
		}
	}

	now := time.Now()
	milestone := domain.Milestone{
		MilestoneID: uuid.NewString(),
		Date:        req.Date,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.repo.SaveMilestone(ctx, milestone); err != nil {
		return nil, fmt.Errorf("failed to save milestone: %w", err)
	}
	return &milestone, nil
}

func (s *milestoneService) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	milestones, err := s.repo.ListMilestones(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(milestones, func(a, b int) bool {
		return milestones[a].Date.Before(milestones[b].Date)
	})
	return milestones, nil
}

func (s *milestoneService) DeleteMilestone(ctx context.Context, milestoneID string) error {
	return s.repo.DeleteMilestone(ctx, milestoneID)
}
