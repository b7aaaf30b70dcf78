package repositories

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// MilestoneReader defines read operations for milestones.
type MilestoneReader interface {
	FindMilestoneByID(ctx context.Context, milestoneID string) (*domain.Milestone, error)
	ListMilestones(ctx context.Context) ([]domain.Milestone, error)
}

// MilestoneWriter defines write operations for milestones.
type MilestoneWriter interface {
	SaveMilestone(ctx context.Context, milestone domain.Milestone) error
	DeleteMilestone(ctx context.Context, milestoneID string) error
	ReplaceMilestones(ctx context.Context, milestones []domain.Milestone) error
}

// MilestoneRepositoryFacade combines all milestone repository interfaces.
type MilestoneRepositoryFacade interface {
	MilestoneReader
	MilestoneWriter
}
