package services

import (
	"context"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
	"github.com/findash/finance_dashboard_app/internal/dto"
)

// GoalReaderSvc is the read-only view of the goal tracker.
type GoalReaderSvc interface {
	ListGoals(ctx context.Context) ([]dto.GoalResponse, error)
}

// GoalSvcFacade is the goal tracker. Progress figures are derived on
// demand from linked items' current values; a linked item that no longer
// exists contributes zero.
type GoalSvcFacade interface {
	GoalReaderSvc

	CreateGoal(ctx context.Context, req dto.CreateGoalRequest) (*dto.GoalResponse, error)
	GetGoal(ctx context.Context, goalID string) (*dto.GoalResponse, error)
	UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	DeleteGoal(ctx context.Context, goalID string) error
}

// MilestoneSvcFacade is the milestone tracker.
type MilestoneSvcFacade interface {
	CreateMilestone(ctx context.Context, req dto.CreateMilestoneRequest) (*domain.Milestone, error)
	ListMilestones(ctx context.Context) ([]domain.Milestone, error)
	DeleteMilestone(ctx context.Context, milestoneID string) error
}
