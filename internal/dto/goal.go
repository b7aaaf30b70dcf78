package dto

import (
	"github.com/shopspring/decimal"

	"github.com/findash/finance_dashboard_app/internal/core/domain"
)

// CreateGoalRequest defines the data needed to create a financial goal.
// Every linked item must exist and be type-compatible with the goal type.
type CreateGoalRequest struct {
	Type         domain.GoalType  `json:"type" binding:"required,goaltype"`
	SubType      string           `json:"subType"`
	Name         string           `json:"name" binding:"required"`
	TargetAmount *decimal.Decimal `json:"targetAmount" binding:"required"`
	TargetDate   *domain.Date     `json:"targetDate"`
	LinkedItems  []string         `json:"linkedItems" binding:"required,min=1"`
}

// UpdateGoalRequest defines the fields an existing goal allows changing.
type UpdateGoalRequest struct {
	Name         *string          `json:"name"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	TargetDate   *domain.Date     `json:"targetDate"`
	LinkedItems  *[]string        `json:"linkedItems"`
}

// GoalResponse pairs a stored goal with its on-demand progress snapshot.
type GoalResponse struct {
	domain.Goal
	Progress domain.GoalProgress `json:"progress"`
}
