package dto

import "github.com/findash/finance_dashboard_app/internal/core/domain"

// CreateMilestoneRequest defines the data needed to create a milestone
// marker. The (date, description) pair must be unique.
type CreateMilestoneRequest struct {
	Date        domain.Date `json:"date" binding:"required"`
	Description string      `json:"description" binding:"required"`
}
