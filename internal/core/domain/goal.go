package domain

import "github.com/shopspring/decimal"

// GoalType identifies what a financial goal is tracking.
type GoalType string

const (
	GoalBudgeting  GoalType = "budgeting"
	GoalSaving     GoalType = "saving"
	GoalInvesting  GoalType = "investing"
	GoalRetirement GoalType = "retirement"
	GoalDebt       GoalType = "debt"
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalBudgeting, GoalSaving, GoalInvesting, GoalRetirement, GoalDebt:
		return true
	}
	return false
}

// GoalCompatibleItemTypes maps each goal type to the item types it may link.
var GoalCompatibleItemTypes = map[GoalType][]ItemType{
	GoalBudgeting:  {ItemTypeAccount, ItemTypeCredit},
	GoalSaving:     {ItemTypeAccount, ItemTypeInvestment},
	GoalInvesting:  {ItemTypeInvestment},
	GoalRetirement: {ItemTypeAccount, ItemTypeInvestment, ItemTypeAsset},
	GoalDebt:       {ItemTypeCredit, ItemTypeLoan},
}

// Accepts reports whether the goal type may link an item of the given type.
func (t GoalType) Accepts(it ItemType) bool {
	for _, allowed := range GoalCompatibleItemTypes[t] {
		if allowed == it {
			return true
		}
	}
	return false
}

// Goal is a target tied to one or more financial items. It holds only weak
// references (ids) into the item collection; deleting an item does not
// cascade here, a missing linked item simply contributes zero to progress.
type Goal struct {
	GoalID       string          `json:"id"`
	Type         GoalType        `json:"type"`
	SubType      string          `json:"subType,omitempty"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   *Date           `json:"targetDate,omitempty"`
	LinkedItems  []string        `json:"linkedItems"`
	// InitialAmount is captured at creation time for debt goals; progress
	// is measured as the share of (initial - target) already paid down.
	InitialAmount *decimal.Decimal `json:"initialAmount,omitempty"`
	AuditFields
}

// GoalProgress is the snapshot progress of a goal, recomputed on demand
// from linked items' current values. It is never persisted as a running
// ledger, so it cannot drift from item state.
type GoalProgress struct {
	// CurrentAmount applies to saving, investing, retirement and debt goals.
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	// CurrentMonthExpenses/LastMonthExpenses apply to budgeting goals.
	CurrentMonthExpenses decimal.Decimal `json:"currentMonthExpenses"`
	LastMonthExpenses    decimal.Decimal `json:"lastMonthExpenses"`
	// PercentComplete is raw, not clamped; display clamping is a
	// presentation concern.
	PercentComplete decimal.Decimal `json:"percentComplete"`
}
