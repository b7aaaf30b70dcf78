package domain

// DashboardExport is the union of every persisted collection as one JSON
// document. Import requires every one of these top-level keys to be
// present and leaves prior state untouched when any is missing.
type DashboardExport struct {
	FinancialItems      []Item      `json:"financialItems"`
	FinancialGoals      []Goal      `json:"financialGoals"`
	FinancialMilestones []Milestone `json:"financialMilestones"`
	ItemOrder           []string    `json:"itemOrder"`
	VisibleMetrics      []string    `json:"visibleMetrics"`
	Theme               string      `json:"theme"`
}

// Settings holds the flat dashboard preferences: which metric cards are
// visible and the theme name.
type Settings struct {
	VisibleMetrics []string `json:"visibleMetrics"`
	Theme          string   `json:"theme"`
}

// DashboardExportKeys lists the required top-level keys of an export file.
var DashboardExportKeys = []string{
	"financialItems",
	"financialGoals",
	"financialMilestones",
	"itemOrder",
	"visibleMetrics",
	"theme",
}
