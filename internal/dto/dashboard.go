package dto

// UpdateSettingsRequest changes the dashboard preferences. Pointers
// distinguish "not provided" from clearing a value.
type UpdateSettingsRequest struct {
	VisibleMetrics *[]string `json:"visibleMetrics"`
	Theme          *string   `json:"theme"`
}

// ImportDashboardResponse reports what a full-dashboard import replaced.
type ImportDashboardResponse struct {
	Items      int `json:"items"`
	Goals      int `json:"goals"`
	Milestones int `json:"milestones"`
}
