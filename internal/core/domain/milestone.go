package domain

// Milestone is a simple dated marker rendered on the timeline. It carries
// no derived state; uniqueness is enforced on the (date, description) pair
// so repeated inserts of the same marker are rejected as duplicates.
type Milestone struct {
	MilestoneID string `json:"id"`
	Date        Date   `json:"date"`
	Description string `json:"description"`
	AuditFields
}
