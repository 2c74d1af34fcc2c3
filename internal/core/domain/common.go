package domain

import "time"

// AuditFields holds standard audit information for mutable aggregates (employees, customers).
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // subject of the verified bearer token
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Stamp sets both creation and update fields to the same actor and time.
func (a *AuditFields) Stamp(userID string, at time.Time) {
	a.CreatedAt = at
	a.CreatedBy = userID
	a.LastUpdatedAt = at
	a.LastUpdatedBy = userID
}

// Touch records an update.
func (a *AuditFields) Touch(userID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = userID
}
