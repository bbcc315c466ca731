package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Periods and fiscal years compare at day granularity, so timestamps are
// truncated before any containment check.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateWithin(d, start, end time.Time) bool {
	dd := dateOnly(d)
	return !dd.Before(dateOnly(start)) && !dd.After(dateOnly(end))
}
