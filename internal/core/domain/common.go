package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps creation and update metadata with the same actor and time.
func NewAuditFields(actorID string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actorID,
		LastUpdatedAt: at,
		LastUpdatedBy: actorID,
	}
}

// Touch records an update by actorID at the given time.
func (a *AuditFields) Touch(actorID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actorID
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CalendarDate returns the calendar day of t as seen in loc, expressed as
// midnight UTC so that dates compare and persist without zone drift.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time
