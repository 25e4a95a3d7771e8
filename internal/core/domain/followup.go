package domain

import (
	"sort"
	"time"
)

// FollowUpStatus is the state of a follow-up. The only transition is
// PENDING -> COMPLETED.
type FollowUpStatus string

const (
	FollowUpStatusPending   FollowUpStatus = "PENDING"
	FollowUpStatusCompleted FollowUpStatus = "COMPLETED"
)

const (
	// DefaultFollowUpTime is used when a follow-up is scheduled without a time.
	DefaultFollowUpTime = "10:00"
	// DefaultCompletionRemark is recorded when a follow-up is completed without a remark.
	DefaultCompletionRemark = "Follow-up completed"
	// InitialFollowUpNotes is the note on the follow-up spawned by a new enquiry.
	InitialFollowUpNotes = "Initial follow-up created"
	// DefaultFollowUpIntervalDays is the gap used for automatically scheduled follow-ups.
	DefaultFollowUpIntervalDays = 7
)

// FollowUp is a scheduled reminder to contact a client about an enquiry.
// FollowUpDate is a calendar date (midnight UTC, see CalendarDate).
type FollowUp struct {
	FollowUpID   string         `json:"followUpId"`
	EnquiryID    string         `json:"enquiryId"`
	FollowUpDate time.Time      `json:"followUpDate"`
	FollowUpTime string         `json:"followUpTime"`
	Status       FollowUpStatus `json:"status"`
	Notes        string         `json:"notes"`
	AgentName    string         `json:"agentName"`
	AgentID      string         `json:"agentId"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	IsDeleted    bool           `json:"isDeleted"`
	AuditFields
}

// IsPending reports whether the follow-up is still open.
func (f FollowUp) IsPending() bool {
	return f.Status == FollowUpStatusPending
}

// IsOverdue reports PENDING follow-ups dated strictly before today.
func (f FollowUp) IsOverdue(today time.Time) bool {
	return f.IsPending() && f.FollowUpDate.Before(today)
}

// IsDueToday reports PENDING follow-ups dated today.
func (f FollowUp) IsDueToday(today time.Time) bool {
	return f.IsPending() && f.FollowUpDate.Equal(today)
}

// CompletedOn reports whether the follow-up was marked complete on the given
// calendar day, whatever its due date was.
func (f FollowUp) CompletedOn(today time.Time, loc *time.Location) bool {
	if f.Status != FollowUpStatusCompleted || f.CompletedAt == nil {
		return false
	}
	return CalendarDate(*f.CompletedAt, loc).Equal(today)
}

// FollowUpNode is a timestamped note attached to a follow-up.
type FollowUpNode struct {
	FollowUpNodeID   string    `json:"followUpNodeId"`
	FollowUpID       string    `json:"followUpId"`
	FollowUpDateTime time.Time `json:"followUpDateTime"`
	Body             string    `json:"body"`
	AgentName        string    `json:"agentName"`
	UserID           string    `json:"userId"`
	IsDeleted        bool      `json:"isDeleted"`
}

// FollowUpStats are the counters shown on the follow-up board.
// CompletedToday counts follow-ups completed today regardless of due date;
// DueTodayCompleted counts follow-ups due today that are already completed.
type FollowUpStats struct {
	Overdue           int `json:"overdue"`
	DueToday          int `json:"dueToday"`
	CompletedToday    int `json:"completedToday"`
	DueTodayCompleted int `json:"dueTodayCompleted"`
	TotalPending      int `json:"totalPending"`
}

// ComputeFollowUpStats derives the board counters for the given calendar day.
func ComputeFollowUpStats(followUps []FollowUp, today time.Time, loc *time.Location) FollowUpStats {
	var stats FollowUpStats
	for _, f := range followUps {
		if f.IsDeleted {
			continue
		}
		if f.IsPending() {
			stats.TotalPending++
		}
		if f.IsOverdue(today) {
			stats.Overdue++
		}
		if f.IsDueToday(today) {
			stats.DueToday++
		}
		if f.CompletedOn(today, loc) {
			stats.CompletedToday++
		}
		if f.Status == FollowUpStatusCompleted && f.FollowUpDate.Equal(today) {
			stats.DueTodayCompleted++
		}
	}
	return stats
}

// SortFollowUps orders follow-ups by date, then creation time, then id.
func SortFollowUps(followUps []FollowUp) {
	sort.SliceStable(followUps, func(i, j int) bool {
		a, b := followUps[i], followUps[j]
		if !a.FollowUpDate.Equal(b.FollowUpDate) {
			return a.FollowUpDate.Before(b.FollowUpDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.FollowUpID < b.FollowUpID
	})
}

// FollowUpView selects one of the derived follow-up lists.
type FollowUpView string

const (
	FollowUpViewAll            FollowUpView = "all"
	FollowUpViewToday          FollowUpView = "today"
	FollowUpViewOverdue        FollowUpView = "overdue"
	FollowUpViewDueToday       FollowUpView = "dueToday"
	FollowUpViewCompletedToday FollowUpView = "completedToday"
)

// IsValid reports whether v is a known view.
func (v FollowUpView) IsValid() bool {
	switch v {
	case FollowUpViewAll, FollowUpViewToday, FollowUpViewOverdue, FollowUpViewDueToday, FollowUpViewCompletedToday:
		return true
	}
	return false
}

// FilterFollowUps returns the follow-ups belonging to view, sorted with
// SortFollowUps. The "today" view is every PENDING follow-up due on or before today.
func FilterFollowUps(followUps []FollowUp, view FollowUpView, today time.Time, loc *time.Location) []FollowUp {
	out := make([]FollowUp, 0, len(followUps))
	for _, f := range followUps {
		if f.IsDeleted {
			continue
		}
		keep := false
		switch view {
		case FollowUpViewToday:
			keep = f.IsPending() && !f.FollowUpDate.After(today)
		case FollowUpViewOverdue:
			keep = f.IsOverdue(today)
		case FollowUpViewDueToday:
			keep = f.IsDueToday(today)
		case FollowUpViewCompletedToday:
			keep = f.CompletedOn(today, loc)
		default:
			keep = true
		}
		if keep {
			out = append(out, f)
		}
	}
	SortFollowUps(out)
	return out
}

// TimelineEntryType labels entries of a follow-up timeline.
type TimelineEntryType string

const (
	TimelineFollowUpCreated TimelineEntryType = "Follow-up Created"
	TimelineNoteAdded       TimelineEntryType = "Note Added"
)

// TimelineEntry is one row of a follow-up's activity timeline.
type TimelineEntry struct {
	Type      TimelineEntryType `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Body      string            `json:"body"`
	AgentName string            `json:"agentName"`
}

// BuildTimeline merges the creation event with the follow-up's notes in
// chronological order.
func BuildTimeline(f FollowUp, nodes []FollowUpNode) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(nodes)+1)
	entries = append(entries, TimelineEntry{
		Type:      TimelineFollowUpCreated,
		Timestamp: f.CreatedAt,
		Body:      f.Notes,
		AgentName: f.AgentName,
	})
	sorted := make([]FollowUpNode, 0, len(nodes))
	for _, n := range nodes {
		if !n.IsDeleted {
			sorted = append(sorted, n)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FollowUpDateTime.Before(sorted[j].FollowUpDateTime)
	})
	for _, n := range sorted {
		entries = append(entries, TimelineEntry{
			Type:      TimelineNoteAdded,
			Timestamp: n.FollowUpDateTime,
			Body:      n.Body,
			AgentName: n.AgentName,
		})
	}
	return entries
}
