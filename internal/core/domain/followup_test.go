package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ist   = time.FixedZone("IST", 5*3600+1800)
	today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

func day(offset int) time.Time { return today.AddDate(0, 0, offset) }

func completedAt(t time.Time) *time.Time { return &t }

func followUpBoard() []FollowUp {
	return []FollowUp{
		{FollowUpID: "overdue", FollowUpDate: day(-2), Status: FollowUpStatusPending},
		{FollowUpID: "due", FollowUpDate: day(0), Status: FollowUpStatusPending},
		{FollowUpID: "future", FollowUpDate: day(3), Status: FollowUpStatusPending},
		// Completed this morning in IST, which is still the previous day in UTC.
		{FollowUpID: "done-early", FollowUpDate: day(-5), Status: FollowUpStatusCompleted,
			CompletedAt: completedAt(time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC))},
		{FollowUpID: "done-due", FollowUpDate: day(0), Status: FollowUpStatusCompleted,
			CompletedAt: completedAt(time.Date(2025, 3, 8, 6, 0, 0, 0, time.UTC))},
		{FollowUpID: "deleted", FollowUpDate: day(-1), Status: FollowUpStatusPending, IsDeleted: true},
	}
}

func TestCalendarDate(t *testing.T) {
	late := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), CalendarDate(late, nil))
	assert.Equal(t, today, CalendarDate(late, ist))

	parsed, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, today, parsed)
	_, err = ParseDate("10-03-2025")
	assert.Error(t, err)
}

func TestComputeFollowUpStats(t *testing.T) {
	stats := ComputeFollowUpStats(followUpBoard(), today, ist)
	assert.Equal(t, FollowUpStats{
		Overdue:           1,
		DueToday:          1,
		CompletedToday:    1,
		DueTodayCompleted: 1,
		TotalPending:      3,
	}, stats)
}

func TestFilterFollowUps(t *testing.T) {
	ids := func(fs []FollowUp) []string {
		out := make([]string, 0, len(fs))
		for _, f := range fs {
			out = append(out, f.FollowUpID)
		}
		return out
	}
	board := followUpBoard()

	tests := []struct {
		view FollowUpView
		want []string
	}{
		{FollowUpViewAll, []string{"done-early", "overdue", "done-due", "due", "future"}},
		{FollowUpViewToday, []string{"overdue", "due"}},
		{FollowUpViewOverdue, []string{"overdue"}},
		{FollowUpViewDueToday, []string{"due"}},
		{FollowUpViewCompletedToday, []string{"done-early"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterFollowUps(board, tt.view, today, ist)))
		})
	}

	assert.False(t, FollowUpView("someday").IsValid())
}

func TestSortFollowUpsBreaksTiesByCreationThenID(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	fs := []FollowUp{
		{FollowUpID: "b", FollowUpDate: today, AuditFields: AuditFields{CreatedAt: t0}},
		{FollowUpID: "c", FollowUpDate: today, AuditFields: AuditFields{CreatedAt: t0.Add(-time.Hour)}},
		{FollowUpID: "a", FollowUpDate: today, AuditFields: AuditFields{CreatedAt: t0}},
	}
	SortFollowUps(fs)
	assert.Equal(t, "c", fs[0].FollowUpID)
	assert.Equal(t, "a", fs[1].FollowUpID)
	assert.Equal(t, "b", fs[2].FollowUpID)
}

func TestBuildTimeline(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f := FollowUp{FollowUpID: "f1", Notes: InitialFollowUpNotes, AgentName: "Asha", AuditFields: AuditFields{CreatedAt: created}}
	nodes := []FollowUpNode{
		{FollowUpNodeID: "n2", Body: "Site visit fixed", AgentName: "Ravi", FollowUpDateTime: created.Add(48 * time.Hour)},
		{FollowUpNodeID: "n1", Body: "Called, no answer", AgentName: "Asha", FollowUpDateTime: created.Add(2 * time.Hour)},
		{FollowUpNodeID: "n3", Body: "typo", FollowUpDateTime: created.Add(time.Hour), IsDeleted: true},
	}

	entries := BuildTimeline(f, nodes)
	require.Len(t, entries, 3)
	assert.Equal(t, TimelineFollowUpCreated, entries[0].Type)
	assert.Equal(t, InitialFollowUpNotes, entries[0].Body)
	assert.Equal(t, TimelineNoteAdded, entries[1].Type)
	assert.Equal(t, "Called, no answer", entries[1].Body)
	assert.Equal(t, "Site visit fixed", entries[2].Body)
	assert.Equal(t, "Ravi", entries[2].AgentName)
}
