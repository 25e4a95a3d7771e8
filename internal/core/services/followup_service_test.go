package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newEnquiry creates an enquiry for the fixture client and returns its
// automatically scheduled follow-up.
func newEnquiry(t *testing.T, f *fixture) domain.FollowUp {
	t.Helper()
	created, err := f.enquiries.CreateEnquiry(context.Background(), dto.CreateEnquiryRequest{
		ProjectID: f.projectID,
		ClientID:  f.clientID,
		Budget:    "50L",
	}, adminID)
	require.NoError(t, err)
	return created.FollowUp
}

func TestCompleteFollowUp_AppendsDefaultNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fu := newEnquiry(t, f)

	result, err := f.followUps.CompleteFollowUp(ctx, fu.FollowUpID, dto.CompleteFollowUpRequest{}, adminID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowUpStatusCompleted, result.Completed.Status)
	require.NotNil(t, result.Completed.CompletedAt)
	assert.Equal(t, domain.DefaultCompletionRemark, result.Node.Body)
	assert.Nil(t, result.Next)

	nodes, err := f.followUps.ListNodes(ctx, fu.FollowUpID)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, domain.DefaultCompletionRemark, nodes[0].Body)
	assert.Equal(t, "Asha Admin", nodes[0].AgentName)
}

func TestCompleteFollowUp_OnlyFromPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fu := newEnquiry(t, f)

	_, err := f.followUps.CompleteFollowUp(ctx, fu.FollowUpID, dto.CompleteFollowUpRequest{Remark: "Called, interested"}, adminID)
	require.NoError(t, err)

	_, err = f.followUps.CompleteFollowUp(ctx, fu.FollowUpID, dto.CompleteFollowUpRequest{Remark: "twice"}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := f.followUps.GetFollowUpByID(ctx, fu.FollowUpID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowUpStatusCompleted, stored.Status)

	nodes, err := f.followUps.ListNodes(ctx, fu.FollowUpID)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestCompleteFollowUp_SchedulesNext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fu := newEnquiry(t, f)

	past := "2025-03-01"
	_, err := f.followUps.CompleteFollowUp(ctx, fu.FollowUpID, dto.CompleteFollowUpRequest{NextFollowUpDate: &past}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	next := "2025-03-15"
	result, err := f.followUps.CompleteFollowUp(ctx, fu.FollowUpID, dto.CompleteFollowUpRequest{
		Remark:           "Wants a second visit",
		NextFollowUpDate: &next,
		NextNotes:        "Bring floor plan",
	}, adminID)
	require.NoError(t, err)
	require.NotNil(t, result.Next)
	assert.Equal(t, fu.EnquiryID, result.Next.EnquiryID)
	assert.Equal(t, domain.FollowUpStatusPending, result.Next.Status)
	assert.Equal(t, next, result.Next.FollowUpDate.Format(domain.DateLayout))
	assert.Equal(t, domain.DefaultFollowUpTime, result.Next.FollowUpTime)

	pending, err := f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{EnquiryID: fu.EnquiryID, Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, result.Next.FollowUpID, pending[0].FollowUpID)
}

func TestListFollowUps_OverdueAreStrictlyBeforeToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	late := newEnquiry(t, f)

	f.advance(domain.DefaultFollowUpIntervalDays)
	newEnquiry(t, f)

	// First follow-up is due today at this point, so nothing is overdue yet.
	overdue, err := f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{View: "overdue"})
	require.NoError(t, err)
	assert.Empty(t, overdue)

	f.advance(1)
	overdue, err = f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{View: "overdue"})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.FollowUpID, overdue[0].FollowUpID)

	today := domain.CalendarDate(f.now, nil)
	for _, fu := range overdue {
		assert.True(t, fu.FollowUpDate.Before(today))
		assert.Equal(t, domain.FollowUpStatusPending, fu.Status)
	}

	_, err = f.followUps.CompleteFollowUp(ctx, late.FollowUpID, dto.CompleteFollowUpRequest{}, adminID)
	require.NoError(t, err)
	overdue, err = f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{View: "overdue"})
	require.NoError(t, err)
	assert.Empty(t, overdue)

	stats, err := f.followUps.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Overdue)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 1, stats.TotalPending)

	_, err = f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{View: "tomorrow"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetTimeline_MergesCreationAndNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fu := newEnquiry(t, f)

	f.now = f.now.Add(2 * time.Hour)
	_, err := f.followUps.AddNote(ctx, fu.FollowUpID, "Left a voicemail", adminID)
	require.NoError(t, err)

	timeline, err := f.followUps.GetTimeline(ctx, fu.FollowUpID)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "Left a voicemail", timeline[1].Body)
	assert.True(t, timeline[0].Timestamp.Before(timeline[1].Timestamp))
}

func TestSendDueReminders_OncePerFollowUpPerDay(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg outbound.MailMessage) bool {
		return len(msg.To) == 1 && msg.To[0] == "asha@propease.test"
	})).Return(nil).Once()

	f := newFixture(t, withMailer(mailer))
	ctx := context.Background()
	fu := newEnquiry(t, f)

	sent, err := f.followUps.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent, "nothing is due on the day the enquiry is created")

	f.advance(domain.DefaultFollowUpIntervalDays)
	sent, err = f.followUps.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = f.followUps.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	notifications, err := f.repos.NotificationRepo.ListNotifications(ctx, adminID, 10, nil)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationEnquiryFollowUp, notifications[0].Type)
	assert.Equal(t, fu.FollowUpID, notifications[0].EntityID)
	assert.Contains(t, notifications[0].Message, "Ravi Kumar")

	mailer.AssertExpectations(t)
}

func TestCancelEnquiry_ClosesPendingFollowUps(t *testing.T) {
	mailer := new(MockMailer)
	f := newFixture(t, withMailer(mailer))
	ctx := context.Background()
	fu := newEnquiry(t, f)

	_, err := f.enquiries.CancelEnquiry(ctx, fu.EnquiryID, "Bought elsewhere", adminID)
	require.NoError(t, err)

	stored, err := f.followUps.GetFollowUpByID(ctx, fu.FollowUpID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowUpStatusCompleted, stored.Status)
	nodes, err := f.followUps.ListNodes(ctx, fu.FollowUpID)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Enquiry cancelled: Bought elsewhere", nodes[0].Body)

	f.advance(domain.DefaultFollowUpIntervalDays + 1)
	sent, err := f.followUps.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	overdue, err := f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{View: "overdue"})
	require.NoError(t, err)
	assert.Empty(t, overdue)
	stats, err := f.followUps.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPending)
	assert.Equal(t, 0, stats.Overdue)

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCompleteFollowUp_NoNextForCancelledEnquiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fu := newEnquiry(t, f)

	_, err := f.enquiries.CancelEnquiry(ctx, fu.EnquiryID, "Not interested", adminID)
	require.NoError(t, err)

	// A pending follow-up left over from before the cancellation.
	stale := fu
	stale.FollowUpID = "follow-up-stale"
	require.NoError(t, f.repos.FollowUpRepo.SaveFollowUp(ctx, stale))

	next := "2025-03-25"
	_, err = f.followUps.CompleteFollowUp(ctx, stale.FollowUpID, dto.CompleteFollowUpRequest{NextFollowUpDate: &next}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	pending, err := f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{EnquiryID: fu.EnquiryID, Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, stale.FollowUpID, pending[0].FollowUpID)

	// Closing without a next date is still allowed.
	result, err := f.followUps.CompleteFollowUp(ctx, stale.FollowUpID, dto.CompleteFollowUpRequest{}, adminID)
	require.NoError(t, err)
	assert.Nil(t, result.Next)
}
