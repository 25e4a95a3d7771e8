package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEnquiry_WithoutClientIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID: f.projectID,
		Budget:    "60L",
	}, adminID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	all, err := f.enquiries.ListEnquiries(ctx, dto.ListEnquiriesParams{})
	require.NoError(t, err)
	assert.Empty(t, all)

	followUps, err := f.followUps.ListFollowUps(ctx, dto.ListFollowUpsParams{})
	require.NoError(t, err)
	assert.Empty(t, followUps)
}

func TestCreateEnquiry_NewClientSchedulesFollowUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	newClient := clientRequest("Sameer Patil", "9988776655")

	created, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID:       f.projectID,
		CreateNewClient: true,
		NewClient:       &newClient,
		PropertyID:      f.flats[1].PropertyID,
		Budget:          "48L",
		Reference:       "Walk-in",
		Remark:          "Prefers east facing",
	}, adminID)
	require.NoError(t, err)

	require.NotNil(t, created.NewClient)
	assert.Equal(t, created.NewClient.ClientID, created.Enquiry.ClientID)
	assert.Equal(t, domain.EnquiryStatusOngoing, created.Enquiry.Status)

	fu := created.FollowUp
	assert.Equal(t, created.Enquiry.EnquiryID, fu.EnquiryID)
	assert.Equal(t, domain.FollowUpStatusPending, fu.Status)
	assert.Equal(t, domain.CalendarDate(testNow, nil).AddDate(0, 0, domain.DefaultFollowUpIntervalDays), fu.FollowUpDate)
	assert.Equal(t, domain.DefaultFollowUpTime, fu.FollowUpTime)
	assert.Equal(t, "Asha Admin", fu.AgentName)
	assert.Equal(t, adminID, fu.AgentID)

	remarks, err := f.enquiries.ListRemarks(ctx, created.Enquiry.EnquiryID)
	require.NoError(t, err)
	require.Len(t, remarks, 1)
	assert.Equal(t, "Prefers east facing", remarks[0].Body)
	assert.Equal(t, "Asha Admin", remarks[0].AuthorName)
}

func TestCreateEnquiry_PropertyMustBelongToProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.projects.CreateProject(ctx, dto.CreateProjectRequest{
		ProjectName: "River View",
		MahareraNo:  "P52100099999",
	}, adminID)
	require.NoError(t, err)

	_, err = f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID:  other.ProjectID,
		ClientID:   f.clientID,
		PropertyID: f.flats[0].PropertyID,
		Budget:     "50L",
	}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEnquiryRemarks_AreAnOrderedLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID: f.projectID,
		ClientID:  f.clientID,
		Budget:    "50L",
	}, adminID)
	require.NoError(t, err)
	id := created.Enquiry.EnquiryID

	_, err = f.enquiries.AddRemark(ctx, id, "Site visit on Sunday", adminID)
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	_, err = f.enquiries.AddRemark(ctx, id, "Asked for a discount", adminID)
	require.NoError(t, err)

	_, err = f.enquiries.AddRemark(ctx, id, "  ", adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	remarks, err := f.enquiries.ListRemarks(ctx, id)
	require.NoError(t, err)
	require.Len(t, remarks, 2)
	assert.Equal(t, "Site visit on Sunday", remarks[0].Body)
	assert.Equal(t, "Asked for a discount", remarks[1].Body)
}

func TestCancelEnquiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID: f.projectID,
		ClientID:  f.clientID,
		Budget:    "50L",
	}, adminID)
	require.NoError(t, err)
	id := created.Enquiry.EnquiryID

	_, err = f.enquiries.CancelEnquiry(ctx, id, "", adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	cancelled, err := f.enquiries.CancelEnquiry(ctx, id, "Bought elsewhere", adminID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryStatusCancelled, cancelled.Status)

	_, err = f.enquiries.CancelEnquiry(ctx, id, "again", adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.followUps.CreateFollowUp(ctx, dto.CreateFollowUpRequest{
		EnquiryID:    id,
		FollowUpDate: "2025-03-20",
	}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	req := bookRequest(f.flats[0].PropertyID, f.clientID)
	req.EnquiryID = &id
	_, err = f.bookings.BookUnit(ctx, req, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, domain.UnitStatusVacant, f.flatStatus(t, f.flats[0].PropertyID))
}

func TestListEnquiries_FiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
			ProjectID: f.projectID,
			ClientID:  f.clientID,
			Budget:    "50L",
		}, adminID)
		require.NoError(t, err)
	}
	all, err := f.enquiries.ListEnquiries(ctx, dto.ListEnquiriesParams{ProjectID: f.projectID})
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = f.enquiries.CancelEnquiry(ctx, all[0].EnquiryID, "not interested", adminID)
	require.NoError(t, err)

	ongoing, err := f.enquiries.ListEnquiries(ctx, dto.ListEnquiriesParams{Status: string(domain.EnquiryStatusOngoing)})
	require.NoError(t, err)
	assert.Len(t, ongoing, 1)

	_, err = f.enquiries.ListEnquiries(ctx, dto.ListEnquiriesParams{Status: "LOST"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateEnquiry_CannotCancelWithoutRemark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID: f.projectID,
		ClientID:  f.clientID,
		Budget:    "50L",
	}, adminID)
	require.NoError(t, err)

	status := string(domain.EnquiryStatusCancelled)
	_, err = f.enquiries.UpdateEnquiry(ctx, created.Enquiry.EnquiryID, dto.UpdateEnquiryRequest{Status: &status}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	stored, err := f.enquiries.GetEnquiryByID(ctx, created.Enquiry.EnquiryID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryStatusOngoing, stored.Status)
}
