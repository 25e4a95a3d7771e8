package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProject_WritesWholeHierarchy(t *testing.T) {
	f := newFixture(t)

	details, err := f.projects.GetProjectDetails(context.Background(), f.projectID)
	require.NoError(t, err)
	assert.Equal(t, "Green Heights", details.Project.ProjectName)
	assert.Equal(t, domain.ProjectStatusUpcoming, details.Project.Status)
	assert.Len(t, details.Wings, 1)
	assert.Len(t, details.Floors, 1)
	assert.Len(t, details.Disbursements, 2)

	require.Len(t, details.Flats, 2)
	units := []string{f.flats[0].UnitNumber, f.flats[1].UnitNumber}
	assert.Equal(t, []string{"A-101", "A-102"}, units)
	for _, flat := range details.Flats {
		assert.Equal(t, domain.UnitStatusVacant, flat.Status)
		assert.Equal(t, "2BHK", flat.BHK)
	}
}

func TestRegisterProject_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegisterProjectRequest)
	}{
		{"schedule below 100", func(r *dto.RegisterProjectRequest) {
			r.Disbursements[1].Percentage = decimal.NewFromInt(80)
		}},
		{"schedule above 100", func(r *dto.RegisterProjectRequest) {
			r.Disbursements[1].Percentage = decimal.NewFromInt(95)
		}},
		{"bad RERA number", func(r *dto.RegisterProjectRequest) {
			r.Project.MahareraNo = "12345"
		}},
		{"duplicate wing", func(r *dto.RegisterProjectRequest) {
			r.Wings = append(r.Wings, r.Wings[0])
		}},
		{"duplicate floor in a wing", func(r *dto.RegisterProjectRequest) {
			r.Wings[0].Floors = append(r.Wings[0].Floors, r.Wings[0].Floors[0])
		}},
		{"too many flats on a floor", func(r *dto.RegisterProjectRequest) {
			r.Wings[0].Floors[0].Quantity = 101
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := registerRequest()
			req.Project.ProjectName = "Second Project"
			tt.mutate(&req)

			_, err := f.projects.RegisterProject(context.Background(), req, adminID)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			projects, err := f.projects.ListProjects(context.Background(), dto.ListProjectsParams{})
			require.NoError(t, err)
			assert.Len(t, projects, 1)
		})
	}
}

func TestDeleteProject_WithActiveBookingIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, f.flats[0].PropertyID)

	err := f.projects.DeleteProject(ctx, f.projectID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.bookings.CancelBooking(ctx, f.flats[0].PropertyID, dto.CancelBookingRequest{Reason: "buyer withdrew"}, adminID)
	require.NoError(t, err)
	require.NoError(t, f.projects.DeleteProject(ctx, f.projectID, adminID))

	projects, err := f.projects.ListProjects(ctx, dto.ListProjectsParams{})
	require.NoError(t, err)
	assert.Empty(t, projects)
	_, err = f.projects.GetProjectByID(ctx, f.projectID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegisterProject_SameFloorNoInDifferentWings(t *testing.T) {
	f := newFixture(t)
	req := registerRequest()
	req.Project.ProjectName = "Twin Towers"
	req.Project.MahareraNo = "P52100099999"
	second := req.Wings[0]
	second.WingName = "B"
	req.Wings = append(req.Wings, second)

	details, err := f.projects.RegisterProject(context.Background(), req, adminID)
	require.NoError(t, err)
	units := make([]string, 0, len(details.Flats))
	for _, flat := range details.Flats {
		units = append(units, flat.UnitNumber)
	}
	assert.ElementsMatch(t, []string{"A-101", "A-102", "B-101", "B-102"}, units)
}

func TestDeleteProject_HidesAndLocksItsUnits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.projects.DeleteProject(ctx, f.projectID, adminID))

	flats, err := f.inventory.ListFlats(ctx, dto.ListFlatsParams{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Empty(t, flats)
	all, err := f.inventory.ListFlats(ctx, dto.ListFlatsParams{})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = f.bookings.BookUnit(ctx, bookRequest(f.flats[0].PropertyID, f.clientID), adminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.bookings.RegisterUnit(ctx, f.flats[1].PropertyID, dto.RegisterUnitRequest{}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDisbursementSchedule_CannotExceedHundred(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.details.AddDisbursement(ctx, f.projectID, dto.CreateDisbursementRequest{
		DisbursementTitle: "Extra",
		Percentage:        decimal.NewFromInt(5),
	}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	stages, err := f.details.ListDisbursements(ctx, f.projectID)
	require.NoError(t, err)
	require.Len(t, stages, 2)

	require.NoError(t, f.details.DeleteDisbursement(ctx, stages[0].DisbursementID, adminID))
	added, err := f.details.AddDisbursement(ctx, f.projectID, dto.CreateDisbursementRequest{
		DisbursementTitle: "Plinth",
		Percentage:        stages[0].Percentage,
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, "Plinth", added.DisbursementTitle)
}
