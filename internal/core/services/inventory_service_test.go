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

func TestAddFloor_GeneratesNumberedVacantFlats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	wings, err := f.inventory.ListWings(ctx, f.projectID)
	require.NoError(t, err)
	require.Len(t, wings, 1)

	floor, flats, err := f.inventory.AddFloor(ctx, wings[0].WingID, dto.CreateFloorRequest{
		FloorNo:   2,
		FloorName: "Second",
		Area:      decimal.NewFromInt(900),
		Quantity:  3,
		BHK:       "3BHK",
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, 3, floor.Quantity)
	require.Len(t, flats, 3)
	for i, want := range []string{"A-201", "A-202", "A-203"} {
		assert.Equal(t, want, flats[i].UnitNumber)
		assert.Equal(t, domain.UnitStatusVacant, flats[i].Status)
		assert.Equal(t, floor.FloorID, flats[i].FloorID)
	}

	_, _, err = f.inventory.AddFloor(ctx, wings[0].WingID, dto.CreateFloorRequest{FloorNo: 2, FloorName: "Again"}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	all, err := f.inventory.ListFlats(ctx, dto.ListFlatsParams{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestAddWing_RejectsDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inventory.AddWing(ctx, f.projectID, dto.CreateWingRequest{WingName: "a", NoOfFloors: 3, NoOfProperties: 12}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	wing, err := f.inventory.AddWing(ctx, f.projectID, dto.CreateWingRequest{WingName: "b", NoOfFloors: 3, NoOfProperties: 12}, adminID)
	require.NoError(t, err)
	assert.Equal(t, "B", wing.WingName)
}

func TestUpdateFlat_NeverChangesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]
	f.book(t, unit.PropertyID)

	bhk := "2.5BHK"
	updated, err := f.inventory.UpdateFlat(ctx, unit.PropertyID, dto.UpdateFlatRequest{BHK: &bhk}, adminID)
	require.NoError(t, err)
	assert.Equal(t, "2.5BHK", updated.BHK)
	assert.Equal(t, domain.UnitStatusBooked, f.flatStatus(t, unit.PropertyID))
}

func TestPropertyOptions_OnlyVacantUnits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, f.flats[0].PropertyID)

	options, err := f.inventory.PropertyOptions(ctx, f.projectID)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, f.flats[1].PropertyID, options[0].PropertyID)

	booked, err := f.inventory.ListFlats(ctx, dto.ListFlatsParams{Status: "BOOKED"})
	require.NoError(t, err)
	require.Len(t, booked, 1)

	_, err = f.inventory.ListFlats(ctx, dto.ListFlatsParams{Status: "SOLD"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteInventory_OccupiedUnitsAreConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]
	f.book(t, unit.PropertyID)

	assert.ErrorIs(t, f.inventory.DeleteFlat(ctx, unit.PropertyID, adminID), apperrors.ErrConflict)
	assert.ErrorIs(t, f.inventory.DeleteFloor(ctx, unit.FloorID, adminID), apperrors.ErrConflict)
	assert.ErrorIs(t, f.inventory.DeleteWing(ctx, unit.WingID, adminID), apperrors.ErrConflict)
}

func TestUpdateWing_RejectsDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	wing, err := f.inventory.AddWing(ctx, f.projectID, dto.CreateWingRequest{WingName: "B", NoOfFloors: 3, NoOfProperties: 12}, adminID)
	require.NoError(t, err)

	clash := "a"
	_, err = f.inventory.UpdateWing(ctx, wing.WingID, dto.UpdateWingRequest{WingName: &clash}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	same := "b"
	floors := 4
	updated, err := f.inventory.UpdateWing(ctx, wing.WingID, dto.UpdateWingRequest{WingName: &same, NoOfFloors: &floors}, adminID)
	require.NoError(t, err)
	assert.Equal(t, "B", updated.WingName)
	assert.Equal(t, 4, updated.NoOfFloors)
}

func TestDeleteWing_RemovesItsFloorsAndFlats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unit := f.flats[0]

	require.NoError(t, f.inventory.DeleteWing(ctx, unit.WingID, adminID))

	flats, err := f.inventory.ListFlats(ctx, dto.ListFlatsParams{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Empty(t, flats)
	floors, err := f.repos.InventoryRepo.ListFloors(ctx, unit.WingID)
	require.NoError(t, err)
	assert.Empty(t, floors)
	_, err = f.inventory.GetFlat(ctx, unit.PropertyID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.bookings.BookUnit(ctx, bookRequest(unit.PropertyID, f.clientID), adminID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
