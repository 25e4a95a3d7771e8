package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftDeletedRecordsNeverListed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.clients.CreateClient(ctx, clientRequest("Nikhil Rao", "9000000001"), adminID)
	require.NoError(t, err)
	created, err := f.enquiries.CreateEnquiry(ctx, dto.CreateEnquiryRequest{
		ProjectID: f.projectID,
		ClientID:  f.clientID,
		Budget:    "52L",
	}, adminID)
	require.NoError(t, err)

	t.Run("clients", func(t *testing.T) {
		require.NoError(t, f.clients.DeleteClient(ctx, other.ClientID, adminID))
		clients, err := f.clients.ListClients(ctx, dto.ListClientsParams{})
		require.NoError(t, err)
		for _, c := range clients {
			assert.NotEqual(t, other.ClientID, c.ClientID)
		}
		_, err = f.clients.GetClientByID(ctx, other.ClientID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("enquiries", func(t *testing.T) {
		require.NoError(t, f.enquiries.DeleteEnquiry(ctx, created.Enquiry.EnquiryID, adminID))
		enquiries, err := f.enquiries.ListEnquiries(ctx, dto.ListEnquiriesParams{})
		require.NoError(t, err)
		assert.Empty(t, enquiries)
		profile, err := f.clients.GetClientProfile(ctx, f.clientID)
		require.NoError(t, err)
		assert.Empty(t, profile.Enquiries)
	})

	t.Run("flats", func(t *testing.T) {
		gone := f.flats[1]
		require.NoError(t, f.inventory.DeleteFlat(ctx, gone.PropertyID, adminID))
		flats, err := f.inventory.ListFlats(ctx, dto.ListFlatsParams{ProjectID: f.projectID})
		require.NoError(t, err)
		require.Len(t, flats, 1)
		assert.Equal(t, f.flats[0].PropertyID, flats[0].PropertyID)
		options, err := f.inventory.PropertyOptions(ctx, f.projectID)
		require.NoError(t, err)
		assert.Len(t, options, 1)
	})

	t.Run("amenities", func(t *testing.T) {
		amenity, err := f.details.AddAmenity(ctx, f.projectID, dto.CreateAmenityRequest{Name: "Gym"}, adminID)
		require.NoError(t, err)
		require.NoError(t, f.details.DeleteAmenity(ctx, amenity.AmenityID, adminID))
		amenities, err := f.details.ListAmenities(ctx, f.projectID)
		require.NoError(t, err)
		assert.Empty(t, amenities)
		assert.ErrorIs(t, f.details.DeleteAmenity(ctx, amenity.AmenityID, adminID), apperrors.ErrNotFound)
	})

	t.Run("bank details", func(t *testing.T) {
		bank, err := f.details.AddBankDetail(ctx, f.projectID, dto.CreateBankDetailRequest{
			BankName:      "HDFC Bank",
			BranchName:    "Baner",
			ContactPerson: "Meera",
			ContactNumber: "9123456780",
			IFSC:          "HDFC0001234",
		}, adminID)
		require.NoError(t, err)
		require.NoError(t, f.details.DeleteBankDetail(ctx, bank.BankDetailID, adminID))
		banks, err := f.details.ListBankDetails(ctx, f.projectID)
		require.NoError(t, err)
		assert.Empty(t, banks)
		assert.ErrorIs(t, f.details.DeleteBankDetail(ctx, bank.BankDetailID, adminID), apperrors.ErrNotFound)
	})

	t.Run("client with active booking is kept", func(t *testing.T) {
		f.book(t, f.flats[0].PropertyID)
		err := f.clients.DeleteClient(ctx, f.clientID, adminID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}
