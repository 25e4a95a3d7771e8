package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClient_NormalizesPAN(t *testing.T) {
	tests := []struct {
		name    string
		pan     string
		want    string
		wantErr error
	}{
		{"upper case", "ABCDE1234F", "ABCDE1234F", nil},
		{"lower case", "abcde1234f", "ABCDE1234F", nil},
		{"padded mixed case", "  AbCdE1234f ", "ABCDE1234F", nil},
		{"empty", "", "", nil},
		{"malformed", "abcd1234f", "", apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := clientRequest("Sunita Patil", "9000000002")
			req.PanNo = tt.pan

			client, err := f.clients.CreateClient(context.Background(), req, adminID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.PanNo)

			stored, err := f.clients.GetClientByID(context.Background(), client.ClientID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.PanNo)
		})
	}
}

func TestUpdateClient_AcceptsLowerCasePAN(t *testing.T) {
	f := newFixture(t)
	pan := "pqrst6789z"

	updated, err := f.clients.UpdateClient(context.Background(), f.clientID, dto.UpdateClientRequest{PanNo: &pan}, adminID)
	require.NoError(t, err)
	assert.Equal(t, "PQRST6789Z", updated.PanNo)
}
