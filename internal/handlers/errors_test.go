package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperrors.Validationf("Cancellation reason is required"), http.StatusBadRequest, "Cancellation reason is required"},
		{"wrapped validation", fmt.Errorf("book unit: %w", apperrors.Validationf("Booking amount must be positive")), http.StatusBadRequest, "Booking amount must be positive"},
		{"bare not found", apperrors.ErrNotFound, http.StatusNotFound, "resource not found"},
		{"conflict", apperrors.Conflictf("Follow-up is already completed"), http.StatusConflict, "Follow-up is already completed"},
		{"duplicate", fmt.Errorf("%w: username taken", apperrors.ErrDuplicate), http.StatusConflict, "username taken"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"app error", apperrors.NewAppError(http.StatusBadGateway, "Google is unavailable", errors.New("dial tcp")), http.StatusBadGateway, "Google is unavailable"},
		{"unknown", errors.New("pgx: connection refused"), http.StatusInternalServerError, "Failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusAndMessage(tt.err, "Failed")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
