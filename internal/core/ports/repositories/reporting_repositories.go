package repositories

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// EntityCounts are the non-deleted row counts shown on the dashboard.
type EntityCounts struct {
	Projects       int
	Clients        int
	Enquiries      int
	Bookings       int
	ActiveBookings int
}

// ReportingRepository provides aggregate reads for the dashboard.
type ReportingRepository interface {
	CountEntities(ctx context.Context) (EntityCounts, error)
	// UnitStatusCounts tallies flats per project and status.
	UnitStatusCounts(ctx context.Context) ([]domain.UnitStatusCount, error)
}
