package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// FlatFilter narrows ListFlats. Zero values mean "any".
type FlatFilter struct {
	ProjectID string
	WingID    string
	FloorID   string
	Status    domain.UnitStatus
}

// InventoryReader defines read operations for wings, floors and flats.
type InventoryReader interface {
	FindWingByID(ctx context.Context, wingID string) (*domain.Wing, error)
	ListWings(ctx context.Context, projectID string) ([]domain.Wing, error)
	FindFloorByID(ctx context.Context, floorID string) (*domain.Floor, error)
	ListFloors(ctx context.Context, wingID string) ([]domain.Floor, error)
	FindFlatByID(ctx context.Context, propertyID string) (*domain.Flat, error)
	// ListFlats returns non-deleted flats ordered by unit number.
	ListFlats(ctx context.Context, filter FlatFilter) ([]domain.Flat, error)
}

// InventoryWriter defines write operations for wings, floors and flats.
type InventoryWriter interface {
	SaveWing(ctx context.Context, wing domain.Wing) error
	UpdateWing(ctx context.Context, wing domain.Wing) error
	MarkWingDeleted(ctx context.Context, wingID string, deletedBy string, at time.Time) error
	SaveFloor(ctx context.Context, floor domain.Floor) error
	UpdateFloor(ctx context.Context, floor domain.Floor) error
	MarkFloorDeleted(ctx context.Context, floorID string, deletedBy string, at time.Time) error
	SaveFlats(ctx context.Context, flats []domain.Flat) error
	// UpdateFlat persists descriptive fields. It never changes Status.
	UpdateFlat(ctx context.Context, flat domain.Flat) error
	MarkFlatDeleted(ctx context.Context, propertyID string, deletedBy string, at time.Time) error
}

// UnitStatusWriter supports the booking workflow.
type UnitStatusWriter interface {
	// FindFlatForUpdate reads a flat and, where the store supports row locks,
	// holds the lock until the surrounding transaction ends.
	FindFlatForUpdate(ctx context.Context, propertyID string) (*domain.Flat, error)

	// SetFlatStatus stores the status derived from the unit's bookings.
	SetFlatStatus(ctx context.Context, propertyID string, status domain.UnitStatus, updatedBy string, at time.Time) error
}

// InventoryRepositoryFacade combines all inventory repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
	UnitStatusWriter
}
