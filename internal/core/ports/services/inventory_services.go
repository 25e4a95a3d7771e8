package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// WingSvc manages the wings of a project.
type WingSvc interface {
	AddWing(ctx context.Context, projectID string, req dto.CreateWingRequest, userID string) (*domain.Wing, error)
	ListWings(ctx context.Context, projectID string) ([]domain.Wing, error)
	UpdateWing(ctx context.Context, wingID string, req dto.UpdateWingRequest, userID string) (*domain.Wing, error)
	DeleteWing(ctx context.Context, wingID string, userID string) error
}

// FloorSvc manages floors. Adding a floor generates its flats.
type FloorSvc interface {
	AddFloor(ctx context.Context, wingID string, req dto.CreateFloorRequest, userID string) (*domain.Floor, []domain.Flat, error)
	ListFloors(ctx context.Context, wingID string) ([]domain.Floor, error)
	UpdateFloor(ctx context.Context, floorID string, req dto.UpdateFloorRequest, userID string) (*domain.Floor, error)
	DeleteFloor(ctx context.Context, floorID string, userID string) error
}

// FlatSvc manages flats. Status is never written through this interface.
type FlatSvc interface {
	GetFlat(ctx context.Context, propertyID string) (*domain.Flat, error)
	ListFlats(ctx context.Context, params dto.ListFlatsParams) ([]domain.Flat, error)
	UpdateFlat(ctx context.Context, propertyID string, req dto.UpdateFlatRequest, userID string) (*domain.Flat, error)
	DeleteFlat(ctx context.Context, propertyID string, userID string) error
	// PropertyOptions lists the vacant units of a project.
	PropertyOptions(ctx context.Context, projectID string) ([]domain.Flat, error)
}

// InventorySvcFacade combines wing, floor and flat services.
type InventorySvcFacade interface {
	WingSvc
	FloorSvc
	FlatSvc
}
