package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/google/uuid"
)

const maxFlatsPerFloor = 100

// inventoryService implements the InventorySvcFacade interface
type inventoryService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewInventoryService creates a new inventory service with the provided options
func NewInventoryService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.InventorySvcFacade {
	return &inventoryService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func buildWing(projectID string, req dto.CreateWingRequest, userID string, now time.Time) (domain.Wing, error) {
	name := strings.ToUpper(strings.TrimSpace(req.WingName))
	if name == "" {
		return domain.Wing{}, apperrors.Validationf("wingName is required")
	}
	if req.NoOfFloors < 1 || req.NoOfProperties < 1 {
		return domain.Wing{}, apperrors.Validationf("noOfFloors and noOfProperties must be at least 1")
	}
	return domain.Wing{
		WingID:         uuid.NewString(),
		ProjectID:      projectID,
		WingName:       name,
		NoOfFloors:     req.NoOfFloors,
		NoOfProperties: req.NoOfProperties,
		AuditFields:    domain.NewAuditFields(userID, now),
	}, nil
}

// buildFloor creates a floor of wing and its Quantity vacant flats numbered
// with domain.UnitNumber.
func buildFloor(wing domain.Wing, req dto.CreateFloorRequest, userID string, now time.Time) (domain.Floor, []domain.Flat, error) {
	name := strings.TrimSpace(req.FloorName)
	if name == "" {
		return domain.Floor{}, nil, apperrors.Validationf("floorName is required")
	}
	if req.FloorNo < 0 {
		return domain.Floor{}, nil, apperrors.Validationf("floorNo cannot be negative")
	}
	if req.Quantity < 0 || req.Quantity > maxFlatsPerFloor {
		return domain.Floor{}, nil, apperrors.Validationf("quantity must be between 0 and %d", maxFlatsPerFloor)
	}
	if req.Area.IsNegative() {
		return domain.Floor{}, nil, apperrors.Validationf("area cannot be negative")
	}

	audit := domain.NewAuditFields(userID, now)
	floor := domain.Floor{
		FloorID:      uuid.NewString(),
		ProjectID:    wing.ProjectID,
		WingID:       wing.WingID,
		FloorNo:      req.FloorNo,
		FloorName:    name,
		PropertyType: strings.TrimSpace(req.PropertyType),
		Area:         req.Area,
		Quantity:     req.Quantity,
		AuditFields:  audit,
	}
	flats := make([]domain.Flat, 0, req.Quantity)
	for n := 1; n <= req.Quantity; n++ {
		flats = append(flats, domain.Flat{
			PropertyID:  uuid.NewString(),
			ProjectID:   wing.ProjectID,
			WingID:      wing.WingID,
			FloorID:     floor.FloorID,
			UnitNumber:  domain.UnitNumber(wing.WingName, req.FloorNo, n),
			Status:      domain.UnitStatusVacant,
			Area:        req.Area,
			BHK:         strings.TrimSpace(req.BHK),
			AuditFields: audit,
		})
	}
	return floor, flats, nil
}

// --- Wings ---

func (s *inventoryService) AddWing(ctx context.Context, projectID string, req dto.CreateWingRequest, userID string) (*domain.Wing, error) {
	wing, err := buildWing(projectID, req, userID, s.now())
	if err != nil {
		return nil, err
	}
	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if _, err := tx.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
			return err
		}
		existing, err := tx.InventoryRepo.ListWings(ctx, projectID)
		if err != nil {
			return err
		}
		for _, w := range existing {
			if strings.EqualFold(w.WingName, wing.WingName) {
				return apperrors.Conflictf("wing %s already exists in this project", wing.WingName)
			}
		}
		return tx.InventoryRepo.SaveWing(ctx, wing)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add wing", slog.String("project_id", projectID))
		return nil, err
	}
	s.afterCommit(ctx)
	return &wing, nil
}

func (s *inventoryService) ListWings(ctx context.Context, projectID string) ([]domain.Wing, error) {
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.InventoryRepo.ListWings(ctx, projectID)
}

func (s *inventoryService) UpdateWing(ctx context.Context, wingID string, req dto.UpdateWingRequest, userID string) (*domain.Wing, error) {
	var wing *domain.Wing
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		var err error
		if wing, err = tx.InventoryRepo.FindWingByID(ctx, wingID); err != nil {
			return err
		}
		if req.WingName != nil {
			name := strings.ToUpper(strings.TrimSpace(*req.WingName))
			if name == "" {
				return apperrors.Validationf("wingName cannot be empty")
			}
			siblings, err := tx.InventoryRepo.ListWings(ctx, wing.ProjectID)
			if err != nil {
				return err
			}
			for _, w := range siblings {
				if w.WingID != wingID && strings.EqualFold(w.WingName, name) {
					return apperrors.Conflictf("wing %s already exists in this project", name)
				}
			}
			wing.WingName = name
		}
		if req.NoOfFloors != nil {
			if *req.NoOfFloors < 1 {
				return apperrors.Validationf("noOfFloors must be at least 1")
			}
			wing.NoOfFloors = *req.NoOfFloors
		}
		if req.NoOfProperties != nil {
			if *req.NoOfProperties < 1 {
				return apperrors.Validationf("noOfProperties must be at least 1")
			}
			wing.NoOfProperties = *req.NoOfProperties
		}
		wing.Touch(userID, s.now())
		return tx.InventoryRepo.UpdateWing(ctx, *wing)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update wing", slog.String("wing_id", wingID))
		return nil, err
	}
	s.afterCommit(ctx)
	return wing, nil
}

func (s *inventoryService) DeleteWing(ctx context.Context, wingID string, userID string) error {
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		flats, err := tx.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{WingID: wingID})
		if err != nil {
			return err
		}
		if err := requireAllVacant(flats); err != nil {
			return err
		}
		floors, err := tx.InventoryRepo.ListFloors(ctx, wingID)
		if err != nil {
			return err
		}
		now := s.now()
		if err := deleteFlatsAndFloors(ctx, tx, flats, floors, userID, now); err != nil {
			return err
		}
		return tx.InventoryRepo.MarkWingDeleted(ctx, wingID, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete wing", slog.String("wing_id", wingID))
		return err
	}
	s.afterCommit(ctx)
	return nil
}

// --- Floors ---

func (s *inventoryService) AddFloor(ctx context.Context, wingID string, req dto.CreateFloorRequest, userID string) (*domain.Floor, []domain.Flat, error) {
	var (
		floor domain.Floor
		flats []domain.Flat
	)
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		wing, err := tx.InventoryRepo.FindWingByID(ctx, wingID)
		if err != nil {
			return err
		}
		existing, err := tx.InventoryRepo.ListFloors(ctx, wingID)
		if err != nil {
			return err
		}
		for _, f := range existing {
			if f.FloorNo == req.FloorNo {
				return apperrors.Conflictf("floor %d already exists in wing %s", req.FloorNo, wing.WingName)
			}
		}

		floor, flats, err = buildFloor(*wing, req, userID, s.now())
		if err != nil {
			return err
		}
		if err := tx.InventoryRepo.SaveFloor(ctx, floor); err != nil {
			return err
		}
		if len(flats) == 0 {
			return nil
		}
		return tx.InventoryRepo.SaveFlats(ctx, flats)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add floor", slog.String("wing_id", wingID))
		return nil, nil, err
	}
	s.afterCommit(ctx)

	s.LogInfo(ctx, "Floor added",
		slog.String("floor_id", floor.FloorID),
		slog.Int("flats", len(flats)))
	return &floor, flats, nil
}

func (s *inventoryService) ListFloors(ctx context.Context, wingID string) ([]domain.Floor, error) {
	if _, err := s.repos.InventoryRepo.FindWingByID(ctx, wingID); err != nil {
		return nil, err
	}
	return s.repos.InventoryRepo.ListFloors(ctx, wingID)
}

func (s *inventoryService) UpdateFloor(ctx context.Context, floorID string, req dto.UpdateFloorRequest, userID string) (*domain.Floor, error) {
	floor, err := s.repos.InventoryRepo.FindFloorByID(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if req.FloorName != nil {
		name := strings.TrimSpace(*req.FloorName)
		if name == "" {
			return nil, apperrors.Validationf("floorName cannot be empty")
		}
		floor.FloorName = name
	}
	if req.PropertyType != nil {
		floor.PropertyType = strings.TrimSpace(*req.PropertyType)
	}
	if req.Area != nil {
		if req.Area.IsNegative() {
			return nil, apperrors.Validationf("area cannot be negative")
		}
		floor.Area = *req.Area
	}
	floor.Touch(userID, s.now())
	if err := s.repos.InventoryRepo.UpdateFloor(ctx, *floor); err != nil {
		s.LogError(ctx, err, "Failed to update floor", slog.String("floor_id", floorID))
		return nil, err
	}
	return floor, nil
}

func (s *inventoryService) DeleteFloor(ctx context.Context, floorID string, userID string) error {
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		flats, err := tx.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{FloorID: floorID})
		if err != nil {
			return err
		}
		if err := requireAllVacant(flats); err != nil {
			return err
		}
		now := s.now()
		if err := deleteFlatsAndFloors(ctx, tx, flats, nil, userID, now); err != nil {
			return err
		}
		return tx.InventoryRepo.MarkFloorDeleted(ctx, floorID, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete floor", slog.String("floor_id", floorID))
		return err
	}
	s.afterCommit(ctx)
	return nil
}

// --- Flats ---

// deleteFlatsAndFloors soft-deletes the given flats and floors so nothing
// below a deleted wing, floor or project stays listable or bookable.
func deleteFlatsAndFloors(ctx context.Context, tx portsrepo.Repositories, flats []domain.Flat, floors []domain.Floor, userID string, at time.Time) error {
	for _, flat := range flats {
		if err := tx.InventoryRepo.MarkFlatDeleted(ctx, flat.PropertyID, userID, at); err != nil {
			return err
		}
	}
	for _, floor := range floors {
		if err := tx.InventoryRepo.MarkFloorDeleted(ctx, floor.FloorID, userID, at); err != nil {
			return err
		}
	}
	return nil
}

func requireAllVacant(flats []domain.Flat) error {
	for _, f := range flats {
		if f.Status != domain.UnitStatusVacant {
			return apperrors.Conflictf("unit %s is %s", f.UnitNumber, f.Status)
		}
	}
	return nil
}

func (s *inventoryService) GetFlat(ctx context.Context, propertyID string) (*domain.Flat, error) {
	return s.repos.InventoryRepo.FindFlatByID(ctx, propertyID)
}

func (s *inventoryService) ListFlats(ctx context.Context, params dto.ListFlatsParams) ([]domain.Flat, error) {
	status := domain.UnitStatus(params.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.Validationf("unknown unit status %q", params.Status)
	}
	return s.repos.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{
		ProjectID: params.ProjectID,
		WingID:    params.WingID,
		FloorID:   params.FloorID,
		Status:    status,
	})
}

func (s *inventoryService) PropertyOptions(ctx context.Context, projectID string) ([]domain.Flat, error) {
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{
		ProjectID: projectID,
		Status:    domain.UnitStatusVacant,
	})
}

func (s *inventoryService) UpdateFlat(ctx context.Context, propertyID string, req dto.UpdateFlatRequest, userID string) (*domain.Flat, error) {
	flat, err := s.repos.InventoryRepo.FindFlatByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if req.UnitNumber != nil {
		unit := strings.TrimSpace(*req.UnitNumber)
		if unit == "" {
			return nil, apperrors.Validationf("unitNumber cannot be empty")
		}
		flat.UnitNumber = unit
	}
	if req.Area != nil {
		if req.Area.IsNegative() {
			return nil, apperrors.Validationf("area cannot be negative")
		}
		flat.Area = *req.Area
	}
	if req.BHK != nil {
		flat.BHK = strings.TrimSpace(*req.BHK)
	}
	flat.Touch(userID, s.now())
	if err := s.repos.InventoryRepo.UpdateFlat(ctx, *flat); err != nil {
		s.LogError(ctx, err, "Failed to update flat", slog.String("property_id", propertyID))
		return nil, err
	}
	return flat, nil
}

func (s *inventoryService) DeleteFlat(ctx context.Context, propertyID string, userID string) error {
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		flat, bookings, err := lockUnit(ctx, tx, propertyID)
		if err != nil {
			return err
		}
		if status := domain.DeriveUnitStatus(bookings); status != domain.UnitStatusVacant {
			return apperrors.Conflictf("unit %s is %s", flat.UnitNumber, status)
		}
		return tx.InventoryRepo.MarkFlatDeleted(ctx, propertyID, userID, s.now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete flat", slog.String("property_id", propertyID))
		return err
	}
	s.afterCommit(ctx)
	return nil
}
