package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/hashicorp/go-memdb"
)

// InventoryRepository stores wings, floors and flats in memdb.
type InventoryRepository struct {
	session
}

var _ portsrepo.InventoryRepositoryFacade = (*InventoryRepository)(nil)

func wingDeleted(w domain.Wing) bool   { return w.IsDeleted }
func floorDeleted(f domain.Floor) bool { return f.IsDeleted }
func flatDeleted(f domain.Flat) bool   { return f.IsDeleted }

func (r *InventoryRepository) FindWingByID(ctx context.Context, wingID string) (*domain.Wing, error) {
	var out *domain.Wing
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableWings, "wing", wingID, wingDeleted)
		return err
	})
	return out, err
}

func (r *InventoryRepository) ListWings(ctx context.Context, projectID string) ([]domain.Wing, error) {
	var out []domain.Wing
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableWings, indexProject, func(w domain.Wing) bool { return !w.IsDeleted }, projectID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].WingName < out[j].WingName })
	return out, err
}

func (r *InventoryRepository) FindFloorByID(ctx context.Context, floorID string) (*domain.Floor, error) {
	var out *domain.Floor
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableFloors, "floor", floorID, floorDeleted)
		return err
	})
	return out, err
}

func (r *InventoryRepository) ListFloors(ctx context.Context, wingID string) ([]domain.Floor, error) {
	var out []domain.Floor
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableFloors, indexWing, func(f domain.Floor) bool { return !f.IsDeleted }, wingID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].FloorNo < out[j].FloorNo })
	return out, err
}

func (r *InventoryRepository) FindFlatByID(ctx context.Context, propertyID string) (*domain.Flat, error) {
	var out *domain.Flat
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableFlats, "flat", propertyID, flatDeleted)
		return err
	})
	return out, err
}

// FindFlatForUpdate needs no row lock: memdb admits one writer at a time.
func (r *InventoryRepository) FindFlatForUpdate(ctx context.Context, propertyID string) (*domain.Flat, error) {
	return r.FindFlatByID(ctx, propertyID)
}

func (r *InventoryRepository) ListFlats(ctx context.Context, filter portsrepo.FlatFilter) ([]domain.Flat, error) {
	index, args := indexID, []any{}
	switch {
	case filter.FloorID != "":
		index, args = indexFloor, []any{filter.FloorID}
	case filter.WingID != "":
		index, args = indexWing, []any{filter.WingID}
	case filter.ProjectID != "":
		index, args = indexProject, []any{filter.ProjectID}
	}
	keep := func(f domain.Flat) bool {
		return !f.IsDeleted &&
			(filter.ProjectID == "" || f.ProjectID == filter.ProjectID) &&
			(filter.WingID == "" || f.WingID == filter.WingID) &&
			(filter.FloorID == "" || f.FloorID == filter.FloorID) &&
			(filter.Status == "" || f.Status == filter.Status)
	}
	var out []domain.Flat
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableFlats, index, keep, args...)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UnitNumber != out[j].UnitNumber {
			return out[i].UnitNumber < out[j].UnitNumber
		}
		return out[i].PropertyID < out[j].PropertyID
	})
	return out, err
}

func (r *InventoryRepository) SaveWing(ctx context.Context, wing domain.Wing) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableWings, wing) })
}

func (r *InventoryRepository) UpdateWing(ctx context.Context, wing domain.Wing) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableWings, "wing", wing.WingID, wingDeleted, wing)
	})
}

func (r *InventoryRepository) MarkWingDeleted(ctx context.Context, wingID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableWings, "wing", wingID, wingDeleted, func(w *domain.Wing) {
			markAudit(&w.IsDeleted, w.Touch, deletedBy, at)
		})
	})
}

func (r *InventoryRepository) SaveFloor(ctx context.Context, floor domain.Floor) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableFloors, floor) })
}

func (r *InventoryRepository) UpdateFloor(ctx context.Context, floor domain.Floor) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableFloors, "floor", floor.FloorID, floorDeleted, floor)
	})
}

func (r *InventoryRepository) MarkFloorDeleted(ctx context.Context, floorID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableFloors, "floor", floorID, floorDeleted, func(f *domain.Floor) {
			markAudit(&f.IsDeleted, f.Touch, deletedBy, at)
		})
	})
}

func (r *InventoryRepository) SaveFlats(ctx context.Context, flats []domain.Flat) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insertAll(txn, tableFlats, flats) })
}

// UpdateFlat keeps the stored status whatever the caller passes.
func (r *InventoryRepository) UpdateFlat(ctx context.Context, flat domain.Flat) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		current, err := findLive(txn, tableFlats, "flat", flat.PropertyID, flatDeleted)
		if err != nil {
			return err
		}
		flat.Status = current.Status
		return insert(txn, tableFlats, flat)
	})
}

func (r *InventoryRepository) MarkFlatDeleted(ctx context.Context, propertyID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableFlats, "flat", propertyID, flatDeleted, func(f *domain.Flat) {
			markAudit(&f.IsDeleted, f.Touch, deletedBy, at)
		})
	})
}

func (r *InventoryRepository) SetFlatStatus(ctx context.Context, propertyID string, status domain.UnitStatus, updatedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		flat, err := findLive(txn, tableFlats, "flat", propertyID, flatDeleted)
		if err != nil {
			return err
		}
		flat.Status = status
		flat.Touch(updatedBy, at)
		return insert(txn, tableFlats, *flat)
	})
}
