package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxInventoryRepository stores wings, floors and flats.
type PgxInventoryRepository struct {
	BaseRepository
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const (
	wingColumns  = `wing_id, project_id, wing_name, no_of_floors, no_of_properties, ` + auditColumns
	floorColumns = `floor_id, project_id, wing_id, floor_no, floor_name, property_type, area, quantity, ` + auditColumns
	flatColumns  = `property_id, project_id, wing_id, floor_id, unit_number, status, area, bhk, ` + auditColumns
)

func (r *PgxInventoryRepository) FindWingByID(ctx context.Context, wingID string) (*domain.Wing, error) {
	query := `SELECT ` + wingColumns + ` FROM wings WHERE wing_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Wing](ctx, r.db, query, wingID)
	if err != nil {
		return nil, wrapFind(err, "wing", wingID)
	}
	w := mapping.ToDomainWing(m)
	return &w, nil
}

func (r *PgxInventoryRepository) ListWings(ctx context.Context, projectID string) ([]domain.Wing, error) {
	query := `SELECT ` + wingColumns + ` FROM wings WHERE project_id = $1 AND NOT is_deleted ORDER BY wing_name, wing_id;`
	ms, err := collectAll[models.Wing](ctx, r.db, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wings: %w", err)
	}
	return mapping.ToDomainWingSlice(ms), nil
}

func (r *PgxInventoryRepository) FindFloorByID(ctx context.Context, floorID string) (*domain.Floor, error) {
	query := `SELECT ` + floorColumns + ` FROM floors WHERE floor_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Floor](ctx, r.db, query, floorID)
	if err != nil {
		return nil, wrapFind(err, "floor", floorID)
	}
	f := mapping.ToDomainFloor(m)
	return &f, nil
}

func (r *PgxInventoryRepository) ListFloors(ctx context.Context, wingID string) ([]domain.Floor, error) {
	query := `SELECT ` + floorColumns + ` FROM floors WHERE wing_id = $1 AND NOT is_deleted ORDER BY floor_no, floor_id;`
	ms, err := collectAll[models.Floor](ctx, r.db, query, wingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query floors: %w", err)
	}
	return mapping.ToDomainFloorSlice(ms), nil
}

func (r *PgxInventoryRepository) FindFlatByID(ctx context.Context, propertyID string) (*domain.Flat, error) {
	query := `SELECT ` + flatColumns + ` FROM flats WHERE property_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Flat](ctx, r.db, query, propertyID)
	if err != nil {
		return nil, wrapFind(err, "flat", propertyID)
	}
	f := mapping.ToDomainFlat(m)
	return &f, nil
}

// FindFlatForUpdate locks the flat row until the surrounding transaction ends.
// Outside a transaction the lock is released immediately.
func (r *PgxInventoryRepository) FindFlatForUpdate(ctx context.Context, propertyID string) (*domain.Flat, error) {
	query := `SELECT ` + flatColumns + ` FROM flats WHERE property_id = $1 AND NOT is_deleted FOR UPDATE;`
	m, err := collectOne[models.Flat](ctx, r.db, query, propertyID)
	if err != nil {
		return nil, wrapFind(err, "flat", propertyID)
	}
	f := mapping.ToDomainFlat(m)
	return &f, nil
}

func (r *PgxInventoryRepository) ListFlats(ctx context.Context, filter portsrepo.FlatFilter) ([]domain.Flat, error) {
	query := `
		SELECT ` + flatColumns + ` FROM flats
		WHERE NOT is_deleted
			AND ($1 = '' OR project_id = $1)
			AND ($2 = '' OR wing_id = $2)
			AND ($3 = '' OR floor_id = $3)
			AND ($4 = '' OR status = $4)
		ORDER BY unit_number, property_id;`
	ms, err := collectAll[models.Flat](ctx, r.db, query, filter.ProjectID, filter.WingID, filter.FloorID, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to query flats: %w", err)
	}
	return mapping.ToDomainFlatSlice(ms), nil
}

func (r *PgxInventoryRepository) SaveWing(ctx context.Context, wing domain.Wing) error {
	m := mapping.ToModelWing(wing)
	query := `INSERT INTO wings (` + wingColumns + `) VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7, $8, $9);`
	if _, err := r.db.Exec(ctx, query, m.WingID, m.ProjectID, m.WingName, m.NoOfFloors, m.NoOfProperties,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "wing")
	}
	return nil
}

func (r *PgxInventoryRepository) UpdateWing(ctx context.Context, wing domain.Wing) error {
	m := mapping.ToModelWing(wing)
	query := `UPDATE wings SET wing_name = $2, no_of_floors = $3, no_of_properties = $4, last_updated_at = $5, last_updated_by = $6
		WHERE wing_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "wing", query, m.WingID, m.WingName, m.NoOfFloors, m.NoOfProperties, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxInventoryRepository) MarkWingDeleted(ctx context.Context, wingID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "wings", "wing_id", wingID, deletedBy, at)
}

func (r *PgxInventoryRepository) SaveFloor(ctx context.Context, floor domain.Floor) error {
	m := mapping.ToModelFloor(floor)
	query := `INSERT INTO floors (` + floorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12);`
	if _, err := r.db.Exec(ctx, query, m.FloorID, m.ProjectID, m.WingID, m.FloorNo, m.FloorName, m.PropertyType,
		m.Area, m.Quantity, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "floor")
	}
	return nil
}

func (r *PgxInventoryRepository) UpdateFloor(ctx context.Context, floor domain.Floor) error {
	m := mapping.ToModelFloor(floor)
	query := `UPDATE floors SET floor_name = $2, property_type = $3, area = $4, last_updated_at = $5, last_updated_by = $6
		WHERE floor_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "floor", query, m.FloorID, m.FloorName, m.PropertyType, m.Area, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxInventoryRepository) MarkFloorDeleted(ctx context.Context, floorID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "floors", "floor_id", floorID, deletedBy, at)
}

// SaveFlats inserts the generated flats of a floor in one round trip.
func (r *PgxInventoryRepository) SaveFlats(ctx context.Context, flats []domain.Flat) error {
	if len(flats) == 0 {
		return nil
	}
	query := `INSERT INTO flats (` + flatColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12);`
	batch := &pgx.Batch{}
	for _, f := range flats {
		m := mapping.ToModelFlat(f)
		batch.Queue(query, m.PropertyID, m.ProjectID, m.WingID, m.FloorID, m.UnitNumber, m.Status, m.Area, m.BHK,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	}
	br := sendBatch(ctx, r.db, batch)
	if br == nil {
		// The querier cannot batch; fall back to one statement per flat.
		for _, f := range flats {
			m := mapping.ToModelFlat(f)
			if _, err := r.db.Exec(ctx, query, m.PropertyID, m.ProjectID, m.WingID, m.FloorID, m.UnitNumber, m.Status,
				m.Area, m.BHK, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
				return mapWriteError(err, "flat")
			}
		}
		return nil
	}
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = mapWriteError(err, "flat "+flats[i].UnitNumber)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close flat insert batch: %w", err)
	}
	return batchErr
}

func (r *PgxInventoryRepository) UpdateFlat(ctx context.Context, flat domain.Flat) error {
	m := mapping.ToModelFlat(flat)
	query := `UPDATE flats SET unit_number = $2, area = $3, bhk = $4, last_updated_at = $5, last_updated_by = $6
		WHERE property_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "flat", query, m.PropertyID, m.UnitNumber, m.Area, m.BHK, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxInventoryRepository) MarkFlatDeleted(ctx context.Context, propertyID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "flats", "property_id", propertyID, deletedBy, at)
}

func (r *PgxInventoryRepository) SetFlatStatus(ctx context.Context, propertyID string, status domain.UnitStatus, updatedBy string, at time.Time) error {
	query := `UPDATE flats SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE property_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "flat", query, propertyID, string(status), at, updatedBy)
}

// batcher is implemented by *pgxpool.Pool and pgx.Tx.
type batcher interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func sendBatch(ctx context.Context, db querier, b *pgx.Batch) pgx.BatchResults {
	if bq, ok := db.(batcher); ok {
		return bq.SendBatch(ctx, b)
	}
	return nil
}
