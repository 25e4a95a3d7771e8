package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
)

// PgxReportingRepository serves the dashboard aggregates.
type PgxReportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) CountEntities(ctx context.Context) (portsrepo.EntityCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM clients WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM enquiries WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM bookings WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM bookings WHERE NOT is_deleted AND NOT is_cancelled);`
	var c portsrepo.EntityCounts
	if err := r.db.QueryRow(ctx, query).Scan(&c.Projects, &c.Clients, &c.Enquiries, &c.Bookings, &c.ActiveBookings); err != nil {
		return portsrepo.EntityCounts{}, fmt.Errorf("failed to count entities: %w", err)
	}
	return c, nil
}

func (r *PgxReportingRepository) UnitStatusCounts(ctx context.Context) ([]domain.UnitStatusCount, error) {
	query := `
		SELECT p.project_id, p.project_name,
			COALESCE(SUM(CASE WHEN f.status = 'VACANT' THEN 1 ELSE 0 END), 0)::int AS vacant,
			COALESCE(SUM(CASE WHEN f.status = 'BOOKED' THEN 1 ELSE 0 END), 0)::int AS booked,
			COALESCE(SUM(CASE WHEN f.status = 'REGISTERED' THEN 1 ELSE 0 END), 0)::int AS registered,
			COUNT(f.property_id)::int AS total
		FROM projects p
		LEFT JOIN flats f ON f.project_id = p.project_id AND NOT f.is_deleted
		WHERE NOT p.is_deleted
		GROUP BY p.project_id, p.project_name
		ORDER BY p.project_name, p.project_id;`
	ms, err := collectAll[models.UnitStatusCount](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit status counts: %w", err)
	}
	return mapping.ToDomainUnitStatusCountSlice(ms), nil
}
