package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/models"
	"github.com/SscSPs/propease_crm/internal/utils/mapping"
)

// PgxClientRepository stores clients.
type PgxClientRepository struct {
	BaseRepository
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, client_name, email, mobile_number, dob, city, address, occupation, company,
	pan_no, aadhar_no, ` + auditColumns

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Client](ctx, r.db, query, clientID)
	if err != nil {
		return nil, wrapFind(err, "client", clientID)
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, filter portsrepo.ClientFilter) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE NOT is_deleted
			AND ($1 = '' OR client_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR mobile_number LIKE '%' || $1 || '%')
		ORDER BY created_at DESC, client_id
		LIMIT $2 OFFSET $3;`
	ms, err := collectAll[models.Client](ctx, r.db, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	return mapping.ToDomainClientSlice(ms), nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, $12, $13, $14, $15);`
	if _, err := r.db.Exec(ctx, query, m.ClientID, m.ClientName, m.Email, m.MobileNumber, m.DOB, m.City, m.Address,
		m.Occupation, m.Company, m.PanNo, m.AadharNo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "client")
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET client_name = $2, email = $3, mobile_number = $4, dob = $5, city = $6, address = $7,
			occupation = $8, company = $9, pan_no = $10, aadhar_no = $11, last_updated_at = $12, last_updated_by = $13
		WHERE client_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "client", query, m.ClientID, m.ClientName, m.Email, m.MobileNumber, m.DOB, m.City,
		m.Address, m.Occupation, m.Company, m.PanNo, m.AadharNo, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxClientRepository) MarkClientDeleted(ctx context.Context, clientID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "clients", "client_id", clientID, deletedBy, at)
}
