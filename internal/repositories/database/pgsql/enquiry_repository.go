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

// PgxEnquiryRepository stores enquiries and their remarks.
type PgxEnquiryRepository struct {
	BaseRepository
}

var _ portsrepo.EnquiryRepositoryFacade = (*PgxEnquiryRepository)(nil)

const enquiryColumns = `enquiry_id, project_id, client_id, property_id, budget, reference, reference_name, status, ` + auditColumns

func (r *PgxEnquiryRepository) FindEnquiryByID(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE enquiry_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Enquiry](ctx, r.db, query, enquiryID)
	if err != nil {
		return nil, wrapFind(err, "enquiry", enquiryID)
	}
	e := mapping.ToDomainEnquiry(m)
	return &e, nil
}

func (r *PgxEnquiryRepository) ListEnquiries(ctx context.Context, filter portsrepo.EnquiryFilter) ([]domain.Enquiry, error) {
	query := `
		SELECT e.enquiry_id, e.project_id, e.client_id, e.property_id, e.budget, e.reference, e.reference_name, e.status,
			e.is_deleted, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM enquiries e
		JOIN clients c ON c.client_id = e.client_id
		WHERE NOT e.is_deleted
			AND ($1 = '' OR e.project_id = $1)
			AND ($2 = '' OR e.client_id = $2)
			AND ($3 = '' OR e.property_id = $3)
			AND ($4 = '' OR e.status = $4)
			AND ($5 = '' OR c.client_name ILIKE '%' || $5 || '%' OR e.budget ILIKE '%' || $5 || '%')
		ORDER BY e.created_at DESC, e.enquiry_id;`
	ms, err := collectAll[models.Enquiry](ctx, r.db, query,
		filter.ProjectID, filter.ClientID, filter.PropertyID, string(filter.Status), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiries: %w", err)
	}
	return mapping.ToDomainEnquirySlice(ms), nil
}

func (r *PgxEnquiryRepository) ListRemarks(ctx context.Context, enquiryID string) ([]domain.EnquiryRemark, error) {
	query := `SELECT remark_id, enquiry_id, body, author_id, author_name, created_at
		FROM enquiry_remarks WHERE enquiry_id = $1 ORDER BY created_at, remark_id;`
	ms, err := collectAll[models.EnquiryRemark](ctx, r.db, query, enquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiry remarks: %w", err)
	}
	return mapping.ToDomainEnquiryRemarkSlice(ms), nil
}

func (r *PgxEnquiryRepository) SaveEnquiry(ctx context.Context, enquiry domain.Enquiry) error {
	m := mapping.ToModelEnquiry(enquiry)
	query := `INSERT INTO enquiries (` + enquiryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12);`
	if _, err := r.db.Exec(ctx, query, m.EnquiryID, m.ProjectID, m.ClientID, m.PropertyID, m.Budget, m.Reference,
		m.ReferenceName, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "enquiry")
	}
	return nil
}

func (r *PgxEnquiryRepository) UpdateEnquiry(ctx context.Context, enquiry domain.Enquiry) error {
	m := mapping.ToModelEnquiry(enquiry)
	query := `
		UPDATE enquiries
		SET property_id = $2, budget = $3, reference = $4, reference_name = $5, status = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE enquiry_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "enquiry", query, m.EnquiryID, m.PropertyID, m.Budget, m.Reference, m.ReferenceName,
		m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxEnquiryRepository) MarkEnquiryDeleted(ctx context.Context, enquiryID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "enquiries", "enquiry_id", enquiryID, deletedBy, at)
}

func (r *PgxEnquiryRepository) SaveRemark(ctx context.Context, remark domain.EnquiryRemark) error {
	m := mapping.ToModelEnquiryRemark(remark)
	query := `INSERT INTO enquiry_remarks (remark_id, enquiry_id, body, author_id, author_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := r.db.Exec(ctx, query, m.RemarkID, m.EnquiryID, m.Body, m.AuthorID, m.AuthorName, m.CreatedAt); err != nil {
		return mapWriteError(err, "enquiry remark")
	}
	return nil
}
