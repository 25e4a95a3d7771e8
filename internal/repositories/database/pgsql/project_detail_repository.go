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

// PgxProjectDetailRepository stores disbursements, bank details, amenities and documents.
type PgxProjectDetailRepository struct {
	BaseRepository
}

var _ portsrepo.ProjectDetailRepositoryFacade = (*PgxProjectDetailRepository)(nil)

const auditColumns = `is_deleted, created_at, created_by, last_updated_at, last_updated_by`

const (
	disbursementColumns = `disbursement_id, project_id, disbursement_title, description, percentage, ` + auditColumns
	bankDetailColumns   = `bank_detail_id, project_id, bank_name, branch_name, contact_person, contact_number, ifsc, ` + auditColumns
	amenityColumns      = `amenity_id, project_id, name, description, ` + auditColumns
	documentColumns     = `document_id, project_id, title, document_type, file_name, content_type, size_bytes, storage_key, ` + auditColumns
)

func (r *PgxProjectDetailRepository) FindDisbursementByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	query := `SELECT ` + disbursementColumns + ` FROM disbursements WHERE disbursement_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Disbursement](ctx, r.db, query, disbursementID)
	if err != nil {
		return nil, wrapFind(err, "disbursement", disbursementID)
	}
	d := mapping.ToDomainDisbursement(m)
	return &d, nil
}

func (r *PgxProjectDetailRepository) ListDisbursements(ctx context.Context, projectID string) ([]domain.Disbursement, error) {
	query := `SELECT ` + disbursementColumns + ` FROM disbursements
		WHERE project_id = $1 AND NOT is_deleted ORDER BY created_at, disbursement_id;`
	ms, err := collectAll[models.Disbursement](ctx, r.db, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query disbursements: %w", err)
	}
	return mapping.ToDomainDisbursementSlice(ms), nil
}

func (r *PgxProjectDetailRepository) SaveDisbursement(ctx context.Context, d domain.Disbursement) error {
	m := mapping.ToModelDisbursement(d)
	query := `INSERT INTO disbursements (` + disbursementColumns + `)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7, $8, $9);`
	if _, err := r.db.Exec(ctx, query, m.DisbursementID, m.ProjectID, m.DisbursementTitle, m.Description, m.Percentage,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "disbursement")
	}
	return nil
}

func (r *PgxProjectDetailRepository) UpdateDisbursement(ctx context.Context, d domain.Disbursement) error {
	m := mapping.ToModelDisbursement(d)
	query := `UPDATE disbursements
		SET disbursement_title = $2, description = $3, percentage = $4, last_updated_at = $5, last_updated_by = $6
		WHERE disbursement_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "disbursement", query,
		m.DisbursementID, m.DisbursementTitle, m.Description, m.Percentage, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxProjectDetailRepository) MarkDisbursementDeleted(ctx context.Context, disbursementID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "disbursements", "disbursement_id", disbursementID, deletedBy, at)
}

func (r *PgxProjectDetailRepository) FindBankDetailByID(ctx context.Context, bankDetailID string) (*domain.BankDetail, error) {
	query := `SELECT ` + bankDetailColumns + ` FROM bank_details WHERE bank_detail_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.BankDetail](ctx, r.db, query, bankDetailID)
	if err != nil {
		return nil, wrapFind(err, "bank detail", bankDetailID)
	}
	b := mapping.ToDomainBankDetail(m)
	return &b, nil
}

func (r *PgxProjectDetailRepository) ListBankDetails(ctx context.Context, projectID string) ([]domain.BankDetail, error) {
	query := `SELECT ` + bankDetailColumns + ` FROM bank_details
		WHERE project_id = $1 AND NOT is_deleted ORDER BY created_at, bank_detail_id;`
	ms, err := collectAll[models.BankDetail](ctx, r.db, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank details: %w", err)
	}
	return mapping.ToDomainBankDetailSlice(ms), nil
}

func (r *PgxProjectDetailRepository) SaveBankDetail(ctx context.Context, b domain.BankDetail) error {
	m := mapping.ToModelBankDetail(b)
	query := `INSERT INTO bank_details (` + bankDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $11);`
	if _, err := r.db.Exec(ctx, query, m.BankDetailID, m.ProjectID, m.BankName, m.BranchName, m.ContactPerson,
		m.ContactNumber, m.IFSC, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "bank detail")
	}
	return nil
}

func (r *PgxProjectDetailRepository) UpdateBankDetail(ctx context.Context, b domain.BankDetail) error {
	m := mapping.ToModelBankDetail(b)
	query := `UPDATE bank_details
		SET bank_name = $2, branch_name = $3, contact_person = $4, contact_number = $5, ifsc = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE bank_detail_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "bank detail", query, m.BankDetailID, m.BankName, m.BranchName, m.ContactPerson,
		m.ContactNumber, m.IFSC, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxProjectDetailRepository) MarkBankDetailDeleted(ctx context.Context, bankDetailID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "bank_details", "bank_detail_id", bankDetailID, deletedBy, at)
}

func (r *PgxProjectDetailRepository) FindAmenityByID(ctx context.Context, amenityID string) (*domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities WHERE amenity_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Amenity](ctx, r.db, query, amenityID)
	if err != nil {
		return nil, wrapFind(err, "amenity", amenityID)
	}
	a := mapping.ToDomainAmenity(m)
	return &a, nil
}

func (r *PgxProjectDetailRepository) ListAmenities(ctx context.Context, projectID string) ([]domain.Amenity, error) {
	query := `SELECT ` + amenityColumns + ` FROM amenities
		WHERE project_id = $1 AND NOT is_deleted ORDER BY name, amenity_id;`
	ms, err := collectAll[models.Amenity](ctx, r.db, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query amenities: %w", err)
	}
	return mapping.ToDomainAmenitySlice(ms), nil
}

func (r *PgxProjectDetailRepository) SaveAmenity(ctx context.Context, a domain.Amenity) error {
	m := mapping.ToModelAmenity(a)
	query := `INSERT INTO amenities (` + amenityColumns + `)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7, $8);`
	if _, err := r.db.Exec(ctx, query, m.AmenityID, m.ProjectID, m.Name, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "amenity")
	}
	return nil
}

func (r *PgxProjectDetailRepository) UpdateAmenity(ctx context.Context, a domain.Amenity) error {
	m := mapping.ToModelAmenity(a)
	query := `UPDATE amenities SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE amenity_id = $1 AND NOT is_deleted;`
	return execOne(ctx, r.db, "amenity", query, m.AmenityID, m.Name, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxProjectDetailRepository) MarkAmenityDeleted(ctx context.Context, amenityID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "amenities", "amenity_id", amenityID, deletedBy, at)
}

func (r *PgxProjectDetailRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND NOT is_deleted;`
	m, err := collectOne[models.Document](ctx, r.db, query, documentID)
	if err != nil {
		return nil, wrapFind(err, "document", documentID)
	}
	d := mapping.ToDomainDocument(m)
	return &d, nil
}

func (r *PgxProjectDetailRepository) ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE project_id = $1 AND NOT is_deleted ORDER BY created_at DESC, document_id;`
	ms, err := collectAll[models.Document](ctx, r.db, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	return mapping.ToDomainDocumentSlice(ms), nil
}

func (r *PgxProjectDetailRepository) SaveDocument(ctx context.Context, d domain.Document) error {
	m := mapping.ToModelDocument(d)
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $11, $12);`
	if _, err := r.db.Exec(ctx, query, m.DocumentID, m.ProjectID, m.Title, m.DocumentType, m.FileName,
		m.ContentType, m.SizeBytes, m.StorageKey, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return mapWriteError(err, "document")
	}
	return nil
}

func (r *PgxProjectDetailRepository) MarkDocumentDeleted(ctx context.Context, documentID string, deletedBy string, at time.Time) error {
	return markDeleted(ctx, r.db, "documents", "document_id", documentID, deletedBy, at)
}
