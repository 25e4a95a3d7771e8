package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// ProjectFilter narrows ListProjects. Zero values mean "any".
type ProjectFilter struct {
	Status domain.ProjectStatus
}

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a non-deleted project.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves non-deleted projects ordered by name.
	ListProjects(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	MarkProjectDeleted(ctx context.Context, projectID string, deletedBy string, at time.Time) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}

// DisbursementRepository stores a project's payment schedule.
type DisbursementRepository interface {
	FindDisbursementByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error)
	ListDisbursements(ctx context.Context, projectID string) ([]domain.Disbursement, error)
	SaveDisbursement(ctx context.Context, d domain.Disbursement) error
	UpdateDisbursement(ctx context.Context, d domain.Disbursement) error
	MarkDisbursementDeleted(ctx context.Context, disbursementID string, deletedBy string, at time.Time) error
}

// BankDetailRepository stores the bank accounts of a project.
type BankDetailRepository interface {
	FindBankDetailByID(ctx context.Context, bankDetailID string) (*domain.BankDetail, error)
	ListBankDetails(ctx context.Context, projectID string) ([]domain.BankDetail, error)
	SaveBankDetail(ctx context.Context, b domain.BankDetail) error
	UpdateBankDetail(ctx context.Context, b domain.BankDetail) error
	MarkBankDetailDeleted(ctx context.Context, bankDetailID string, deletedBy string, at time.Time) error
}

// AmenityRepository stores the amenities of a project.
type AmenityRepository interface {
	FindAmenityByID(ctx context.Context, amenityID string) (*domain.Amenity, error)
	ListAmenities(ctx context.Context, projectID string) ([]domain.Amenity, error)
	SaveAmenity(ctx context.Context, a domain.Amenity) error
	UpdateAmenity(ctx context.Context, a domain.Amenity) error
	MarkAmenityDeleted(ctx context.Context, amenityID string, deletedBy string, at time.Time) error
}

// DocumentRepository stores uploaded document metadata.
type DocumentRepository interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error)
	SaveDocument(ctx context.Context, d domain.Document) error
	MarkDocumentDeleted(ctx context.Context, documentID string, deletedBy string, at time.Time) error
}

// ProjectDetailRepositoryFacade combines the per-project detail repositories.
type ProjectDetailRepositoryFacade interface {
	DisbursementRepository
	BankDetailRepository
	AmenityRepository
	DocumentRepository
}
