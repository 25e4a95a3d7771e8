package services

import (
	"context"
	"io"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// ProjectReaderSvc defines read operations for projects.
type ProjectReaderSvc interface {
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error)
	// GetProjectDetails returns a project with its inventory, bank details,
	// amenities and disbursement schedule.
	GetProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetails, error)
}

// ProjectWriterSvc defines write operations for projects.
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string, userID string) error
	// RegisterProject runs the registration wizard in a single transaction.
	RegisterProject(ctx context.Context, req dto.RegisterProjectRequest, userID string) (*domain.ProjectDetails, error)
}

// ProjectSvcFacade combines all project service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}

// DisbursementSvc manages a project's payment schedule.
type DisbursementSvc interface {
	ListDisbursements(ctx context.Context, projectID string) ([]domain.Disbursement, error)
	AddDisbursement(ctx context.Context, projectID string, req dto.CreateDisbursementRequest, userID string) (*domain.Disbursement, error)
	UpdateDisbursement(ctx context.Context, disbursementID string, req dto.UpdateDisbursementRequest, userID string) (*domain.Disbursement, error)
	DeleteDisbursement(ctx context.Context, disbursementID string, userID string) error
}

// BankDetailSvc manages a project's bank accounts.
type BankDetailSvc interface {
	ListBankDetails(ctx context.Context, projectID string) ([]domain.BankDetail, error)
	AddBankDetail(ctx context.Context, projectID string, req dto.CreateBankDetailRequest, userID string) (*domain.BankDetail, error)
	UpdateBankDetail(ctx context.Context, bankDetailID string, req dto.UpdateBankDetailRequest, userID string) (*domain.BankDetail, error)
	DeleteBankDetail(ctx context.Context, bankDetailID string, userID string) error
}

// AmenitySvc manages a project's amenities.
type AmenitySvc interface {
	ListAmenities(ctx context.Context, projectID string) ([]domain.Amenity, error)
	AddAmenity(ctx context.Context, projectID string, req dto.CreateAmenityRequest, userID string) (*domain.Amenity, error)
	UpdateAmenity(ctx context.Context, amenityID string, req dto.UpdateAmenityRequest, userID string) (*domain.Amenity, error)
	DeleteAmenity(ctx context.Context, amenityID string, userID string) error
}

// DocumentSvc manages uploaded project documents.
type DocumentSvc interface {
	ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error)
	UploadDocument(ctx context.Context, projectID string, req dto.UploadDocumentRequest, content io.Reader, userID string) (*domain.Document, error)
	// OpenDocument returns the document metadata and a reader for its content.
	// The caller closes the reader.
	OpenDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error)
	DeleteDocument(ctx context.Context, documentID string, userID string) error
}

// ProjectDetailSvcFacade combines the per-project detail services.
type ProjectDetailSvcFacade interface {
	DisbursementSvc
	BankDetailSvc
	AmenitySvc
	DocumentSvc
}
