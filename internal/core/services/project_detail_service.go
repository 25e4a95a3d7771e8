package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// projectDetailService implements the ProjectDetailSvcFacade interface
type projectDetailService struct {
	BaseService
	repos   portsrepo.RepositoryProvider
	storage outbound.DocumentStorage
}

// NewProjectDetailService creates the service managing disbursements, bank
// details, amenities and documents.
func NewProjectDetailService(repos portsrepo.RepositoryProvider, storage outbound.DocumentStorage, options ...ServiceOption) portssvc.ProjectDetailSvcFacade {
	return &projectDetailService{
		BaseService: newBaseService(options...),
		repos:       repos,
		storage:     storage,
	}
}

var _ portssvc.ProjectDetailSvcFacade = (*projectDetailService)(nil)

func checkPercentage(p decimal.Decimal) error {
	if !p.IsPositive() || p.GreaterThan(domain.FullSchedule) {
		return apperrors.Validationf("percentage must be greater than 0 and at most 100")
	}
	return nil
}

func buildDisbursement(projectID string, req dto.CreateDisbursementRequest, userID string, now time.Time) (domain.Disbursement, error) {
	title := strings.TrimSpace(req.DisbursementTitle)
	if title == "" {
		return domain.Disbursement{}, apperrors.Validationf("disbursementTitle is required")
	}
	if err := checkPercentage(req.Percentage); err != nil {
		return domain.Disbursement{}, err
	}
	return domain.Disbursement{
		DisbursementID:    uuid.NewString(),
		ProjectID:         projectID,
		DisbursementTitle: title,
		Description:       strings.TrimSpace(req.Description),
		Percentage:        req.Percentage,
		AuditFields:       domain.NewAuditFields(userID, now),
	}, nil
}

func buildBankDetail(projectID string, req dto.CreateBankDetailRequest, userID string, now time.Time) (domain.BankDetail, error) {
	if strings.TrimSpace(req.BankName) == "" || strings.TrimSpace(req.BranchName) == "" {
		return domain.BankDetail{}, apperrors.Validationf("bankName and branchName are required")
	}
	if err := validation.Field("contactNumber", req.ContactNumber, "required,phone"); err != nil {
		return domain.BankDetail{}, err
	}
	ifsc := strings.ToUpper(strings.TrimSpace(req.IFSC))
	if err := validation.Field("ifsc", ifsc, "omitempty,ifsc"); err != nil {
		return domain.BankDetail{}, err
	}
	return domain.BankDetail{
		BankDetailID:  uuid.NewString(),
		ProjectID:     projectID,
		BankName:      strings.TrimSpace(req.BankName),
		BranchName:    strings.TrimSpace(req.BranchName),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		ContactNumber: req.ContactNumber,
		IFSC:          ifsc,
		AuditFields:   domain.NewAuditFields(userID, now),
	}, nil
}

func buildAmenity(projectID string, req dto.CreateAmenityRequest, userID string, now time.Time) (domain.Amenity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Amenity{}, apperrors.Validationf("amenity name is required")
	}
	return domain.Amenity{
		AmenityID:   uuid.NewString(),
		ProjectID:   projectID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		AuditFields: domain.NewAuditFields(userID, now),
	}, nil
}

// --- Disbursements ---

func (s *projectDetailService) ListDisbursements(ctx context.Context, projectID string) ([]domain.Disbursement, error) {
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.ProjectDetailRepo.ListDisbursements(ctx, projectID)
}

// checkScheduleTotal rejects a change that would push the project's running
// total past 100. excludeID is the stage being replaced, if any.
func checkScheduleTotal(stages []domain.Disbursement, excludeID string, added decimal.Decimal) error {
	others := make([]domain.Disbursement, 0, len(stages))
	for _, st := range stages {
		if st.DisbursementID != excludeID {
			others = append(others, st)
		}
	}
	total := domain.DisbursementTotal(others).Add(added)
	if total.GreaterThan(domain.FullSchedule) {
		return apperrors.Validationf("disbursement total would be %s%%, which exceeds 100%%", total.String())
	}
	return nil
}

func (s *projectDetailService) AddDisbursement(ctx context.Context, projectID string, req dto.CreateDisbursementRequest, userID string) (*domain.Disbursement, error) {
	stage, err := buildDisbursement(projectID, req, userID, s.now())
	if err != nil {
		return nil, err
	}
	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if _, err := tx.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
			return err
		}
		stages, err := tx.ProjectDetailRepo.ListDisbursements(ctx, projectID)
		if err != nil {
			return err
		}
		if err := checkScheduleTotal(stages, "", stage.Percentage); err != nil {
			return err
		}
		return tx.ProjectDetailRepo.SaveDisbursement(ctx, stage)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add disbursement", slog.String("project_id", projectID))
		return nil, err
	}
	return &stage, nil
}

func (s *projectDetailService) UpdateDisbursement(ctx context.Context, disbursementID string, req dto.UpdateDisbursementRequest, userID string) (*domain.Disbursement, error) {
	var updated *domain.Disbursement
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		stage, err := tx.ProjectDetailRepo.FindDisbursementByID(ctx, disbursementID)
		if err != nil {
			return err
		}
		if req.DisbursementTitle != nil {
			title := strings.TrimSpace(*req.DisbursementTitle)
			if title == "" {
				return apperrors.Validationf("disbursementTitle cannot be empty")
			}
			stage.DisbursementTitle = title
		}
		if req.Description != nil {
			stage.Description = strings.TrimSpace(*req.Description)
		}
		if req.Percentage != nil {
			if err := checkPercentage(*req.Percentage); err != nil {
				return err
			}
			stages, err := tx.ProjectDetailRepo.ListDisbursements(ctx, stage.ProjectID)
			if err != nil {
				return err
			}
			if err := checkScheduleTotal(stages, stage.DisbursementID, *req.Percentage); err != nil {
				return err
			}
			stage.Percentage = *req.Percentage
		}
		stage.Touch(userID, s.now())
		if err := tx.ProjectDetailRepo.UpdateDisbursement(ctx, *stage); err != nil {
			return err
		}
		updated = stage
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update disbursement", slog.String("disbursement_id", disbursementID))
		return nil, err
	}
	return updated, nil
}

func (s *projectDetailService) DeleteDisbursement(ctx context.Context, disbursementID string, userID string) error {
	if err := s.repos.ProjectDetailRepo.MarkDisbursementDeleted(ctx, disbursementID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete disbursement", slog.String("disbursement_id", disbursementID))
		return err
	}
	s.LogInfo(ctx, "Disbursement deleted", slog.String("disbursement_id", disbursementID))
	return nil
}

// --- Bank details ---

func (s *projectDetailService) ListBankDetails(ctx context.Context, projectID string) ([]domain.BankDetail, error) {
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.ProjectDetailRepo.ListBankDetails(ctx, projectID)
}

func (s *projectDetailService) AddBankDetail(ctx context.Context, projectID string, req dto.CreateBankDetailRequest, userID string) (*domain.BankDetail, error) {
	bank, err := buildBankDetail(projectID, req, userID, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.repos.ProjectDetailRepo.SaveBankDetail(ctx, bank); err != nil {
		s.LogError(ctx, err, "Failed to add bank detail", slog.String("project_id", projectID))
		return nil, err
	}
	return &bank, nil
}

func (s *projectDetailService) UpdateBankDetail(ctx context.Context, bankDetailID string, req dto.UpdateBankDetailRequest, userID string) (*domain.BankDetail, error) {
	bank, err := s.repos.ProjectDetailRepo.FindBankDetailByID(ctx, bankDetailID)
	if err != nil {
		return nil, err
	}
	if req.BankName != nil {
		bank.BankName = strings.TrimSpace(*req.BankName)
	}
	if req.BranchName != nil {
		bank.BranchName = strings.TrimSpace(*req.BranchName)
	}
	if bank.BankName == "" || bank.BranchName == "" {
		return nil, apperrors.Validationf("bankName and branchName cannot be empty")
	}
	if req.ContactPerson != nil {
		bank.ContactPerson = strings.TrimSpace(*req.ContactPerson)
	}
	if req.ContactNumber != nil {
		if err := validation.Field("contactNumber", *req.ContactNumber, "required,phone"); err != nil {
			return nil, err
		}
		bank.ContactNumber = *req.ContactNumber
	}
	if req.IFSC != nil {
		ifsc := strings.ToUpper(strings.TrimSpace(*req.IFSC))
		if err := validation.Field("ifsc", ifsc, "omitempty,ifsc"); err != nil {
			return nil, err
		}
		bank.IFSC = ifsc
	}
	bank.Touch(userID, s.now())
	if err := s.repos.ProjectDetailRepo.UpdateBankDetail(ctx, *bank); err != nil {
		s.LogError(ctx, err, "Failed to update bank detail", slog.String("bank_detail_id", bankDetailID))
		return nil, err
	}
	return bank, nil
}

func (s *projectDetailService) DeleteBankDetail(ctx context.Context, bankDetailID string, userID string) error {
	if err := s.repos.ProjectDetailRepo.MarkBankDetailDeleted(ctx, bankDetailID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete bank detail", slog.String("bank_detail_id", bankDetailID))
		return err
	}
	s.LogInfo(ctx, "Bank detail deleted", slog.String("bank_detail_id", bankDetailID))
	return nil
}

// --- Amenities ---

func (s *projectDetailService) ListAmenities(ctx context.Context, projectID string) ([]domain.Amenity, error) {
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.ProjectDetailRepo.ListAmenities(ctx, projectID)
}

func (s *projectDetailService) AddAmenity(ctx context.Context, projectID string, req dto.CreateAmenityRequest, userID string) (*domain.Amenity, error) {
	amenity, err := buildAmenity(projectID, req, userID, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.repos.ProjectDetailRepo.SaveAmenity(ctx, amenity); err != nil {
		s.LogError(ctx, err, "Failed to add amenity", slog.String("project_id", projectID))
		return nil, err
	}
	return &amenity, nil
}

func (s *projectDetailService) UpdateAmenity(ctx context.Context, amenityID string, req dto.UpdateAmenityRequest, userID string) (*domain.Amenity, error) {
	amenity, err := s.repos.ProjectDetailRepo.FindAmenityByID(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validationf("amenity name cannot be empty")
		}
		amenity.Name = name
	}
	if req.Description != nil {
		amenity.Description = strings.TrimSpace(*req.Description)
	}
	amenity.Touch(userID, s.now())
	if err := s.repos.ProjectDetailRepo.UpdateAmenity(ctx, *amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

func (s *projectDetailService) DeleteAmenity(ctx context.Context, amenityID string, userID string) error {
	if err := s.repos.ProjectDetailRepo.MarkAmenityDeleted(ctx, amenityID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete amenity", slog.String("amenity_id", amenityID))
		return err
	}
	s.LogInfo(ctx, "Amenity deleted", slog.String("amenity_id", amenityID))
	return nil
}

// --- Documents ---

func (s *projectDetailService) ListDocuments(ctx context.Context, projectID string) ([]domain.Document, error) {
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repos.ProjectDetailRepo.ListDocuments(ctx, projectID)
}

// UploadDocument stores the content first and the metadata second; if the
// metadata cannot be saved the stored file is removed again.
func (s *projectDetailService) UploadDocument(ctx context.Context, projectID string, req dto.UploadDocumentRequest, content io.Reader, userID string) (*domain.Document, error) {
	if s.storage == nil {
		return nil, errors.New("document storage is not configured")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validationf("title is required")
	}
	docType := domain.DocumentType(req.DocumentType)
	if docType == "" {
		docType = domain.DocumentTypeOther
	}
	if !docType.IsValid() {
		return nil, apperrors.Validationf("unknown documentType %q", req.DocumentType)
	}
	if _, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID:   uuid.NewString(),
		ProjectID:    projectID,
		Title:        title,
		DocumentType: docType,
		FileName:     path.Base(req.FileName),
		ContentType:  req.ContentType,
		AuditFields:  domain.NewAuditFields(userID, s.now()),
	}
	doc.StorageKey = path.Join(projectID, doc.DocumentID+path.Ext(doc.FileName))

	size, err := s.storage.Save(ctx, doc.StorageKey, content)
	if err != nil {
		s.LogError(ctx, err, "Failed to store document", slog.String("project_id", projectID))
		return nil, err
	}
	doc.SizeBytes = size

	if err := s.repos.ProjectDetailRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document metadata", slog.String("document_id", doc.DocumentID))
		if delErr := s.storage.Delete(ctx, doc.StorageKey); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove orphaned document", slog.String("storage_key", doc.StorageKey))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Document uploaded",
		slog.String("document_id", doc.DocumentID),
		slog.Int64("size_bytes", size))
	return &doc, nil
}

func (s *projectDetailService) OpenDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error) {
	if s.storage == nil {
		return nil, nil, errors.New("document storage is not configured")
	}
	doc, err := s.repos.ProjectDetailRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.storage.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, r, nil
}

// DeleteDocument soft deletes the metadata; the stored bytes are kept.
func (s *projectDetailService) DeleteDocument(ctx context.Context, documentID string, userID string) error {
	if err := s.repos.ProjectDetailRepo.MarkDocumentDeleted(ctx, documentID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		return err
	}
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID))
	return nil
}
