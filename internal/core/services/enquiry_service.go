package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/google/uuid"
)

// enquiryService implements the EnquirySvcFacade interface
type enquiryService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewEnquiryService creates a new enquiry service with the provided options
func NewEnquiryService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.EnquirySvcFacade {
	return &enquiryService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

var _ portssvc.EnquirySvcFacade = (*enquiryService)(nil)

func (s *enquiryService) CreateEnquiry(ctx context.Context, req dto.CreateEnquiryRequest, userID string) (*domain.EnquiryCreation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Budget) == "" {
		return nil, apperrors.Validationf("budget is required")
	}

	now := s.now()
	var result domain.EnquiryCreation
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		client, isNew, err := resolveClient(ctx, tx.ClientRepo, req.ClientID, req.CreateNewClient, req.NewClient, userID, now)
		if err != nil {
			return err
		}
		if _, err := tx.ProjectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
			return err
		}
		if req.PropertyID != "" {
			flat, err := tx.InventoryRepo.FindFlatByID(ctx, req.PropertyID)
			if err != nil {
				return err
			}
			if flat.ProjectID != req.ProjectID {
				return apperrors.Validationf("unit %s does not belong to the selected project", flat.UnitNumber)
			}
		}

		if isNew {
			if err := tx.ClientRepo.SaveClient(ctx, *client); err != nil {
				return err
			}
			result.NewClient = client
		}

		agentName := s.actorName(ctx, tx.UserRepo, userID)
		result.Enquiry = domain.Enquiry{
			EnquiryID:     uuid.NewString(),
			ProjectID:     req.ProjectID,
			ClientID:      client.ClientID,
			PropertyID:    req.PropertyID,
			Budget:        strings.TrimSpace(req.Budget),
			Reference:     req.Reference,
			ReferenceName: req.ReferenceName,
			Status:        domain.EnquiryStatusOngoing,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if err := tx.EnquiryRepo.SaveEnquiry(ctx, result.Enquiry); err != nil {
			return err
		}

		if body := strings.TrimSpace(req.Remark); body != "" {
			remark := domain.EnquiryRemark{
				RemarkID:   uuid.NewString(),
				EnquiryID:  result.Enquiry.EnquiryID,
				Body:       body,
				AuthorID:   userID,
				AuthorName: agentName,
				CreatedAt:  now,
			}
			if err := tx.EnquiryRepo.SaveRemark(ctx, remark); err != nil {
				return err
			}
			result.Remark = &remark
		}

		result.FollowUp = domain.FollowUp{
			FollowUpID:   uuid.NewString(),
			EnquiryID:    result.Enquiry.EnquiryID,
			FollowUpDate: s.today().AddDate(0, 0, domain.DefaultFollowUpIntervalDays),
			FollowUpTime: domain.DefaultFollowUpTime,
			Status:       domain.FollowUpStatusPending,
			Notes:        domain.InitialFollowUpNotes,
			AgentName:    agentName,
			AgentID:      userID,
			AuditFields:  domain.NewAuditFields(userID, now),
		}
		if err := tx.FollowUpRepo.SaveFollowUp(ctx, result.FollowUp); err != nil {
			return err
		}

		return s.recordActivity(ctx, tx, userID, "Enquiry created", entityEnquiry, result.Enquiry.EnquiryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create enquiry", slog.String("project_id", req.ProjectID))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventEnquiryCreated, result.Enquiry.EnquiryID, userID, result.Enquiry))
	s.LogInfo(ctx, "Enquiry created successfully",
		slog.String("enquiry_id", result.Enquiry.EnquiryID),
		slog.Bool("new_client", result.NewClient != nil))
	return &result, nil
}

func (s *enquiryService) GetEnquiryByID(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	return s.repos.EnquiryRepo.FindEnquiryByID(ctx, enquiryID)
}

func (s *enquiryService) ListEnquiries(ctx context.Context, params dto.ListEnquiriesParams) ([]domain.Enquiry, error) {
	filter := portsrepo.EnquiryFilter{
		ProjectID: params.ProjectID,
		ClientID:  params.ClientID,
		Status:    domain.EnquiryStatus(params.Status),
		Search:    strings.TrimSpace(params.Search),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.Validationf("unknown enquiry status %q", params.Status)
	}
	enquiries, err := s.repos.EnquiryRepo.ListEnquiries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enquiries")
		return nil, err
	}
	return enquiries, nil
}

func (s *enquiryService) ListRemarks(ctx context.Context, enquiryID string) ([]domain.EnquiryRemark, error) {
	if _, err := s.repos.EnquiryRepo.FindEnquiryByID(ctx, enquiryID); err != nil {
		return nil, err
	}
	return s.repos.EnquiryRepo.ListRemarks(ctx, enquiryID)
}

func (s *enquiryService) UpdateEnquiry(ctx context.Context, enquiryID string, req dto.UpdateEnquiryRequest, userID string) (*domain.Enquiry, error) {
	var updated *domain.Enquiry
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		enquiry, err := tx.EnquiryRepo.FindEnquiryByID(ctx, enquiryID)
		if err != nil {
			return err
		}
		if req.PropertyID != nil {
			if *req.PropertyID != "" {
				flat, err := tx.InventoryRepo.FindFlatByID(ctx, *req.PropertyID)
				if err != nil {
					return err
				}
				if flat.ProjectID != enquiry.ProjectID {
					return apperrors.Validationf("unit %s does not belong to the enquiry's project", flat.UnitNumber)
				}
			}
			enquiry.PropertyID = *req.PropertyID
		}
		if req.Budget != nil {
			budget := strings.TrimSpace(*req.Budget)
			if budget == "" {
				return apperrors.Validationf("budget cannot be empty")
			}
			enquiry.Budget = budget
		}
		if req.Reference != nil {
			enquiry.Reference = *req.Reference
		}
		if req.ReferenceName != nil {
			enquiry.ReferenceName = *req.ReferenceName
		}
		if req.Status != nil {
			status := domain.EnquiryStatus(*req.Status)
			if !status.IsValid() {
				return apperrors.Validationf("unknown enquiry status %q", *req.Status)
			}
			if status == domain.EnquiryStatusCancelled && enquiry.Status != status {
				return apperrors.Validationf("enquiries are cancelled with a remark through the cancel endpoint")
			}
			enquiry.Status = status
		}
		enquiry.Touch(userID, s.now())

		if err := tx.EnquiryRepo.UpdateEnquiry(ctx, *enquiry); err != nil {
			return err
		}
		updated = enquiry
		return s.recordActivity(ctx, tx, userID, "Enquiry updated", entityEnquiry, enquiryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update enquiry", slog.String("enquiry_id", enquiryID))
		return nil, err
	}
	s.afterCommit(ctx)
	return updated, nil
}

func (s *enquiryService) CancelEnquiry(ctx context.Context, enquiryID string, remark string, userID string) (*domain.Enquiry, error) {
	body := strings.TrimSpace(remark)
	if body == "" {
		return nil, apperrors.Validationf("a remark is required to cancel an enquiry")
	}

	var (
		cancelled       *domain.Enquiry
		closedFollowUps int
	)
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		enquiry, err := tx.EnquiryRepo.FindEnquiryByID(ctx, enquiryID)
		if err != nil {
			return err
		}
		if enquiry.Status == domain.EnquiryStatusCancelled {
			return apperrors.Conflictf("enquiry is already cancelled")
		}

		now := s.now()
		author := s.actorName(ctx, tx.UserRepo, userID)
		enquiry.Status = domain.EnquiryStatusCancelled
		enquiry.Touch(userID, now)
		if err := tx.EnquiryRepo.UpdateEnquiry(ctx, *enquiry); err != nil {
			return err
		}
		if err := tx.EnquiryRepo.SaveRemark(ctx, domain.EnquiryRemark{
			RemarkID:   uuid.NewString(),
			EnquiryID:  enquiryID,
			Body:       body,
			AuthorID:   userID,
			AuthorName: author,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		closed, err := closePendingFollowUps(ctx, tx, enquiryID, "Enquiry cancelled: "+body, author, userID, now)
		if err != nil {
			return err
		}
		closedFollowUps = closed
		cancelled = enquiry
		return s.recordActivity(ctx, tx, userID, "Enquiry cancelled", entityEnquiry, enquiryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel enquiry", slog.String("enquiry_id", enquiryID))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventEnquiryCancelled, enquiryID, userID, map[string]string{"remark": body}))
	s.LogInfo(ctx, "Enquiry cancelled",
		slog.String("enquiry_id", enquiryID),
		slog.Int("closed_follow_ups", closedFollowUps))
	return cancelled, nil
}

func (s *enquiryService) AddRemark(ctx context.Context, enquiryID string, body string, userID string) (*domain.EnquiryRemark, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.Validationf("remark cannot be empty")
	}

	var remark domain.EnquiryRemark
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if _, err := tx.EnquiryRepo.FindEnquiryByID(ctx, enquiryID); err != nil {
			return err
		}
		remark = domain.EnquiryRemark{
			RemarkID:   uuid.NewString(),
			EnquiryID:  enquiryID,
			Body:       body,
			AuthorID:   userID,
			AuthorName: s.actorName(ctx, tx.UserRepo, userID),
			CreatedAt:  s.now(),
		}
		return tx.EnquiryRepo.SaveRemark(ctx, remark)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add remark", slog.String("enquiry_id", enquiryID))
		return nil, err
	}
	return &remark, nil
}

func (s *enquiryService) DeleteEnquiry(ctx context.Context, enquiryID string, userID string) error {
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if err := tx.EnquiryRepo.MarkEnquiryDeleted(ctx, enquiryID, userID, s.now()); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Enquiry deleted", entityEnquiry, enquiryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete enquiry", slog.String("enquiry_id", enquiryID))
		return err
	}
	s.afterCommit(ctx)
	return nil
}
