package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/validation"
	"github.com/google/uuid"
)

// projectService implements the ProjectSvcFacade interface
type projectService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewProjectService creates a new project service with the provided options
func NewProjectService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func buildProject(req dto.CreateProjectRequest, userID string, now time.Time) (domain.Project, error) {
	name := strings.TrimSpace(req.ProjectName)
	if name == "" {
		return domain.Project{}, apperrors.Validationf("projectName is required")
	}
	mahareraNo := strings.ToUpper(strings.TrimSpace(req.MahareraNo))
	if !validation.IsValidRERA(mahareraNo) {
		return domain.Project{}, apperrors.Validationf("mahareraNo must be P followed by 11 digits")
	}
	status := domain.ProjectStatus(req.Status)
	if status == "" {
		status = domain.ProjectStatusUpcoming
	}
	if !status.IsValid() {
		return domain.Project{}, apperrors.Validationf("unknown project status %q", req.Status)
	}
	if req.Progress < 0 || req.Progress > 100 {
		return domain.Project{}, apperrors.Validationf("progress must be between 0 and 100")
	}
	startDate, err := dto.ParseOptionalDate(req.StartDate)
	if err != nil {
		return domain.Project{}, apperrors.Validationf("startDate must be a YYYY-MM-DD date")
	}
	completionDate, err := dto.ParseOptionalDate(req.CompletionDate)
	if err != nil {
		return domain.Project{}, apperrors.Validationf("completionDate must be a YYYY-MM-DD date")
	}
	if err := checkProjectDates(startDate, completionDate); err != nil {
		return domain.Project{}, err
	}

	return domain.Project{
		ProjectID:         uuid.NewString(),
		ProjectName:       name,
		Status:            status,
		Progress:          req.Progress,
		StartDate:         startDate,
		CompletionDate:    completionDate,
		MahareraNo:        mahareraNo,
		ProjectAddress:    strings.TrimSpace(req.ProjectAddress),
		LetterHeadFileURL: req.LetterHeadFileURL,
		AuditFields:       domain.NewAuditFields(userID, now),
	}, nil
}

func checkProjectDates(start, completion *time.Time) error {
	if start != nil && completion != nil && completion.Before(*start) {
		return apperrors.Validationf("completionDate cannot be before startDate")
	}
	return nil
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*domain.Project, error) {
	project, err := buildProject(req, userID, s.now())
	if err != nil {
		return nil, err
	}

	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if err := tx.ProjectRepo.SaveProject(ctx, project); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Project "+project.ProjectName+" created", entityProject, project.ProjectID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("maharera_no", project.MahareraNo))
		return nil, err
	}
	s.afterCommit(ctx)

	s.LogInfo(ctx, "Project created successfully", slog.String("project_id", project.ProjectID))
	return &project, nil
}

// RegisterProject writes the project with its wings, floors, generated flats,
// bank details, amenities and payment schedule in one transaction.
func (s *projectService) RegisterProject(ctx context.Context, req dto.RegisterProjectRequest, userID string) (*domain.ProjectDetails, error) {
	now := s.now()
	project, err := buildProject(req.Project, userID, now)
	if err != nil {
		return nil, err
	}

	details := domain.ProjectDetails{Project: project}
	for _, d := range req.Disbursements {
		stage, err := buildDisbursement(project.ProjectID, d, userID, now)
		if err != nil {
			return nil, err
		}
		details.Disbursements = append(details.Disbursements, stage)
	}
	if !domain.ScheduleIsComplete(details.Disbursements) {
		return nil, apperrors.Validationf("disbursement percentages must total 100, got %s",
			domain.DisbursementTotal(details.Disbursements).String())
	}
	for _, b := range req.BankDetails {
		bank, err := buildBankDetail(project.ProjectID, b, userID, now)
		if err != nil {
			return nil, err
		}
		details.BankDetails = append(details.BankDetails, bank)
	}
	for _, a := range req.Amenities {
		amenity, err := buildAmenity(project.ProjectID, a, userID, now)
		if err != nil {
			return nil, err
		}
		details.Amenities = append(details.Amenities, amenity)
	}
	seenWings := make(map[string]bool, len(req.Wings))
	for _, w := range req.Wings {
		wing, err := buildWing(project.ProjectID, w.CreateWingRequest, userID, now)
		if err != nil {
			return nil, err
		}
		if seenWings[strings.ToUpper(wing.WingName)] {
			return nil, apperrors.Validationf("wing %q is listed twice", wing.WingName)
		}
		seenWings[strings.ToUpper(wing.WingName)] = true
		details.Wings = append(details.Wings, wing)
		seenFloors := make(map[int]bool, len(w.Floors))
		for _, f := range w.Floors {
			if seenFloors[f.FloorNo] {
				return nil, apperrors.Validationf("floor %d is listed twice in wing %s", f.FloorNo, wing.WingName)
			}
			seenFloors[f.FloorNo] = true
			floor, flats, err := buildFloor(wing, f, userID, now)
			if err != nil {
				return nil, err
			}
			details.Floors = append(details.Floors, floor)
			details.Flats = append(details.Flats, flats...)
		}
	}

	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if err := tx.ProjectRepo.SaveProject(ctx, details.Project); err != nil {
			return err
		}
		for _, w := range details.Wings {
			if err := tx.InventoryRepo.SaveWing(ctx, w); err != nil {
				return err
			}
		}
		for _, f := range details.Floors {
			if err := tx.InventoryRepo.SaveFloor(ctx, f); err != nil {
				return err
			}
		}
		if len(details.Flats) > 0 {
			if err := tx.InventoryRepo.SaveFlats(ctx, details.Flats); err != nil {
				return err
			}
		}
		for _, b := range details.BankDetails {
			if err := tx.ProjectDetailRepo.SaveBankDetail(ctx, b); err != nil {
				return err
			}
		}
		for _, a := range details.Amenities {
			if err := tx.ProjectDetailRepo.SaveAmenity(ctx, a); err != nil {
				return err
			}
		}
		for _, d := range details.Disbursements {
			if err := tx.ProjectDetailRepo.SaveDisbursement(ctx, d); err != nil {
				return err
			}
		}
		return s.recordActivity(ctx, tx, userID, "Project "+project.ProjectName+" registered", entityProject, project.ProjectID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register project", slog.String("maharera_no", project.MahareraNo))
		return nil, err
	}

	s.afterCommit(ctx, s.event(domain.EventProjectRegistered, project.ProjectID, userID, map[string]int{
		"wings":  len(details.Wings),
		"floors": len(details.Floors),
		"flats":  len(details.Flats),
	}))
	s.LogInfo(ctx, "Project registered successfully",
		slog.String("project_id", project.ProjectID),
		slog.Int("flats", len(details.Flats)))
	return &details, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.repos.ProjectRepo.FindProjectByID(ctx, projectID)
}

func (s *projectService) ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error) {
	status := domain.ProjectStatus(params.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.Validationf("unknown project status %q", params.Status)
	}
	projects, err := s.repos.ProjectRepo.ListProjects(ctx, portsrepo.ProjectFilter{Status: status})
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) GetProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetails, error) {
	project, err := s.repos.ProjectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	details := domain.ProjectDetails{Project: *project}

	if details.Wings, err = s.repos.InventoryRepo.ListWings(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to list wings: %w", err)
	}
	for _, w := range details.Wings {
		floors, err := s.repos.InventoryRepo.ListFloors(ctx, w.WingID)
		if err != nil {
			return nil, fmt.Errorf("failed to list floors: %w", err)
		}
		details.Floors = append(details.Floors, floors...)
	}
	if details.Flats, err = s.repos.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{ProjectID: projectID}); err != nil {
		return nil, fmt.Errorf("failed to list flats: %w", err)
	}
	if details.BankDetails, err = s.repos.ProjectDetailRepo.ListBankDetails(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to list bank details: %w", err)
	}
	if details.Amenities, err = s.repos.ProjectDetailRepo.ListAmenities(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	if details.Disbursements, err = s.repos.ProjectDetailRepo.ListDisbursements(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to list disbursements: %w", err)
	}
	return &details, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error) {
	var updated *domain.Project
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		project, err := tx.ProjectRepo.FindProjectByID(ctx, projectID)
		if err != nil {
			return err
		}

		if req.ProjectName != nil {
			name := strings.TrimSpace(*req.ProjectName)
			if name == "" {
				return apperrors.Validationf("projectName cannot be empty")
			}
			project.ProjectName = name
		}
		if req.Status != nil {
			status := domain.ProjectStatus(*req.Status)
			if !status.IsValid() {
				return apperrors.Validationf("unknown project status %q", *req.Status)
			}
			project.Status = status
		}
		if req.Progress != nil {
			if *req.Progress < 0 || *req.Progress > 100 {
				return apperrors.Validationf("progress must be between 0 and 100")
			}
			project.Progress = *req.Progress
		}
		if req.StartDate != nil {
			if project.StartDate, err = dto.ParseOptionalDate(req.StartDate); err != nil {
				return apperrors.Validationf("startDate must be a YYYY-MM-DD date")
			}
		}
		if req.CompletionDate != nil {
			if project.CompletionDate, err = dto.ParseOptionalDate(req.CompletionDate); err != nil {
				return apperrors.Validationf("completionDate must be a YYYY-MM-DD date")
			}
		}
		if err := checkProjectDates(project.StartDate, project.CompletionDate); err != nil {
			return err
		}
		if req.MahareraNo != nil {
			mahareraNo := strings.ToUpper(strings.TrimSpace(*req.MahareraNo))
			if !validation.IsValidRERA(mahareraNo) {
				return apperrors.Validationf("mahareraNo must be P followed by 11 digits")
			}
			project.MahareraNo = mahareraNo
		}
		if req.ProjectAddress != nil {
			project.ProjectAddress = strings.TrimSpace(*req.ProjectAddress)
		}
		if req.LetterHeadFileURL != nil {
			project.LetterHeadFileURL = *req.LetterHeadFileURL
		}
		project.Touch(userID, s.now())

		if err := tx.ProjectRepo.UpdateProject(ctx, *project); err != nil {
			return err
		}
		updated = project
		return s.recordActivity(ctx, tx, userID, "Project "+project.ProjectName+" updated", entityProject, projectID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}
	s.afterCommit(ctx)
	return updated, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string, userID string) error {
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		active, err := tx.BookingRepo.ListBookings(ctx, portsrepo.BookingFilter{ProjectID: projectID, ActiveOnly: true})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperrors.Conflictf("project has %d active booking(s)", len(active))
		}
		now := s.now()
		wings, err := tx.InventoryRepo.ListWings(ctx, projectID)
		if err != nil {
			return err
		}
		for _, wing := range wings {
			floors, err := tx.InventoryRepo.ListFloors(ctx, wing.WingID)
			if err != nil {
				return err
			}
			flats, err := tx.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{WingID: wing.WingID})
			if err != nil {
				return err
			}
			if err := deleteFlatsAndFloors(ctx, tx, flats, floors, userID, now); err != nil {
				return err
			}
			if err := tx.InventoryRepo.MarkWingDeleted(ctx, wing.WingID, userID, now); err != nil {
				return err
			}
		}
		if err := tx.ProjectRepo.MarkProjectDeleted(ctx, projectID, userID, now); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Project deleted", entityProject, projectID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return err
	}
	s.afterCommit(ctx)
	return nil
}
