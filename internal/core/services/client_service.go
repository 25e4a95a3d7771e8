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

const defaultClientPageSize = 50

// clientService implements the ClientSvcFacade interface
type clientService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewClientService creates a new client service with the provided options
func NewClientService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ClientSvcFacade {
	return &clientService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func normalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}

// buildClient validates the client fields and assembles a new client.
// It is shared by the enquiry and booking workflows.
func buildClient(req dto.CreateClientRequest, userID string, now time.Time) (domain.Client, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.PanNo = normalizePAN(req.PanNo)
	if err := validation.Struct(req); err != nil {
		return domain.Client{}, err
	}
	dob, err := dto.ParseOptionalDate(req.DOB)
	if err != nil {
		return domain.Client{}, apperrors.Validationf("dob must be a YYYY-MM-DD date")
	}
	return domain.Client{
		ClientID:     uuid.NewString(),
		ClientName:   strings.TrimSpace(req.ClientName),
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		DOB:          dob,
		City:         req.City,
		Address:      req.Address,
		Occupation:   req.Occupation,
		Company:      req.Company,
		PanNo:        req.PanNo,
		AadharNo:     req.AadharNo,
		AuditFields:  domain.NewAuditFields(userID, now),
	}, nil
}

// resolveClient returns the existing client referenced by clientID or builds
// a new one. Exactly one of the two must be requested.
func resolveClient(ctx context.Context, clients portsrepo.ClientReader, clientID string, createNew bool, newClient *dto.CreateClientRequest, userID string, now time.Time) (*domain.Client, bool, error) {
	switch {
	case createNew:
		if newClient == nil {
			return nil, false, apperrors.Validationf("client details are required to create a new client")
		}
		client, err := buildClient(*newClient, userID, now)
		if err != nil {
			return nil, false, err
		}
		return &client, true, nil
	case clientID != "":
		client, err := clients.FindClientByID(ctx, clientID)
		if err != nil {
			return nil, false, err
		}
		return client, false, nil
	default:
		return nil, false, apperrors.Validationf("select an existing client or create a new one")
	}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	client, err := buildClient(req, userID, s.now())
	if err != nil {
		return nil, err
	}

	err = s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		if err := tx.ClientRepo.SaveClient(ctx, client); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Client created", entityClient, client.ClientID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, err
	}
	s.afterCommit(ctx)

	s.LogInfo(ctx, "Client created successfully", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.repos.ClientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error) {
	if params.Limit <= 0 {
		params.Limit = defaultClientPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	clients, err := s.repos.ClientRepo.ListClients(ctx, portsrepo.ClientFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	return clients, nil
}

func (s *clientService) GetClientProfile(ctx context.Context, clientID string) (*domain.ClientProfile, error) {
	client, err := s.repos.ClientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	enquiries, err := s.repos.EnquiryRepo.ListEnquiries(ctx, portsrepo.EnquiryFilter{ClientID: clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client enquiries: %w", err)
	}
	bookings, err := s.repos.BookingRepo.ListBookings(ctx, portsrepo.BookingFilter{ClientID: clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client bookings: %w", err)
	}
	return &domain.ClientProfile{Client: *client, Enquiries: enquiries, Bookings: bookings}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	if req.PanNo != nil {
		pan := normalizePAN(*req.PanNo)
		req.PanNo = &pan
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var updated *domain.Client
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		client, err := tx.ClientRepo.FindClientByID(ctx, clientID)
		if err != nil {
			return err
		}

		if req.ClientName != nil {
			name := strings.TrimSpace(*req.ClientName)
			if name == "" {
				return apperrors.Validationf("clientName cannot be empty")
			}
			client.ClientName = name
		}
		if req.Email != nil {
			client.Email = strings.TrimSpace(*req.Email)
		}
		if req.MobileNumber != nil {
			client.MobileNumber = *req.MobileNumber
		}
		if req.DOB != nil {
			dob, err := dto.ParseOptionalDate(req.DOB)
			if err != nil {
				return apperrors.Validationf("dob must be a YYYY-MM-DD date")
			}
			client.DOB = dob
		}
		if req.City != nil {
			client.City = *req.City
		}
		if req.Address != nil {
			client.Address = *req.Address
		}
		if req.Occupation != nil {
			client.Occupation = *req.Occupation
		}
		if req.Company != nil {
			client.Company = *req.Company
		}
		if req.PanNo != nil {
			client.PanNo = *req.PanNo
		}
		if req.AadharNo != nil {
			client.AadharNo = *req.AadharNo
		}
		client.Touch(userID, s.now())

		if err := tx.ClientRepo.UpdateClient(ctx, *client); err != nil {
			return err
		}
		updated = client
		return s.recordActivity(ctx, tx, userID, "Client updated", entityClient, clientID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, err
	}
	s.afterCommit(ctx)
	return updated, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string, userID string) error {
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.Repositories) error {
		active, err := tx.BookingRepo.ListBookings(ctx, portsrepo.BookingFilter{ClientID: clientID, ActiveOnly: true})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperrors.Conflictf("client has %d active booking(s)", len(active))
		}
		if err := tx.ClientRepo.MarkClientDeleted(ctx, clientID, userID, s.now()); err != nil {
			return err
		}
		return s.recordActivity(ctx, tx, userID, "Client deleted", entityClient, clientID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return err
	}
	s.afterCommit(ctx)
	return nil
}
