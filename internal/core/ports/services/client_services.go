package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// ClientReaderSvc defines read operations for clients.
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error)
	GetClientProfile(ctx context.Context, clientID string) (*domain.ClientProfile, error)
}

// ClientWriterSvc defines write operations for clients.
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID string, userID string) error
}

// ClientSvcFacade combines all client service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
