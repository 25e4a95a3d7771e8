package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// ClientFilter narrows ListClients. Search matches name, e-mail or mobile number.
type ClientFilter struct {
	Search string
	Limit  int
	Offset int
}

// ClientReader defines read operations for client data
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	MarkClientDeleted(ctx context.Context, clientID string, deletedBy string, at time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
