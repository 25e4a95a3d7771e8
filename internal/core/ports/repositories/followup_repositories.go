package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// FollowUpFilter narrows ListFollowUps. DueOnOrBefore compares calendar dates.
type FollowUpFilter struct {
	EnquiryID     string
	Status        domain.FollowUpStatus
	DueOnOrBefore *time.Time
}

// FollowUpReader defines read operations for follow-ups and their notes.
type FollowUpReader interface {
	FindFollowUpByID(ctx context.Context, followUpID string) (*domain.FollowUp, error)
	ListFollowUps(ctx context.Context, filter FollowUpFilter) ([]domain.FollowUp, error)
	// ListNodes returns the notes of a follow-up ordered by their timestamp.
	ListNodes(ctx context.Context, followUpID string) ([]domain.FollowUpNode, error)
}

// FollowUpWriter defines write operations for follow-ups and their notes.
type FollowUpWriter interface {
	SaveFollowUp(ctx context.Context, followUp domain.FollowUp) error
	UpdateFollowUp(ctx context.Context, followUp domain.FollowUp) error
	SaveNode(ctx context.Context, node domain.FollowUpNode) error
}

// FollowUpRepositoryFacade combines all follow-up repository interfaces
type FollowUpRepositoryFacade interface {
	FollowUpReader
	FollowUpWriter
}
