package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// FollowUpReaderSvc defines read operations for follow-ups.
type FollowUpReaderSvc interface {
	GetFollowUpByID(ctx context.Context, followUpID string) (*domain.FollowUp, error)
	ListFollowUps(ctx context.Context, params dto.ListFollowUpsParams) ([]domain.FollowUp, error)
	ListNodes(ctx context.Context, followUpID string) ([]domain.FollowUpNode, error)
	GetTimeline(ctx context.Context, followUpID string) ([]domain.TimelineEntry, error)
	GetStats(ctx context.Context) (domain.FollowUpStats, error)
}

// FollowUpWriterSvc defines write operations for follow-ups.
type FollowUpWriterSvc interface {
	CreateFollowUp(ctx context.Context, req dto.CreateFollowUpRequest, userID string) (*domain.FollowUp, error)
	CompleteFollowUp(ctx context.Context, followUpID string, req dto.CompleteFollowUpRequest, userID string) (*domain.FollowUpCompletion, error)
	AddNote(ctx context.Context, followUpID string, body string, userID string) (*domain.FollowUpNode, error)
}

// FollowUpReminderSvc is used by the background reminder worker.
type FollowUpReminderSvc interface {
	// SendDueReminders notifies about follow-ups due today or overdue that have
	// not been reminded today. It returns the number of reminders created.
	SendDueReminders(ctx context.Context) (int, error)
}

// FollowUpSvcFacade combines all follow-up service interfaces
type FollowUpSvcFacade interface {
	FollowUpReaderSvc
	FollowUpWriterSvc
	FollowUpReminderSvc
}
