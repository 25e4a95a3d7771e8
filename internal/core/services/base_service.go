package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock     domain.Clock
	location  *time.Location
	publisher outbound.EventPublisher
	cache     outbound.ReportCache
}

// ServiceOption is a functional option shared by every service constructor.
type ServiceOption func(*BaseService)

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock domain.Clock) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithLocation sets the zone whose calendar decides "today".
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		s.location = loc
	}
}

// WithEventPublisher adds the broker that receives events after commit.
func WithEventPublisher(p outbound.EventPublisher) ServiceOption {
	return func(s *BaseService) {
		s.publisher = p
	}
}

// WithReportCache adds the dashboard cache invalidated after writes.
func WithReportCache(c outbound.ReportCache) ServiceOption {
	return func(s *BaseService) {
		s.cache = c
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{clock: time.Now, location: time.UTC}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}

func (s *BaseService) loc() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// today is the current calendar date in the configured zone.
func (s *BaseService) today() time.Time {
	return domain.CalendarDate(s.now(), s.loc())
}

// afterCommit publishes events and drops the cached dashboard. Failures are
// logged only: the write they follow has already been committed.
func (s *BaseService) afterCommit(ctx context.Context, events ...domain.Event) {
	if s.publisher != nil {
		for _, event := range events {
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.LogError(ctx, err, "Failed to publish event",
					slog.String("event_type", string(event.Type)),
					slog.String("entity_id", event.EntityID))
			}
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateDashboard(ctx); err != nil {
			s.LogError(ctx, err, "Failed to invalidate dashboard cache")
		}
	}
}

func (s *BaseService) event(eventType domain.EventType, entityID, actorID string, payload any) domain.Event {
	return domain.Event{
		Type:       eventType,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: s.now(),
		Payload:    payload,
	}
}

// actorName resolves the display name of a user, falling back to the id for
// system actors and deleted users.
func (s *BaseService) actorName(ctx context.Context, users portsrepo.UserReader, userID string) string {
	if users == nil || userID == "" {
		return userID
	}
	user, err := users.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve actor name", slog.String("user_id", userID))
		}
		return userID
	}
	return user.Name
}

// recordActivity appends to the activity feed through the repositories of the
// surrounding transaction.
func (s *BaseService) recordActivity(ctx context.Context, tx portsrepo.Repositories, userID, action, entityType, entityID string) error {
	entry := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		UserID:     userID,
		UserName:   s.actorName(ctx, tx.UserRepo, userID),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  s.now(),
	}
	return tx.ActivityRepo.SaveActivity(ctx, entry)
}

// Entity types recorded in the activity feed.
const (
	entityProject  = "project"
	entityClient   = "client"
	entityEnquiry  = "enquiry"
	entityBooking  = "booking"
	entityFollowUp = "followUp"
	entityUser     = "user"
)
