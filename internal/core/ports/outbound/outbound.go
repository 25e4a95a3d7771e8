// Package outbound declares the ports the core uses to reach infrastructure
// other than the primary store: the message broker, e-mail, the dashboard
// cache and document storage.
package outbound

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// EventPublisher publishes domain events after a workflow has committed.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// MailMessage is a single outgoing e-mail.
type MailMessage struct {
	To       []string
	Subject  string
	HTMLBody string
}

// Mailer sends e-mail.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// ReportCache caches the dashboard summary.
type ReportCache interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, bool, error)
	SetDashboard(ctx context.Context, dashboard *domain.Dashboard, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error
}

// DocumentStorage keeps uploaded file contents addressed by key.
type DocumentStorage interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
