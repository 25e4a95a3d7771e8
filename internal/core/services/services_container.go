package services

import (
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/platform/config"
)

// Adapters are the outbound dependencies shared by the services. Nil fields
// disable the corresponding side effect.
type Adapters struct {
	Publisher outbound.EventPublisher
	Mailer    outbound.Mailer
	Cache     outbound.ReportCache
	Storage   outbound.DocumentStorage
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, adapters Adapters) *portssvc.ServiceContainer {
	options := []ServiceOption{WithLocation(cfg.Location)}
	if adapters.Publisher != nil {
		options = append(options, WithEventPublisher(adapters.Publisher))
	}
	if adapters.Cache != nil {
		options = append(options, WithReportCache(adapters.Cache))
	}

	container := &portssvc.ServiceContainer{}

	container.Project = NewProjectService(repos, options...)
	container.ProjectDetail = NewProjectDetailService(repos, adapters.Storage, options...)
	container.Inventory = NewInventoryService(repos, options...)
	container.Client = NewClientService(repos, options...)
	container.Enquiry = NewEnquiryService(repos, options...)
	container.Booking = NewBookingService(repos, options...)
	container.FollowUp = NewFollowUpService(repos, adapters.Mailer, options...)
	container.Notification = NewNotificationService(repos.NotificationRepo, options...)
	container.Dashboard = NewDashboardService(repos.Repositories, cfg.DashboardCacheTTL, options...)

	// Users and tokens do not touch the dashboard or the broker.
	container.User = NewUserService(repos.UserRepo, WithLocation(cfg.Location))
	container.TokenService = NewTokenService(cfg, repos.UserRepo)
	container.Auth = NewAuthService(container.User, container.TokenService)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
