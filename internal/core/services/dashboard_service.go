package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
)

const recentActivityLimit = 5

type dashboardService struct {
	BaseService
	repos portsrepo.Repositories
	ttl   time.Duration
}

// NewDashboardService creates the dashboard service. Summaries are kept in the
// report cache for ttl when one is configured.
func NewDashboardService(repos portsrepo.Repositories, ttl time.Duration, options ...ServiceOption) portssvc.DashboardSvc {
	return &dashboardService{
		BaseService: newBaseService(options...),
		repos:       repos,
		ttl:         ttl,
	}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetDashboard(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to read cached dashboard")
		} else if ok {
			return cached, nil
		}
	}

	dashboard, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetDashboard(ctx, dashboard, s.ttl); err != nil {
			s.LogError(ctx, err, "Failed to cache dashboard")
		}
	}
	return dashboard, nil
}

func (s *dashboardService) build(ctx context.Context) (*domain.Dashboard, error) {
	counts, err := s.repos.ReportingRepo.CountEntities(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count entities")
		return nil, err
	}
	units, err := s.repos.ReportingRepo.UnitStatusCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unit statuses")
		return nil, err
	}
	followUps, err := s.repos.FollowUpRepo.ListFollowUps(ctx, portsrepo.FollowUpFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list follow-ups")
		return nil, err
	}
	recent, err := s.repos.ActivityRepo.ListRecentActivity(ctx, recentActivityLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent activity")
		return nil, err
	}
	if units == nil {
		units = []domain.UnitStatusCount{}
	}
	if recent == nil {
		recent = []domain.ActivityLog{}
	}

	s.LogDebug(ctx, "Dashboard rebuilt", slog.Int("projects", counts.Projects))
	return &domain.Dashboard{
		TotalProjects:  counts.Projects,
		TotalClients:   counts.Clients,
		TotalEnquiries: counts.Enquiries,
		TotalBookings:  counts.Bookings,
		ActiveBookings: counts.ActiveBookings,
		UnitStatus:     units,
		FollowUps:      domain.ComputeFollowUpStats(followUps, s.today(), s.loc()),
		RecentActivity: recent,
		GeneratedAt:    s.now(),
	}, nil
}
