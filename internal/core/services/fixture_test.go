package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
	"github.com/SscSPs/propease_crm/internal/core/services"
	"github.com/SscSPs/propease_crm/internal/dto"
	"github.com/SscSPs/propease_crm/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const adminID = "user-admin"

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// fixture wires every workflow service to one in-memory store holding a
// registered project with a single floor of two vacant flats and one client.
type fixture struct {
	now   time.Time
	repos portsrepo.RepositoryProvider

	projects  portssvc.ProjectSvcFacade
	details   portssvc.ProjectDetailSvcFacade
	inventory portssvc.InventorySvcFacade
	clients   portssvc.ClientSvcFacade
	enquiries portssvc.EnquirySvcFacade
	bookings  portssvc.BookingSvcFacade
	followUps portssvc.FollowUpSvcFacade
	dashboard portssvc.DashboardSvc

	projectID string
	flats     []domain.Flat
	clientID  string
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	mailer outbound.Mailer
	cache  outbound.ReportCache
}

func withMailer(m outbound.Mailer) fixtureOption {
	return func(c *fixtureConfig) { c.mailer = m }
}

func withCache(rc outbound.ReportCache) fixtureOption {
	return func(c *fixtureConfig) { c.cache = rc }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	ctx := context.Background()

	var cfg fixtureConfig
	for _, o := range opts {
		o(&cfg)
	}

	store, err := memory.NewStore("")
	require.NoError(t, err)
	f := &fixture{now: testNow, repos: memory.NewRepositoryProvider(store)}

	require.NoError(t, f.repos.UserRepo.SaveUser(ctx, domain.User{
		UserID:      adminID,
		Username:    "asha",
		Email:       "asha@propease.test",
		Name:        "Asha Admin",
		Role:        domain.RoleAdmin,
		AuditFields: domain.NewAuditFields("system", testNow),
	}))

	options := []services.ServiceOption{
		services.WithClock(func() time.Time { return f.now }),
		services.WithLocation(time.UTC),
	}
	if cfg.cache != nil {
		options = append(options, services.WithReportCache(cfg.cache))
	}
	f.projects = services.NewProjectService(f.repos, options...)
	f.details = services.NewProjectDetailService(f.repos, nil, options...)
	f.inventory = services.NewInventoryService(f.repos, options...)
	f.clients = services.NewClientService(f.repos, options...)
	f.enquiries = services.NewEnquiryService(f.repos, options...)
	f.bookings = services.NewBookingService(f.repos, options...)
	f.followUps = services.NewFollowUpService(f.repos, cfg.mailer, options...)
	f.dashboard = services.NewDashboardService(f.repos.Repositories, time.Minute, options...)

	registered, err := f.projects.RegisterProject(ctx, registerRequest(), adminID)
	require.NoError(t, err)
	f.projectID = registered.Project.ProjectID
	f.flats = registered.Flats
	sort.Slice(f.flats, func(i, j int) bool { return f.flats[i].UnitNumber < f.flats[j].UnitNumber })
	require.Len(t, f.flats, 2)

	client, err := f.clients.CreateClient(ctx, clientRequest("Ravi Kumar", "9876543210"), adminID)
	require.NoError(t, err)
	f.clientID = client.ClientID

	return f
}

// advance moves the pinned clock forward by whole days.
func (f *fixture) advance(days int) {
	f.now = f.now.AddDate(0, 0, days)
}

func (f *fixture) flatStatus(t *testing.T, propertyID string) domain.UnitStatus {
	t.Helper()
	flat, err := f.inventory.GetFlat(context.Background(), propertyID)
	require.NoError(t, err)
	return flat.Status
}

func (f *fixture) book(t *testing.T, propertyID string) *domain.BookingResult {
	t.Helper()
	result, err := f.bookings.BookUnit(context.Background(), bookRequest(propertyID, f.clientID), adminID)
	require.NoError(t, err)
	return result
}

func registerRequest() dto.RegisterProjectRequest {
	return dto.RegisterProjectRequest{
		Project: dto.CreateProjectRequest{
			ProjectName:    "Green Heights",
			MahareraNo:     "P52100012345",
			ProjectAddress: "Baner, Pune",
		},
		Wings: []dto.RegisterWingRequest{{
			CreateWingRequest: dto.CreateWingRequest{WingName: "A", NoOfFloors: 1, NoOfProperties: 2},
			Floors: []dto.CreateFloorRequest{{
				FloorNo:      1,
				FloorName:    "First",
				PropertyType: "Residential",
				Area:         decimal.NewFromInt(650),
				Quantity:     2,
				BHK:          "2BHK",
			}},
		}},
		Disbursements: []dto.CreateDisbursementRequest{
			{DisbursementTitle: "Booking", Percentage: decimal.NewFromInt(10)},
			{DisbursementTitle: "Possession", Percentage: decimal.NewFromInt(90)},
		},
	}
}

func clientRequest(name, mobile string) dto.CreateClientRequest {
	return dto.CreateClientRequest{
		ClientName:   name,
		Email:        "client" + mobile + "@example.com",
		MobileNumber: mobile,
		City:         "Pune",
	}
}

func bookRequest(propertyID, clientID string) dto.BookUnitRequest {
	gst := decimal.NewFromInt(18)
	return dto.BookUnitRequest{
		PropertyID:      propertyID,
		ClientID:        clientID,
		BookingAmount:   decimal.NewFromInt(50000),
		AgreementAmount: decimal.NewFromInt(5000000),
		GSTPercentage:   &gst,
		ChequeNo:        "000123",
	}
}
