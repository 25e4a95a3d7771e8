package seed

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/SscSPs/propease_crm/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSeedLoadsIntoMemoryStore(t *testing.T) {
	doc, err := Demo()
	require.NoError(t, err)
	assert.Equal(t, "PropEase Real Estate", doc.Organization.Name)

	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	snap, err := Build(doc, now, time.UTC)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 4)
	assert.Len(t, snap.Projects, 3)
	assert.Len(t, snap.Clients, 10)
	assert.Len(t, snap.Flats, 40, "two wings of five floors with four flats each")
	assert.True(t, domain.ScheduleIsComplete(snap.Disbursements))

	store, err := memory.NewStore("")
	require.NoError(t, err)
	require.True(t, store.IsEmpty())
	require.NoError(t, store.Import(snap))
	repos := memory.NewRepositoryProvider(store)

	ctx := context.Background()
	booked, err := repos.InventoryRepo.ListFlats(ctx, portsrepo.FlatFilter{Status: domain.UnitStatusBooked})
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, "A-003", booked[0].UnitNumber)

	bookings, err := repos.BookingRepo.ListBookingsForUnit(ctx, booked[0].PropertyID)
	require.NoError(t, err)
	assert.Equal(t, booked[0].Status, domain.DeriveUnitStatus(bookings))

	pending, err := repos.FollowUpRepo.ListFollowUps(ctx, portsrepo.FollowUpFilter{Status: domain.FollowUpStatusPending})
	require.NoError(t, err)
	stats := domain.ComputeFollowUpStats(pending, domain.CalendarDate(now, time.UTC), time.UTC)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.DueToday)

	admin, err := repos.UserRepo.FindUserByUsername(ctx, "admin@propease.test")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.PasswordHash)
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	doc, err := Parse([]byte(`
users:
  - {username: a, password: secret1, name: A, role: ADMIN}
clients:
  - {clientName: C, email: c@example.com, mobileNumber: "9876543210"}
bookings:
  - {project: Nowhere, client: c@example.com, unit: A-001, bookingAmount: "1", agreementAmount: "1", bookingDate: "2024-01-01", agent: a}
`))
	require.NoError(t, err)
	_, err = Build(doc, time.Now(), time.UTC)
	assert.ErrorContains(t, err, "unknown unit")
}
