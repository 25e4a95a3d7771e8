package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard_BuildsAndCaches(t *testing.T) {
	cache := new(MockReportCache)
	cache.On("InvalidateDashboard", mock.Anything).Return(nil)
	f := newFixture(t, withCache(cache))
	ctx := context.Background()
	f.book(t, f.flats[0].PropertyID)

	cache.On("GetDashboard", mock.Anything).Return(nil, false, nil).Once()
	cache.On("SetDashboard", mock.Anything, mock.AnythingOfType("*domain.Dashboard"), time.Minute).Return(nil).Once()

	d, err := f.dashboard.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalProjects)
	assert.Equal(t, 1, d.TotalClients)
	assert.Equal(t, 1, d.TotalBookings)
	assert.Equal(t, 1, d.ActiveBookings)
	require.Len(t, d.UnitStatus, 1)
	assert.Equal(t, 1, d.UnitStatus[0].Vacant)
	assert.Equal(t, 1, d.UnitStatus[0].Booked)
	assert.Equal(t, 2, d.UnitStatus[0].Total)
	assert.LessOrEqual(t, len(d.RecentActivity), 5)
	assert.NotEmpty(t, d.RecentActivity)
	assert.Equal(t, testNow, d.GeneratedAt)

	cached := &domain.Dashboard{TotalProjects: 42}
	cache.On("GetDashboard", mock.Anything).Return(cached, true, nil).Once()
	d, err = f.dashboard.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Same(t, cached, d)

	cache.AssertExpectations(t)
}

func TestGetDashboard_CacheErrorsFallBackToStore(t *testing.T) {
	cache := new(MockReportCache)
	cache.On("InvalidateDashboard", mock.Anything).Return(assert.AnError)
	f := newFixture(t, withCache(cache))

	cache.On("GetDashboard", mock.Anything).Return(nil, false, assert.AnError).Once()
	cache.On("SetDashboard", mock.Anything, mock.Anything, time.Minute).Return(assert.AnError).Once()

	d, err := f.dashboard.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalProjects)
	cache.AssertExpectations(t)
}
