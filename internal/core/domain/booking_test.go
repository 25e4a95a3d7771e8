package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingAmounts(t *testing.T) {
	b := Booking{
		AgreementAmount: decimal.NewFromInt(5000000),
		GSTPercentage:   decimal.NewFromInt(18),
	}
	assert.Equal(t, "900000", b.GSTAmount().String())
	assert.Equal(t, "5900000", b.TotalAmount().String())

	b.AgreementAmount = decimal.RequireFromString("1234567.89")
	b.GSTPercentage = decimal.RequireFromString("5")
	assert.Equal(t, "61728.39", b.GSTAmount().String())
}

func TestDeriveUnitStatus(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	booking := func(id string, created time.Time) Booking {
		return Booking{BookingID: id, AuditFields: AuditFields{CreatedAt: created}}
	}

	assert.Equal(t, UnitStatusVacant, DeriveUnitStatus(nil))

	cancelled := booking("b1", t0)
	cancelled.IsCancelled = true
	assert.Equal(t, UnitStatusVacant, DeriveUnitStatus([]Booking{cancelled}))

	deleted := booking("b2", t0)
	deleted.IsDeleted = true
	assert.Equal(t, UnitStatusVacant, DeriveUnitStatus([]Booking{cancelled, deleted}))

	live := booking("b3", t0.Add(time.Hour))
	assert.Equal(t, UnitStatusBooked, DeriveUnitStatus([]Booking{cancelled, live}))

	live.IsRegistered = true
	assert.Equal(t, UnitStatusRegistered, DeriveUnitStatus([]Booking{cancelled, live}))
}

func TestActiveBookingPrefersNewest(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	older := Booking{BookingID: "b-older", AuditFields: AuditFields{CreatedAt: t0}}
	newer := Booking{BookingID: "b-newer", AuditFields: AuditFields{CreatedAt: t0.Add(time.Minute)}}
	sameTimeA := Booking{BookingID: "a", AuditFields: AuditFields{CreatedAt: t0}}
	sameTimeZ := Booking{BookingID: "z", AuditFields: AuditFields{CreatedAt: t0}}

	active := ActiveBooking([]Booking{older, newer})
	require.NotNil(t, active)
	assert.Equal(t, "b-newer", active.BookingID)

	active = ActiveBooking([]Booking{sameTimeA, sameTimeZ})
	require.NotNil(t, active)
	assert.Equal(t, "z", active.BookingID)
}

func TestUnitNumber(t *testing.T) {
	assert.Equal(t, "A-203", UnitNumber("A", 2, 3))
	assert.Equal(t, "B-1012", UnitNumber("B", 10, 12))
	assert.Equal(t, "C-001", UnitNumber("C", 0, 1))
}

func TestUnitStatusCount(t *testing.T) {
	var c UnitStatusCount
	for _, s := range []UnitStatus{UnitStatusVacant, UnitStatusVacant, UnitStatusBooked, UnitStatusRegistered} {
		c.Add(s)
	}
	assert.Equal(t, UnitStatusCount{Vacant: 2, Booked: 1, Registered: 1, Total: 4}, c)
}

func TestDisbursementSchedule(t *testing.T) {
	stages := []Disbursement{
		{Percentage: decimal.NewFromInt(10)},
		{Percentage: decimal.RequireFromString("40.5")},
		{Percentage: decimal.RequireFromString("49.5")},
		{Percentage: decimal.NewFromInt(30), IsDeleted: true},
	}
	assert.True(t, DisbursementTotal(stages).Equal(decimal.NewFromInt(100)))
	assert.True(t, ScheduleIsComplete(stages))
	assert.False(t, ScheduleIsComplete(stages[:2]))
}
