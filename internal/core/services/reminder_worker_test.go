package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReminderSvc struct {
	mock.Mock
}

func (m *MockReminderSvc) SendDueReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestReminderWorker_StopsWhenContextIsCancelled(t *testing.T) {
	ran := make(chan struct{}, 1)
	reminders := new(MockReminderSvc)
	reminders.On("SendDueReminders", mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}).
		Return(1, nil)

	worker := services.NewReminderWorker(reminders, time.Hour, time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := worker.Start(ctx)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("first reminder run did not happen on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker kept running after cancellation")
	}
	require.True(t, reminders.AssertNumberOfCalls(t, "SendDueReminders", 1))
}
