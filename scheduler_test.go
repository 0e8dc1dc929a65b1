package fieldsync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldsync/fieldsync/database/mocks"
	"github.com/fieldsync/fieldsync/model"
)

func TestNewSyncSchedulerClampsInterval(t *testing.T) {
	f, err := NewFieldSync(&mocks.MockLocalQueueStore{}, &mocks.MockCentralRepository{})
	require.NoError(t, err)

	assert.Equal(t, MinimumSyncInterval, NewSyncScheduler(f, time.Minute).Interval())
	assert.Equal(t, time.Hour, NewSyncScheduler(f, time.Hour).Interval())
}

func TestSyncSchedulerRunsPasses(t *testing.T) {
	queue := &mocks.MockLocalQueueStore{}
	f, err := NewFieldSync(queue, &mocks.MockCentralRepository{})
	require.NoError(t, err)

	passes := make(chan struct{}, 10)
	queue.On("ListActive", mock.Anything).Run(func(mock.Arguments) {
		select {
		case passes <- struct{}{}:
		default:
		}
	}).Return([]model.RecordEnvelope{}, nil)

	scheduler := newSyncScheduler(f, 10*time.Millisecond)
	scheduler.Start(context.Background())
	scheduler.Start(context.Background())
	assert.True(t, scheduler.IsRunning())

	select {
	case <-passes:
	case <-time.After(2 * time.Second):
		t.Fatal("no sync pass was triggered")
	}

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())
	assert.Eventually(t, scheduler.LastPassSucceeded, time.Second, 10*time.Millisecond)
	scheduler.Stop()
}

func TestSyncSchedulerStopsOnContextCancel(t *testing.T) {
	f, err := NewFieldSync(&mocks.MockLocalQueueStore{}, &mocks.MockCentralRepository{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	scheduler := newSyncScheduler(f, time.Hour)
	scheduler.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return !scheduler.IsRunning() }, time.Second, 10*time.Millisecond)
}
