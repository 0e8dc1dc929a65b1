package fieldsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldsync/fieldsync/database/mocks"
	"github.com/fieldsync/fieldsync/model"
)

func TestEnqueue(t *testing.T) {
	queue := newTestQueue(t)
	f := newTestFieldSync(t, queue, &mocks.MockCentralRepository{})
	workDay := fakeWorkDay()

	envelope, err := f.Enqueue(context.Background(), workDay, model.ActionInsert)
	require.NoError(t, err)
	assert.Equal(t, model.KindWorkDay, envelope.Kind)
	assert.Equal(t, model.TableWorkDays, envelope.TableName)
	assert.Equal(t, baseTime, envelope.InsertedAt)

	active, err := f.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, envelope.ID, active[0].ID)
}

func TestEnqueueRejectsInvalidEntity(t *testing.T) {
	queue := newTestQueue(t)
	f := newTestFieldSync(t, queue, &mocks.MockCentralRepository{})

	_, err := f.Enqueue(context.Background(), &model.RouteTransaction{IDRouteTransaction: "rt-1"}, model.ActionInsert)
	assert.Error(t, err)

	active, err := f.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestEnqueueDeleteSkipsEntityValidation(t *testing.T) {
	queue := newTestQueue(t)
	f := newTestFieldSync(t, queue, &mocks.MockCentralRepository{})

	envelope, err := f.Enqueue(context.Background(), &model.RouteTransaction{IDRouteTransaction: "rt-1"}, model.ActionDelete)
	require.NoError(t, err)
	assert.Equal(t, model.ActionDelete, envelope.Action)
}

func TestEnqueueStoreError(t *testing.T) {
	queue := &mocks.MockLocalQueueStore{}
	f, err := NewFieldSync(queue, &mocks.MockCentralRepository{})
	require.NoError(t, err)

	queue.On("InsertActive", mock.Anything, mock.Anything).Return(errors.New("readonly database"))

	_, err = f.Enqueue(context.Background(), fakeWorkDay(), model.ActionInsert)
	assert.ErrorContains(t, err, "readonly database")
}

func TestEnqueueBatchKeepsOrder(t *testing.T) {
	queue := newTestQueue(t)
	f := newTestFieldSync(t, queue, &mocks.MockCentralRepository{})

	var entities []model.Entity
	for i := 0; i < 5; i++ {
		entities = append(entities, fakeRouteTransactionOperationLine("rto-1"))
	}

	envelopes, err := f.EnqueueBatch(context.Background(), entities, model.ActionInsert)
	require.NoError(t, err)
	require.Len(t, envelopes, 5)

	active, err := f.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 5)
	for i := range envelopes {
		assert.Equal(t, envelopes[i].ID, active[i].ID)
	}
}

func TestEnqueueBatchIsAllOrNothing(t *testing.T) {
	queue := newTestQueue(t)
	f := newTestFieldSync(t, queue, &mocks.MockCentralRepository{})

	entities := []model.Entity{fakeInventoryOperationLine("io-1"), &model.InventoryOperationLine{}}
	_, err := f.EnqueueBatch(context.Background(), entities, model.ActionInsert)
	assert.Error(t, err)

	active, err := f.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	envelopes, err := f.EnqueueBatch(context.Background(), nil, model.ActionInsert)
	require.NoError(t, err)
	assert.Empty(t, envelopes)
}

func TestPurgeHistoric(t *testing.T) {
	queue := newTestQueue(t)
	central := &mocks.MockCentralRepository{}
	acceptAll(central)
	f := newTestFieldSync(t, queue, central)

	envelope, err := f.Enqueue(context.Background(), fakeWorkDay(), model.ActionInsert)
	require.NoError(t, err)
	require.True(t, f.RunSync(context.Background()))

	historic, err := f.ListHistoric(context.Background())
	require.NoError(t, err)
	require.Len(t, historic, 1)

	require.NoError(t, f.PurgeHistoric(context.Background(), envelope.ID))
	historic, err = f.ListHistoric(context.Background())
	require.NoError(t, err)
	assert.Empty(t, historic)

	assert.Error(t, f.PurgeHistoric(context.Background(), ""))
}
