package fieldsync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldsync/fieldsync/database/mocks"
	"github.com/fieldsync/fieldsync/localstore"
	"github.com/fieldsync/fieldsync/model"
)

var baseTime = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

func fixedClock() func() time.Time {
	return func() time.Time { return baseTime }
}

func newTestQueue(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestFieldSync(t *testing.T, queue *localstore.Store, central *mocks.MockCentralRepository, opts ...Option) *FieldSync {
	t.Helper()
	opts = append([]Option{withClock(fixedClock())}, opts...)
	f, err := NewFieldSync(queue, central, opts...)
	require.NoError(t, err)
	return f
}

// queueEntity stores an envelope for entity inserted offset after baseTime.
func queueEntity(t *testing.T, queue *localstore.Store, entity model.Entity, action model.Action, offset time.Duration) model.RecordEnvelope {
	t.Helper()
	envelope, err := model.NewEnvelope(entity, action, baseTime.Add(offset))
	require.NoError(t, err)
	require.NoError(t, queue.InsertActive(context.Background(), envelope))
	return envelope
}

func fakeWorkDay() *model.WorkDay {
	return &model.WorkDay{
		IDWorkDay:      gofakeit.UUID(),
		IDRoute:        gofakeit.UUID(),
		IDRouteDay:     gofakeit.UUID(),
		StartDate:      baseTime,
		StartPettyCash: decimal.NewFromInt(int64(gofakeit.Number(100, 500))),
	}
}

func fakeInventoryOperation(workDayID string) *model.InventoryOperation {
	return &model.InventoryOperation{
		IDInventoryOperation:     gofakeit.UUID(),
		IDWorkDay:                workDayID,
		IDInventoryOperationType: gofakeit.UUID(),
		SignConfirmation:         "1",
		Date:                     baseTime,
		State:                    1,
	}
}

func fakeInventoryOperationLine(operationID string) *model.InventoryOperationLine {
	return &model.InventoryOperationLine{
		IDProductOperationDescription: gofakeit.UUID(),
		IDInventoryOperation:          operationID,
		IDProduct:                     gofakeit.UUID(),
		Amount:                        gofakeit.Number(1, 40),
		PriceAtMoment:                 decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		CreatedAt:                     baseTime,
	}
}

func fakeRouteTransaction(workDayID string) *model.RouteTransaction {
	return &model.RouteTransaction{
		IDRouteTransaction: gofakeit.UUID(),
		IDWorkDay:          workDayID,
		IDStore:            gofakeit.UUID(),
		IDPaymentMethod:    gofakeit.UUID(),
		Date:               baseTime,
		State:              1,
	}
}

func fakeRouteTransactionOperation(transactionID string) *model.RouteTransactionOperation {
	return &model.RouteTransactionOperation{
		IDRouteTransactionOperation:     gofakeit.UUID(),
		IDRouteTransaction:              transactionID,
		IDRouteTransactionOperationType: gofakeit.UUID(),
		State:                           1,
	}
}

func fakeRouteTransactionOperationLine(operationID string) *model.RouteTransactionOperationLine {
	return &model.RouteTransactionOperationLine{
		IDRouteTransactionOperationDescription: gofakeit.UUID(),
		IDRouteTransactionOperation:            operationID,
		IDProduct:                              gofakeit.UUID(),
		Amount:                                 gofakeit.Number(1, 10),
		PriceAtMoment:                          decimal.NewFromInt(15),
		State:                                  1,
	}
}

func created() model.Result  { return model.Result{Code: 201, Message: "created"} }
func updated() model.Result  { return model.Result{Code: 200, Message: "updated"} }
func conflict() model.Result { return model.Result{Code: 409, Message: "duplicate key"} }
func failure() model.Result  { return model.Result{Code: 500, Message: "connection reset"} }

// acceptAll makes every central insert and update succeed.
func acceptAll(central *mocks.MockCentralRepository) {
	for _, method := range []string{
		"InsertWorkDay", "InsertInventoryOperation", "InsertInventoryOperationLine",
		"InsertRouteTransaction", "InsertRouteTransactionOperation", "InsertRouteTransactionOperationLine",
	} {
		central.On(method, mock.Anything, mock.Anything).Return(created()).Maybe()
	}
	for _, method := range []string{
		"UpdateWorkDay", "UpdateInventoryOperation", "UpdateInventoryOperationLine",
		"UpdateRouteTransaction", "UpdateRouteTransactionOperation", "UpdateRouteTransactionOperationLine",
	} {
		central.On(method, mock.Anything, mock.Anything).Return(updated()).Maybe()
	}
}

type recordedFailure struct {
	envelope model.RecordEnvelope
	cause    error
}

type recordingNotifier struct {
	failures []recordedFailure
}

func (r *recordingNotifier) NotifyRecordFailure(_ context.Context, envelope model.RecordEnvelope, cause error) error {
	r.failures = append(r.failures, recordedFailure{envelope: envelope, cause: cause})
	return nil
}
