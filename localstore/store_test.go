package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsync/fieldsync/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "fieldsync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fakeEnvelope(t *testing.T, insertedAt time.Time) model.RecordEnvelope {
	t.Helper()
	operation := &model.InventoryOperation{
		IDInventoryOperation:     gofakeit.UUID(),
		IDWorkDay:                gofakeit.UUID(),
		IDInventoryOperationType: gofakeit.UUID(),
		Date:                     insertedAt,
	}
	envelope, err := model.NewEnvelope(operation, model.ActionInsert, insertedAt)
	require.NoError(t, err)
	return envelope
}

func TestOpenAppliesMigrations(t *testing.T) {
	store := newTestStore(t)

	for _, table := range []string{"sync_queue", "sync_historic", model.TableWorkDays, model.TableRouteTransactionOperationLines} {
		var name string
		err := store.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	n, err := Migrate(store.DB(), migrate.Up)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMigrateDown(t *testing.T) {
	store := newTestStore(t)

	n, err := Migrate(store.DB(), migrate.Down)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.ListActive(context.Background())
	assert.Error(t, err)
}

func TestInsertAndListActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	later := fakeEnvelope(t, base.Add(time.Minute))
	earlier := fakeEnvelope(t, base)
	require.NoError(t, store.InsertActive(ctx, later))
	require.NoError(t, store.InsertActive(ctx, earlier))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, earlier.ID, active[0].ID)
	assert.Equal(t, later.ID, active[1].ID)

	got := active[0]
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, model.KindInventoryOperation, got.Kind)
	assert.Equal(t, model.TableInventoryOperations, got.TableName)
	assert.Equal(t, model.ActionInsert, got.Action)
	assert.True(t, base.Equal(got.InsertedAt))
	assert.JSONEq(t, string(earlier.Payload), string(got.Payload))
}

func TestListActiveEmpty(t *testing.T) {
	store := newTestStore(t)

	active, err := store.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestInsertActiveDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	envelope := fakeEnvelope(t, time.Now())

	require.NoError(t, store.InsertActive(ctx, envelope))
	assert.Error(t, store.InsertActive(ctx, envelope))
}

func TestInsertActiveBatchIsAtomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	first := fakeEnvelope(t, time.Now())
	second := fakeEnvelope(t, time.Now())
	second.ID = first.ID

	assert.Error(t, store.InsertActiveBatch(ctx, []model.RecordEnvelope{first, second}))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUpdateActiveBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	envelope := fakeEnvelope(t, time.Now())
	require.NoError(t, store.InsertActive(ctx, envelope))

	envelope.Status = model.StatusFailed
	require.NoError(t, store.UpdateActiveBatch(ctx, []model.RecordEnvelope{envelope}))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, model.StatusFailed, active[0].Status)
}

func TestArchiveFlow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	kept := fakeEnvelope(t, time.Now())
	archived := fakeEnvelope(t, time.Now())
	require.NoError(t, store.InsertActiveBatch(ctx, []model.RecordEnvelope{kept, archived}))

	archived.Status = model.StatusSuccess
	require.NoError(t, store.InsertHistoricBatch(ctx, []model.RecordEnvelope{archived}))
	require.NoError(t, store.DeleteActiveBatch(ctx, []model.RecordEnvelope{archived}))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	historic, err := store.ListHistoric(ctx)
	require.NoError(t, err)
	require.Len(t, historic, 1)
	assert.Equal(t, archived.ID, historic[0].ID)
	assert.Equal(t, model.StatusSuccess, historic[0].Status)

	require.NoError(t, store.DeleteHistoricByID(ctx, archived.ID))
	historic, err = store.ListHistoric(ctx)
	require.NoError(t, err)
	assert.Empty(t, historic)
}

func TestArchiveBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	kept := fakeEnvelope(t, time.Now())
	archived := fakeEnvelope(t, time.Now())
	require.NoError(t, store.InsertActiveBatch(ctx, []model.RecordEnvelope{kept, archived}))

	archived.Status = model.StatusFailed
	require.NoError(t, store.ArchiveBatch(ctx, []model.RecordEnvelope{archived}))

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	historic, err := store.ListHistoric(ctx)
	require.NoError(t, err)
	require.Len(t, historic, 1)
	assert.Equal(t, archived.ID, historic[0].ID)
	assert.Equal(t, model.StatusFailed, historic[0].Status)
}

func TestArchiveBatchRollsBackWhenDeleteFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	envelope := fakeEnvelope(t, time.Now())
	require.NoError(t, store.InsertActive(ctx, envelope))

	_, err := store.DB().ExecContext(ctx, `
		CREATE TRIGGER block_queue_delete BEFORE DELETE ON sync_queue
		BEGIN SELECT RAISE(ABORT, 'queue delete blocked'); END`)
	require.NoError(t, err)

	envelope.Status = model.StatusSuccess
	err = store.ArchiveBatch(ctx, []model.RecordEnvelope{envelope})
	assert.ErrorContains(t, err, "queue delete blocked")

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, model.StatusPending, active[0].Status)

	historic, err := store.ListHistoric(ctx)
	require.NoError(t, err)
	assert.Empty(t, historic)
}

func TestEmptyBatchesAreNoops(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.InsertActiveBatch(ctx, nil))
	assert.NoError(t, store.InsertHistoricBatch(ctx, nil))
	assert.NoError(t, store.UpdateActiveBatch(ctx, nil))
	assert.NoError(t, store.DeleteActiveBatch(ctx, nil))
	assert.NoError(t, store.ArchiveBatch(ctx, nil))
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldsync.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	envelope := fakeEnvelope(t, time.Now())
	require.NoError(t, store.InsertActive(ctx, envelope))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	active, err := reopened.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, envelope.ID, active[0].ID)
}

func TestInsertHistoricBatchTwiceKeepsOneRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	envelope := fakeEnvelope(t, time.Now())

	envelope.Status = model.StatusFailed
	require.NoError(t, store.InsertHistoricBatch(ctx, []model.RecordEnvelope{envelope}))
	envelope.Status = model.StatusSuccess
	require.NoError(t, store.InsertHistoricBatch(ctx, []model.RecordEnvelope{envelope}))

	historic, err := store.ListHistoric(ctx)
	require.NoError(t, err)
	require.Len(t, historic, 1)
	assert.Equal(t, model.StatusSuccess, historic[0].Status)
}
