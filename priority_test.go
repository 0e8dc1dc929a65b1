package fieldsync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsync/fieldsync/model"
)

func TestTier(t *testing.T) {
	assert.Equal(t, 0, Tier(model.KindWorkDay))
	assert.Equal(t, 1, Tier(model.KindInventoryOperation))
	assert.Equal(t, 1, Tier(model.KindRouteTransaction))
	assert.Equal(t, 2, Tier(model.KindInventoryOperationLine))
	assert.Equal(t, 2, Tier(model.KindRouteTransactionOperation))
	assert.Equal(t, 3, Tier(model.KindRouteTransactionOperationLine))
	assert.Equal(t, 9, Tier(model.KindUnrecognized))
}

func TestPriority(t *testing.T) {
	workDay, err := model.NewEnvelope(fakeWorkDay(), model.ActionUpdate, baseTime)
	require.NoError(t, err)
	line, err := model.NewEnvelope(fakeRouteTransactionOperationLine("rto-1"), model.ActionDelete, baseTime)
	require.NoError(t, err)

	assert.Equal(t, 1, Priority(workDay))
	assert.Equal(t, 32, Priority(line))
	assert.Equal(t, 90, Priority(legacyEnvelope("", `{"name":"x"}`)))
}

func TestSortByPriority(t *testing.T) {
	mk := func(entity model.Entity, action model.Action, offset time.Duration) model.RecordEnvelope {
		envelope, err := model.NewEnvelope(entity, action, baseTime.Add(offset))
		require.NoError(t, err)
		return envelope
	}

	workDay := fakeWorkDay()
	operation := fakeInventoryOperation(workDay.IDWorkDay)
	transaction := fakeRouteTransaction(workDay.IDWorkDay)

	lineEnv := mk(fakeInventoryOperationLine(operation.IDInventoryOperation), model.ActionInsert, 0)
	opUpdate := mk(operation, model.ActionUpdate, time.Second)
	txInsert := mk(transaction, model.ActionInsert, 3*time.Second)
	opInsert := mk(operation, model.ActionInsert, 2*time.Second)
	wdInsert := mk(workDay, model.ActionInsert, 4*time.Second)
	unknown := legacyEnvelope("", `{"unexpected":true}`)
	unknown.InsertedAt = baseTime.Add(-time.Hour)

	envelopes := []model.RecordEnvelope{unknown, lineEnv, opUpdate, txInsert, opInsert, wdInsert}
	SortByPriority(envelopes)

	ids := make([]string, len(envelopes))
	for i, envelope := range envelopes {
		ids[i] = envelope.ID
	}
	assert.Equal(t, []string{wdInsert.ID, opInsert.ID, txInsert.ID, opUpdate.ID, lineEnv.ID, unknown.ID}, ids)
}

func TestSortByPriorityTieBreaksOnID(t *testing.T) {
	payload := json.RawMessage(`{"id_work_day":"wd-1","id_route":"r-1"}`)
	b := model.RecordEnvelope{ID: "rec_b", Status: model.StatusPending, Kind: model.KindWorkDay, Payload: payload, TableName: model.TableWorkDays, Action: model.ActionInsert, InsertedAt: baseTime}
	a := b
	a.ID = "rec_a"

	envelopes := []model.RecordEnvelope{b, a}
	SortByPriority(envelopes)
	assert.Equal(t, "rec_a", envelopes[0].ID)
}
