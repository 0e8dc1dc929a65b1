/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package fieldsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fieldsync/fieldsync/database"
	"github.com/fieldsync/fieldsync/model"
)

// reconciledKinds are the collections compared for a work day, parents first.
var reconciledKinds = []model.DomainKind{
	model.KindInventoryOperation,
	model.KindInventoryOperationLine,
	model.KindRouteTransaction,
	model.KindRouteTransactionOperation,
	model.KindRouteTransactionOperationLine,
}

// workDayRecords holds every record of a work day grouped by kind.
type workDayRecords map[model.DomainKind][]model.Entity

func (w workDayRecords) add(kind model.DomainKind, entity model.Entity) {
	w[kind] = append(w[kind], entity)
}

func appendAll[T model.Entity](records workDayRecords, kind model.DomainKind, entities []T) {
	for _, entity := range entities {
		records.add(kind, entity)
	}
}

// fetchWorkDay walks the record tree of a work day: operations, then the children of
// each operation.
func fetchWorkDay(ctx context.Context, source database.IRecordSource, workDayID string) (workDayRecords, error) {
	records := workDayRecords{}

	operations, err := source.GetInventoryOperationsByWorkDay(ctx, workDayID)
	if err != nil {
		return nil, fmt.Errorf("inventory operations: %w", err)
	}
	appendAll(records, model.KindInventoryOperation, operations)
	for _, operation := range operations {
		lines, err := source.GetInventoryOperationLines(ctx, operation.IDInventoryOperation)
		if err != nil {
			return nil, fmt.Errorf("lines of inventory operation %s: %w", operation.IDInventoryOperation, err)
		}
		appendAll(records, model.KindInventoryOperationLine, lines)
	}

	transactions, err := source.GetRouteTransactionsByWorkDay(ctx, workDayID)
	if err != nil {
		return nil, fmt.Errorf("route transactions: %w", err)
	}
	appendAll(records, model.KindRouteTransaction, transactions)
	for _, transaction := range transactions {
		rtOperations, err := source.GetRouteTransactionOperations(ctx, transaction.IDRouteTransaction)
		if err != nil {
			return nil, fmt.Errorf("operations of route transaction %s: %w", transaction.IDRouteTransaction, err)
		}
		appendAll(records, model.KindRouteTransactionOperation, rtOperations)
		for _, rtOperation := range rtOperations {
			lines, err := source.GetRouteTransactionOperationLines(ctx, rtOperation.IDRouteTransactionOperation)
			if err != nil {
				return nil, fmt.Errorf("lines of route transaction operation %s: %w", rtOperation.IDRouteTransactionOperation, err)
			}
			appendAll(records, model.KindRouteTransactionOperationLine, lines)
		}
	}
	return records, nil
}

// ReconcileWorkDay lists the local records of a work day that the central database
// does not hold, matched by primary key. It reads both sides and changes nothing.
func (f *FieldSync) ReconcileWorkDay(ctx context.Context, workDay *model.WorkDay) (model.ReconciliationReport, error) {
	ctx, span := tracer.Start(ctx, "Reconciling work day")
	defer span.End()

	if workDay == nil || workDay.IDWorkDay == "" {
		return model.ReconciliationReport{}, errors.New("work day id is required")
	}
	if f.local == nil {
		return model.ReconciliationReport{}, errors.New("no local record source configured")
	}
	span.SetAttributes(attribute.String("work_day.id", workDay.IDWorkDay))

	report := model.ReconciliationReport{
		WorkDayID:    workDay.IDWorkDay,
		StartedAt:    f.now().UTC(),
		CentralCount: map[model.DomainKind]int{},
		LocalCount:   map[model.DomainKind]int{},
		Delta:        []model.DeltaEntry{},
	}

	central, err := fetchWorkDay(ctx, f.central, workDay.IDWorkDay)
	if err != nil {
		span.RecordError(err)
		return report, fmt.Errorf("fetch central records: %w", err)
	}
	local, err := fetchWorkDay(ctx, f.local, workDay.IDWorkDay)
	if err != nil {
		span.RecordError(err)
		return report, fmt.Errorf("fetch local records: %w", err)
	}

	for _, kind := range reconciledKinds {
		report.CentralCount[kind] = len(central[kind])
		report.LocalCount[kind] = len(local[kind])
		report.Delta = append(report.Delta, difference(kind, local[kind], central[kind])...)
	}
	report.CompletedAt = f.now().UTC()

	logrus.WithFields(logrus.Fields{
		"id_work_day": workDay.IDWorkDay,
		"missing":     len(report.Delta),
	}).Info("work day reconciled")
	return report, nil
}

// difference returns the local entities whose primary key is absent centrally.
func difference(kind model.DomainKind, local, central []model.Entity) []model.DeltaEntry {
	known := make(map[string]struct{}, len(central))
	for _, entity := range central {
		known[entity.PrimaryKey()] = struct{}{}
	}

	var delta []model.DeltaEntry
	for _, entity := range local {
		if _, ok := known[entity.PrimaryKey()]; ok {
			continue
		}
		delta = append(delta, model.DeltaEntry{Kind: kind, LocalID: entity.PrimaryKey(), Snapshot: entity})
	}
	return delta
}

// RepairFromDelta queues an INSERT for each delta entry whose record has no envelope
// in the active queue yet. It returns the number of envelopes queued.
func (f *FieldSync) RepairFromDelta(ctx context.Context, report model.ReconciliationReport) (int, error) {
	active, err := f.queue.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load active queue: %w", err)
	}

	queued := make(map[string]struct{}, len(active))
	for _, item := range prepareBatch(active) {
		if item.entity != nil {
			queued[item.key()] = struct{}{}
		}
	}

	insertedAt := f.now().UTC()
	var envelopes []model.RecordEnvelope
	for _, entry := range report.Delta {
		if entry.Snapshot == nil {
			continue
		}
		key := string(entry.Kind) + ":" + entry.LocalID
		if _, ok := queued[key]; ok {
			continue
		}
		envelope, err := model.NewEnvelope(entry.Snapshot, model.ActionInsert, insertedAt)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %s: %v", ErrSerialization, entry.Kind, entry.LocalID, err)
		}
		queued[key] = struct{}{}
		envelopes = append(envelopes, envelope)
	}

	if len(envelopes) == 0 {
		return 0, nil
	}
	if err := f.queue.InsertActiveBatch(ctx, envelopes); err != nil {
		return 0, fmt.Errorf("queue repair envelopes: %w", err)
	}
	logrus.Infof("queued %d envelopes to repair work day %s", len(envelopes), report.WorkDayID)
	return len(envelopes), nil
}
