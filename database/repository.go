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

package database

import (
	"context"

	"github.com/fieldsync/fieldsync/model"
)

// ICentralRepository is the gateway to the central multi-tenant database: one
// insert and one update per domain table, plus the per-work-day reads used by reconciliation.
type ICentralRepository interface {
	workDay                       // Work day writes
	inventoryOperation            // Inventory operation writes
	inventoryOperationLine        // Inventory operation line writes
	routeTransaction              // Route transaction writes
	routeTransactionOperation     // Route transaction operation writes
	routeTransactionOperationLine // Route transaction operation line writes
	IRecordSource                 // Reads scoped to a work day
}

// ILocalQueueStore persists the active sync queue and its historic archive.
type ILocalQueueStore interface {
	InsertActive(ctx context.Context, envelope model.RecordEnvelope) error           // Adds one pending envelope
	InsertActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error   // Adds many pending envelopes
	UpdateActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error   // Rewrites status of active envelopes
	DeleteActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error   // Removes envelopes from the active queue
	ListActive(ctx context.Context) ([]model.RecordEnvelope, error)                  // Returns every active envelope
	InsertHistoricBatch(ctx context.Context, envelopes []model.RecordEnvelope) error // Archives terminal envelopes
	ArchiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error        // Archives and removes from the active queue atomically
	ListHistoric(ctx context.Context) ([]model.RecordEnvelope, error)                // Returns the archive
	DeleteHistoricByID(ctx context.Context, id string) error                         // Removes one archived envelope
}

// IRecordSource reads the records of one work day. The central repository and the
// local store both implement it so reconciliation can diff them.
type IRecordSource interface {
	GetInventoryOperationsByWorkDay(ctx context.Context, workDayID string) ([]*model.InventoryOperation, error)
	GetInventoryOperationLines(ctx context.Context, inventoryOperationID string) ([]*model.InventoryOperationLine, error)
	GetRouteTransactionsByWorkDay(ctx context.Context, workDayID string) ([]*model.RouteTransaction, error)
	GetRouteTransactionOperations(ctx context.Context, routeTransactionID string) ([]*model.RouteTransactionOperation, error)
	GetRouteTransactionOperationLines(ctx context.Context, routeTransactionOperationID string) ([]*model.RouteTransactionOperationLine, error)
}

type workDay interface {
	InsertWorkDay(ctx context.Context, workDay *model.WorkDay) model.Result
	UpdateWorkDay(ctx context.Context, workDay *model.WorkDay) model.Result
}

type inventoryOperation interface {
	InsertInventoryOperation(ctx context.Context, operation *model.InventoryOperation) model.Result
	UpdateInventoryOperation(ctx context.Context, operation *model.InventoryOperation) model.Result
}

type inventoryOperationLine interface {
	InsertInventoryOperationLine(ctx context.Context, line *model.InventoryOperationLine) model.Result
	UpdateInventoryOperationLine(ctx context.Context, line *model.InventoryOperationLine) model.Result
}

type routeTransaction interface {
	InsertRouteTransaction(ctx context.Context, transaction *model.RouteTransaction) model.Result
	UpdateRouteTransaction(ctx context.Context, transaction *model.RouteTransaction) model.Result
}

type routeTransactionOperation interface {
	InsertRouteTransactionOperation(ctx context.Context, operation *model.RouteTransactionOperation) model.Result
	UpdateRouteTransactionOperation(ctx context.Context, operation *model.RouteTransactionOperation) model.Result
}

type routeTransactionOperationLine interface {
	InsertRouteTransactionOperationLine(ctx context.Context, line *model.RouteTransactionOperationLine) model.Result
	UpdateRouteTransactionOperationLine(ctx context.Context, line *model.RouteTransactionOperationLine) model.Result
}
