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

package model

import (
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Status is the sync state of a queued record.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Action is the write that produced a queued record.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// DomainKind tags the entity carried by an envelope.
type DomainKind string

const (
	KindUnrecognized                  DomainKind = ""
	KindWorkDay                       DomainKind = "work_day"
	KindInventoryOperation            DomainKind = "inventory_operation"
	KindInventoryOperationLine        DomainKind = "inventory_operation_line"
	KindRouteTransaction              DomainKind = "route_transaction"
	KindRouteTransactionOperation     DomainKind = "route_transaction_operation"
	KindRouteTransactionOperationLine DomainKind = "route_transaction_operation_line"
)

// Table names of the central schema, also used by the local store.
const (
	TableWorkDays                       = "work_days"
	TableInventoryOperations            = "inventory_operations"
	TableInventoryOperationLines        = "inventory_operation_lines"
	TableRouteTransactions              = "route_transactions"
	TableRouteTransactionOperations     = "route_transaction_operations"
	TableRouteTransactionOperationLines = "route_transaction_operation_lines"
)

var kindTables = map[DomainKind]string{
	KindWorkDay:                       TableWorkDays,
	KindInventoryOperation:            TableInventoryOperations,
	KindInventoryOperationLine:        TableInventoryOperationLines,
	KindRouteTransaction:              TableRouteTransactions,
	KindRouteTransactionOperation:     TableRouteTransactionOperations,
	KindRouteTransactionOperationLine: TableRouteTransactionOperationLines,
}

// TableName returns the table backing the kind, or "" for an unknown kind.
func (k DomainKind) TableName() string {
	return kindTables[k]
}

// IsKnown reports whether k is one of the six domain kinds.
func (k DomainKind) IsKnown() bool {
	_, ok := kindTables[k]
	return ok
}

// KindForTable is the inverse of DomainKind.TableName.
func KindForTable(table string) (DomainKind, bool) {
	for kind, name := range kindTables {
		if name == table {
			return kind, true
		}
	}
	return KindUnrecognized, false
}

// RecordEnvelope is one pending central write together with its sync metadata.
type RecordEnvelope struct {
	ID         string          `json:"id_record"`
	Status     Status          `json:"status"`
	Kind       DomainKind      `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	TableName  string          `json:"table_name"`
	Action     Action          `json:"action"`
	InsertedAt time.Time       `json:"timestamp"`
}

// GenerateEnvelopeID returns a fresh queue record id.
func GenerateEnvelopeID() string {
	return fmt.Sprintf("rec_%s", uuid.New().String())
}

// NewEnvelope snapshots entity into a PENDING envelope tagged with the entity kind.
func NewEnvelope(entity Entity, action Action, insertedAt time.Time) (RecordEnvelope, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return RecordEnvelope{}, err
	}
	kind := entity.Kind()
	return RecordEnvelope{
		ID:         GenerateEnvelopeID(),
		Status:     StatusPending,
		Kind:       kind,
		Payload:    payload,
		TableName:  kind.TableName(),
		Action:     action,
		InsertedAt: insertedAt,
	}, nil
}

// Validate checks the envelope metadata. The payload is only checked for presence.
func (e RecordEnvelope) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Status, validation.Required, validation.In(StatusPending, StatusSuccess, StatusFailed)),
		validation.Field(&e.Action, validation.Required, validation.In(ActionInsert, ActionUpdate, ActionDelete)),
		validation.Field(&e.TableName, validation.Required),
		validation.Field(&e.Payload, validation.Required),
	)
}
