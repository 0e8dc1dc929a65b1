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
	"encoding/json"
	"fmt"

	"github.com/fieldsync/fieldsync/model"
)

// signature identifies a kind from the keys of an untagged payload.
type signature struct {
	kind     model.DomainKind
	required []string
	anyOf    []string
	none     []string
}

// childKeys are the primary keys of every kind below WorkDay. A payload holding any
// of them is never a work day, even though it also carries id_work_day.
var childKeys = []string{
	"id_inventory_operation",
	"id_product_operation_description",
	"id_route_transaction",
	"id_route_transaction_operation",
	"id_route_transaction_operation_description",
}

// signatures are checked in order. Leaves come before their parents because a child
// payload carries its parent's key.
var signatures = []signature{
	{
		kind:     model.KindWorkDay,
		required: []string{"id_work_day"},
		anyOf:    []string{"id_route", "id_route_day", "start_date", "start_petty_cash", "final_petty_cash"},
		none:     childKeys,
	},
	{kind: model.KindInventoryOperationLine, required: []string{"id_product_operation_description"}},
	{kind: model.KindInventoryOperation, required: []string{"id_inventory_operation"}},
	{kind: model.KindRouteTransactionOperationLine, required: []string{"id_route_transaction_operation_description"}},
	{kind: model.KindRouteTransactionOperation, required: []string{"id_route_transaction_operation"}},
	{kind: model.KindRouteTransaction, required: []string{"id_route_transaction"}},
}

func (s signature) matches(fields map[string]json.RawMessage) bool {
	for _, key := range s.required {
		if !present(fields, key) {
			return false
		}
	}
	for _, key := range s.none {
		if present(fields, key) {
			return false
		}
	}
	if len(s.anyOf) == 0 {
		return true
	}
	for _, key := range s.anyOf {
		if present(fields, key) {
			return true
		}
	}
	return false
}

func present(fields map[string]json.RawMessage, key string) bool {
	value, ok := fields[key]
	return ok && string(value) != "null"
}

// Classify returns the domain kind of an envelope. Tagged envelopes are trusted when
// the tag is known and agrees with the table name. Untagged ones are matched by the
// keys their payload carries.
func Classify(envelope model.RecordEnvelope) (model.DomainKind, error) {
	if envelope.Kind != model.KindUnrecognized {
		return classifyTagged(envelope)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Payload, &fields); err != nil || fields == nil {
		return model.KindUnrecognized, fmt.Errorf("%w: envelope %s is not a JSON object", ErrSerialization, envelope.ID)
	}

	for _, sig := range signatures {
		if sig.matches(fields) {
			return sig.kind, nil
		}
	}
	return model.KindUnrecognized, fmt.Errorf("%w: envelope %s on table %q", ErrUnrecognizedRecord, envelope.ID, envelope.TableName)
}

func classifyTagged(envelope model.RecordEnvelope) (model.DomainKind, error) {
	if !envelope.Kind.IsKnown() {
		return model.KindUnrecognized, fmt.Errorf("%w: envelope %s has unknown kind %q", ErrUnrecognizedRecord, envelope.ID, envelope.Kind)
	}

	if tableKind, ok := model.KindForTable(envelope.TableName); ok && tableKind != envelope.Kind {
		return model.KindUnrecognized, fmt.Errorf("%w: envelope %s is tagged %q but targets %q",
			ErrUnrecognizedRecord, envelope.ID, envelope.Kind, envelope.TableName)
	}
	return envelope.Kind, nil
}
