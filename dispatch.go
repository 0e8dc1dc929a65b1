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
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fieldsync/fieldsync/model"
)

func decode[T any](envelope model.RecordEnvelope) (*T, error) {
	entity := new(T)
	if len(envelope.Payload) == 0 {
		return nil, fmt.Errorf("%w: envelope %s has an empty payload", ErrSerialization, envelope.ID)
	}
	if err := json.Unmarshal(envelope.Payload, entity); err != nil {
		return nil, fmt.Errorf("%w: envelope %s: %v", ErrSerialization, envelope.ID, err)
	}
	return entity, nil
}

// decodeEntity turns the payload into the entity of kind. A payload without the
// primary key of kind is rejected.
func decodeEntity(kind model.DomainKind, envelope model.RecordEnvelope) (model.Entity, error) {
	var entity model.Entity
	var err error
	switch kind {
	case model.KindWorkDay:
		entity, err = decode[model.WorkDay](envelope)
	case model.KindInventoryOperation:
		entity, err = decode[model.InventoryOperation](envelope)
	case model.KindInventoryOperationLine:
		entity, err = decode[model.InventoryOperationLine](envelope)
	case model.KindRouteTransaction:
		entity, err = decode[model.RouteTransaction](envelope)
	case model.KindRouteTransactionOperation:
		entity, err = decode[model.RouteTransactionOperation](envelope)
	case model.KindRouteTransactionOperationLine:
		entity, err = decode[model.RouteTransactionOperationLine](envelope)
	default:
		return nil, fmt.Errorf("%w: envelope %s has kind %q", ErrUnrecognizedRecord, envelope.ID, kind)
	}
	if err != nil {
		return nil, err
	}
	if entity.PrimaryKey() == "" {
		return nil, fmt.Errorf("%w: envelope %s has no %s primary key", ErrSerialization, envelope.ID, kind)
	}
	return entity, nil
}

// dispatch makes the single central call for an envelope.
func (f *FieldSync) dispatch(ctx context.Context, envelope model.RecordEnvelope, entity model.Entity) (model.Result, error) {
	ctx, span := tracer.Start(ctx, "Dispatching record")
	defer span.End()
	span.SetAttributes(
		attribute.String("record.id", envelope.ID),
		attribute.String("record.table", envelope.TableName),
		attribute.String("record.action", string(envelope.Action)),
	)

	var result model.Result
	switch envelope.Action {
	case model.ActionInsert:
		result = f.insert(ctx, entity)
	case model.ActionUpdate:
		result = f.update(ctx, entity)
	default:
		err := fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, envelope.Action, envelope.TableName)
		span.RecordError(err)
		return model.Result{}, err
	}

	span.SetAttributes(attribute.Int("result.code", result.Code))
	return result, nil
}

func (f *FieldSync) insert(ctx context.Context, entity model.Entity) model.Result {
	switch e := entity.(type) {
	case *model.WorkDay:
		return f.central.InsertWorkDay(ctx, e)
	case *model.InventoryOperation:
		return f.central.InsertInventoryOperation(ctx, e)
	case *model.InventoryOperationLine:
		return f.central.InsertInventoryOperationLine(ctx, e)
	case *model.RouteTransaction:
		return f.central.InsertRouteTransaction(ctx, e)
	case *model.RouteTransactionOperation:
		return f.central.InsertRouteTransactionOperation(ctx, e)
	case *model.RouteTransactionOperationLine:
		return f.central.InsertRouteTransactionOperationLine(ctx, e)
	}
	return unknownEntityResult(entity)
}

func (f *FieldSync) update(ctx context.Context, entity model.Entity) model.Result {
	switch e := entity.(type) {
	case *model.WorkDay:
		return f.central.UpdateWorkDay(ctx, e)
	case *model.InventoryOperation:
		return f.central.UpdateInventoryOperation(ctx, e)
	case *model.InventoryOperationLine:
		return f.central.UpdateInventoryOperationLine(ctx, e)
	case *model.RouteTransaction:
		return f.central.UpdateRouteTransaction(ctx, e)
	case *model.RouteTransactionOperation:
		return f.central.UpdateRouteTransactionOperation(ctx, e)
	case *model.RouteTransactionOperationLine:
		return f.central.UpdateRouteTransactionOperationLine(ctx, e)
	}
	return unknownEntityResult(entity)
}

func unknownEntityResult(entity model.Entity) model.Result {
	return model.Result{Code: 500, Message: fmt.Sprintf("no central table for %T", entity)}
}
