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
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fieldsync/fieldsync/model"
)

func (f *FieldSync) newEnvelope(entity model.Entity, action model.Action, insertedAt time.Time) (model.RecordEnvelope, error) {
	if action != model.ActionDelete {
		if err := validation.Validate(entity); err != nil {
			return model.RecordEnvelope{}, fmt.Errorf("invalid %s: %w", entity.Kind(), err)
		}
	}
	envelope, err := model.NewEnvelope(entity, action, insertedAt)
	if err != nil {
		return model.RecordEnvelope{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := envelope.Validate(); err != nil {
		return model.RecordEnvelope{}, err
	}
	return envelope, nil
}

// Enqueue queues a tagged envelope for a local write.
func (f *FieldSync) Enqueue(ctx context.Context, entity model.Entity, action model.Action) (model.RecordEnvelope, error) {
	envelope, err := f.newEnvelope(entity, action, f.now().UTC())
	if err != nil {
		return model.RecordEnvelope{}, err
	}
	if err := f.queue.InsertActive(ctx, envelope); err != nil {
		return model.RecordEnvelope{}, fmt.Errorf("queue %s: %w", envelope.ID, err)
	}
	return envelope, nil
}

// EnqueueBatch queues the entities in one write, typically the lines of an operation.
// Insertion times increase by a nanosecond so the batch keeps its order.
func (f *FieldSync) EnqueueBatch(ctx context.Context, entities []model.Entity, action model.Action) ([]model.RecordEnvelope, error) {
	if len(entities) == 0 {
		return []model.RecordEnvelope{}, nil
	}

	base := f.now().UTC()
	envelopes := make([]model.RecordEnvelope, 0, len(entities))
	for i, entity := range entities {
		envelope, err := f.newEnvelope(entity, action, base.Add(time.Duration(i)))
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, envelope)
	}

	if err := f.queue.InsertActiveBatch(ctx, envelopes); err != nil {
		return nil, fmt.Errorf("queue %d envelopes: %w", len(envelopes), err)
	}
	return envelopes, nil
}

// ListActive returns the envelopes still waiting for the central database.
func (f *FieldSync) ListActive(ctx context.Context) ([]model.RecordEnvelope, error) {
	return f.queue.ListActive(ctx)
}

func (f *FieldSync) ListHistoric(ctx context.Context) ([]model.RecordEnvelope, error) {
	return f.queue.ListHistoric(ctx)
}

// PurgeHistoric drops one archived envelope after it has been inspected.
func (f *FieldSync) PurgeHistoric(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("record id is required")
	}
	return f.queue.DeleteHistoricByID(ctx, id)
}
