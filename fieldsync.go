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
	"time"

	"go.opentelemetry.io/otel"

	"github.com/fieldsync/fieldsync/database"
	"github.com/fieldsync/fieldsync/model"
)

var tracer = otel.Tracer("fieldsync")

// Notifier is told about envelopes archived as FAILED because retrying them cannot help.
type Notifier interface {
	NotifyRecordFailure(ctx context.Context, envelope model.RecordEnvelope, cause error) error
}

// FieldSync pushes the local sync queue of a field device to the central database
// and reconciles work days between both sides.
type FieldSync struct {
	queue           database.ILocalQueueStore
	central         database.ICentralRepository
	local           database.IRecordSource
	locker          PassLocker
	notifier        Notifier
	tierParallelism int
	now             func() time.Time
}

type Option func(*FieldSync)

// WithLocalSource sets the local record source read by reconciliation.
func WithLocalSource(local database.IRecordSource) Option {
	return func(f *FieldSync) { f.local = local }
}

// WithPassLocker replaces the in-process pass lock, e.g. with a Redis lock shared
// by several processes.
func WithPassLocker(locker PassLocker) Option {
	return func(f *FieldSync) { f.locker = locker }
}

func WithNotifier(notifier Notifier) Option {
	return func(f *FieldSync) { f.notifier = notifier }
}

// WithTierParallelism lets up to n envelopes of the same priority dispatch at once.
// Envelopes of one record stay sequential and tiers never overlap.
func WithTierParallelism(n int) Option {
	return func(f *FieldSync) {
		if n > 0 {
			f.tierParallelism = n
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(f *FieldSync) { f.now = now }
}

// NewFieldSync wires the local queue to the central repository.
func NewFieldSync(queue database.ILocalQueueStore, central database.ICentralRepository, opts ...Option) (*FieldSync, error) {
	if queue == nil {
		return nil, errors.New("local queue store is required")
	}
	if central == nil {
		return nil, errors.New("central repository is required")
	}

	f := &FieldSync{
		queue:           queue,
		central:         central,
		locker:          newLocalPassLock(),
		tierParallelism: 1,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.local == nil {
		if source, ok := queue.(database.IRecordSource); ok {
			f.local = source
		}
	}
	return f, nil
}
