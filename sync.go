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
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fieldsync/fieldsync/model"
)

// passItem is an active envelope prepared for dispatch.
type passItem struct {
	envelope model.RecordEnvelope
	kind     model.DomainKind
	entity   model.Entity
	err      error
	priority int
}

// key groups the envelopes of one record so they never dispatch concurrently.
func (p passItem) key() string {
	if p.entity == nil {
		return p.envelope.ID
	}
	return string(p.kind) + ":" + p.entity.PrimaryKey()
}

type passDecision struct {
	envelope    model.RecordEnvelope
	outcome     outcome
	disposition disposition
	conflict    bool
	cause       error
}

// prepareBatch classifies and decodes every envelope, then sorts the batch so parents
// reach the central database before their children.
func prepareBatch(envelopes []model.RecordEnvelope) []passItem {
	items := make([]passItem, 0, len(envelopes))
	for _, envelope := range envelopes {
		item := passItem{envelope: envelope}
		item.kind, item.err = Classify(envelope)
		if item.err == nil {
			item.entity, item.err = decodeEntity(item.kind, envelope)
		}
		if item.err != nil {
			item.kind = model.KindUnrecognized
		}
		item.priority = priorityOf(item.kind, envelope.Action)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return envelopeLess(items[i].envelope, items[j].envelope, items[i].priority, items[j].priority)
	})
	return items
}

// Sync runs one pass over the active queue. Every envelope gets exactly one central
// call. Outcomes are written back once the batch is done: requeued envelopes first,
// then archived envelopes are moved out of the queue in one transaction.
func (f *FieldSync) Sync(ctx context.Context) (model.SyncReport, error) {
	ctx, span := tracer.Start(ctx, "Sync pass")
	defer span.End()

	report := model.SyncReport{
		PassID:     fmt.Sprintf("pass_%s", uuid.New().String()),
		StartedAt:  f.now().UTC(),
		Dispatched: []string{},
	}
	span.SetAttributes(attribute.String("pass.id", report.PassID))

	unlock, err := f.locker.TryLock(ctx)
	if err != nil {
		span.RecordError(err)
		return report, err
	}
	defer unlock()

	envelopes, err := f.queue.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		return report, fmt.Errorf("load active queue: %w", err)
	}
	report.Total = len(envelopes)
	span.SetAttributes(attribute.Int("pass.total", report.Total))

	items := prepareBatch(envelopes)
	decisions := f.dispatchBatch(ctx, items, &report)

	// outcomes already decided are kept even when the pass was cancelled
	flushCtx := context.WithoutCancel(ctx)
	failures, flushErr := f.flush(flushCtx, decisions, &report)
	f.notifyFailures(flushCtx, failures)

	report.CompletedAt = f.now().UTC()
	logrus.WithFields(logrus.Fields{
		"pass_id":         report.PassID,
		"total":           report.Total,
		"succeeded":       report.Succeeded,
		"conflicts":       report.Conflicts,
		"requeued":        report.Requeued,
		"archived_failed": report.ArchivedFailed,
		"rejected":        report.Rejected,
		"skipped":         report.Skipped,
	}).Info("sync pass completed")

	if report.Skipped > 0 {
		flushErr = errors.Join(ctx.Err(), flushErr)
	}
	if flushErr != nil {
		span.RecordError(flushErr)
	}
	return report, flushErr
}

// RunSync runs a pass and reports whether every queued envelope reached the central
// database. It is the entry point used by the scheduler.
func (f *FieldSync) RunSync(ctx context.Context) bool {
	report, err := f.Sync(ctx)
	if err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			logrus.Info("sync pass skipped: another pass is running")
		} else {
			logrus.Errorf("sync pass %s failed: %v", report.PassID, err)
		}
		return false
	}
	return report.Success()
}

// dispatchBatch walks the sorted batch one priority group at a time. Groups never
// overlap. Inside a group envelopes run one by one unless tier parallelism is set.
func (f *FieldSync) dispatchBatch(ctx context.Context, items []passItem, report *model.SyncReport) []passDecision {
	decisions := make([]passDecision, len(items))
	var mu sync.Mutex
	record := func(id string) {
		mu.Lock()
		report.Dispatched = append(report.Dispatched, id)
		mu.Unlock()
	}

	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && items[end].priority == items[start].priority {
			end++
		}

		if f.tierParallelism <= 1 {
			for i := start; i < end; i++ {
				decisions[i] = f.decide(ctx, items[i], record)
			}
		} else {
			f.dispatchGroup(ctx, items, decisions, start, end, record)
		}
		start = end
	}
	return decisions
}

func (f *FieldSync) dispatchGroup(ctx context.Context, items []passItem, decisions []passDecision, start, end int, record func(string)) {
	var order []string
	buckets := make(map[string][]int)
	for i := start; i < end; i++ {
		key := items[i].key()
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], i)
	}

	sem := make(chan struct{}, f.tierParallelism)
	var wg sync.WaitGroup
	for _, key := range order {
		sem <- struct{}{}
		wg.Add(1)
		go func(indexes []int) {
			defer wg.Done()
			defer func() { <-sem }()
			for _, i := range indexes {
				decisions[i] = f.decide(ctx, items[i], record)
			}
		}(buckets[key])
	}
	wg.Wait()
}

// decide dispatches one envelope and applies the retry policy to the result.
func (f *FieldSync) decide(ctx context.Context, item passItem, record func(string)) passDecision {
	if ctx.Err() != nil {
		return passDecision{envelope: item.envelope, disposition: dispositionSkip}
	}

	logger := logrus.WithFields(logrus.Fields{
		"id_record": item.envelope.ID,
		"table":     item.envelope.TableName,
		"action":    item.envelope.Action,
	})

	decision := passDecision{}
	var result model.Result
	err := item.err
	if err == nil {
		result, err = f.dispatch(ctx, item.envelope, item.entity)
		if err == nil {
			record(item.envelope.ID)
		}
	}

	decision.outcome = outcomeOf(result, err)
	decision.envelope, decision.disposition = transition(item.envelope, decision.outcome)
	decision.conflict = err == nil && result.IsConflict()

	switch {
	case err != nil:
		decision.cause = err
	case decision.outcome == outcomeTransient:
		decision.cause = fmt.Errorf("central returned %d: %s", result.Code, result.Message)
	}

	switch decision.outcome {
	case outcomeSuccess:
		if decision.conflict {
			logger.Debug("record already present centrally")
		}
	case outcomeTransient:
		if decision.disposition == dispositionRequeue {
			logger.Warnf("record failed, retrying next pass: %v", decision.cause)
		} else {
			logger.Errorf("record failed twice, archiving as failed: %v", decision.cause)
		}
	case outcomePermanent:
		logger.Errorf("record rejected: %v", decision.cause)
	}
	return decision
}

// flush writes the decisions back to the local queue. It returns the permanent
// failures that still need to be reported.
func (f *FieldSync) flush(ctx context.Context, decisions []passDecision, report *model.SyncReport) ([]passDecision, error) {
	var requeued, archived []model.RecordEnvelope
	var failures []passDecision

	for _, decision := range decisions {
		switch decision.disposition {
		case dispositionSkip:
			report.Skipped++
			continue
		case dispositionRequeue:
			report.Requeued++
			requeued = append(requeued, decision.envelope)
			continue
		}

		archived = append(archived, decision.envelope)
		if decision.envelope.Status == model.StatusSuccess {
			report.Succeeded++
			if decision.conflict {
				report.Conflicts++
			}
			continue
		}
		report.ArchivedFailed++
		if decision.outcome == outcomePermanent {
			report.Rejected++
			failures = append(failures, decision)
		}
	}

	var errs []error
	if len(requeued) > 0 {
		if err := f.queue.UpdateActiveBatch(ctx, requeued); err != nil {
			errs = append(errs, fmt.Errorf("requeue %d envelopes: %w", len(requeued), err))
		}
	}
	if len(archived) > 0 {
		if err := f.queue.ArchiveBatch(ctx, archived); err != nil {
			errs = append(errs, fmt.Errorf("archive %d envelopes: %w", len(archived), err))
		}
	}
	return failures, errors.Join(errs...)
}

func (f *FieldSync) notifyFailures(ctx context.Context, failures []passDecision) {
	if f.notifier == nil {
		return
	}
	for _, failure := range failures {
		if err := f.notifier.NotifyRecordFailure(ctx, failure.envelope, failure.cause); err != nil {
			logrus.Warnf("failed to report rejected record %s: %v", failure.envelope.ID, err)
		}
	}
}
