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

import "time"

// SyncReport summarises one sync pass.
type SyncReport struct {
	PassID         string    `json:"pass_id"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	Total          int       `json:"total"`
	Succeeded      int       `json:"succeeded"`
	Conflicts      int       `json:"conflicts"`
	Requeued       int       `json:"requeued"`
	ArchivedFailed int       `json:"archived_failed"`
	Rejected       int       `json:"rejected"`
	Skipped        int       `json:"skipped"`

	// Dispatched holds envelope ids in the order they reached the central repository.
	Dispatched []string `json:"dispatched"`
}

// Archived is the number of envelopes that left the active queue during the pass.
func (r SyncReport) Archived() int {
	return r.Succeeded + r.ArchivedFailed
}

// Success is true when every envelope of the batch was archived as SUCCESS.
// Conflicts are counted inside Succeeded.
func (r SyncReport) Success() bool {
	return r.Succeeded == r.Total
}

// DeltaEntry names a local record that the central database does not hold.
type DeltaEntry struct {
	Kind    DomainKind `json:"entity_kind"`
	LocalID string     `json:"local_id"`

	// Snapshot is the local record, used by the repair operation.
	Snapshot Entity `json:"-"`
}

// ReconciliationReport is the local-minus-central diff of one work day.
type ReconciliationReport struct {
	WorkDayID    string             `json:"id_work_day"`
	StartedAt    time.Time          `json:"started_at"`
	CompletedAt  time.Time          `json:"completed_at"`
	CentralCount map[DomainKind]int `json:"central_count"`
	LocalCount   map[DomainKind]int `json:"local_count"`
	Delta        []DeltaEntry       `json:"delta"`
}

// IsConsistent reports that nothing local is missing centrally.
func (r ReconciliationReport) IsConsistent() bool {
	return len(r.Delta) == 0
}
