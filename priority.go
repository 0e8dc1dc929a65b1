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
	"sort"

	"github.com/fieldsync/fieldsync/model"
)

// unclassifiedTier places envelopes of unknown kind after every real tier.
const unclassifiedTier = 9

var kindTiers = map[model.DomainKind]int{
	model.KindWorkDay:                       0,
	model.KindInventoryOperation:            1,
	model.KindRouteTransaction:              1,
	model.KindInventoryOperationLine:        2,
	model.KindRouteTransactionOperation:     2,
	model.KindRouteTransactionOperationLine: 3,
}

var actionWeights = map[model.Action]int{
	model.ActionInsert: 0,
	model.ActionUpdate: 1,
	model.ActionDelete: 2,
}

// Tier is the position of kind in the foreign-key chain.
func Tier(kind model.DomainKind) int {
	if tier, ok := kindTiers[kind]; ok {
		return tier
	}
	return unclassifiedTier
}

func priorityOf(kind model.DomainKind, action model.Action) int {
	weight, ok := actionWeights[action]
	if !ok {
		weight = unclassifiedTier
	}
	return Tier(kind)*10 + weight
}

// Priority is tier*10 plus the action weight. Lower values dispatch first.
func Priority(envelope model.RecordEnvelope) int {
	kind, err := Classify(envelope)
	if err != nil {
		kind = model.KindUnrecognized
	}
	return priorityOf(kind, envelope.Action)
}

// SortByPriority orders envelopes by priority, then insertion time, then id.
func SortByPriority(envelopes []model.RecordEnvelope) {
	priorities := make(map[string]int, len(envelopes))
	for _, envelope := range envelopes {
		priorities[envelope.ID] = Priority(envelope)
	}

	sort.SliceStable(envelopes, func(i, j int) bool {
		return envelopeLess(envelopes[i], envelopes[j], priorities[envelopes[i].ID], priorities[envelopes[j].ID])
	})
}

func envelopeLess(a, b model.RecordEnvelope, pa, pb int) bool {
	if pa != pb {
		return pa < pb
	}
	if !a.InsertedAt.Equal(b.InsertedAt) {
		return a.InsertedAt.Before(b.InsertedAt)
	}
	return a.ID < b.ID
}
