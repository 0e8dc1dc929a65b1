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
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MinimumSyncInterval is the shortest period between background passes.
const MinimumSyncInterval = 15 * time.Minute

// SyncScheduler triggers RunSync on a fixed interval until stopped.
type SyncScheduler struct {
	fieldSync *FieldSync
	interval  time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
	lastPass  bool
}

// NewSyncScheduler clamps interval to MinimumSyncInterval.
func NewSyncScheduler(fieldSync *FieldSync, interval time.Duration) *SyncScheduler {
	if interval < MinimumSyncInterval {
		interval = MinimumSyncInterval
	}
	return newSyncScheduler(fieldSync, interval)
}

func newSyncScheduler(fieldSync *FieldSync, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		fieldSync: fieldSync,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

func (s *SyncScheduler) Interval() time.Duration {
	return s.interval
}

func (s *SyncScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()

	logrus.Infof("Sync scheduler started, interval %v", s.interval)
}

func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	logrus.Info("Sync scheduler stopped")
}

func (s *SyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastPassSucceeded reports the result of the most recent scheduled pass.
func (s *SyncScheduler) LastPassSucceeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPass
}

func (s *SyncScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Sync scheduler context cancelled")
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			ok := s.fieldSync.RunSync(ctx)
			s.mu.Lock()
			s.lastPass = ok
			s.mu.Unlock()
		}
	}
}
