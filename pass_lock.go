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
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	redlock "github.com/fieldsync/fieldsync/internal/lock"
)

// PassLocker serializes sync passes. TryLock never waits: it fails with
// ErrSyncInProgress when a pass is already running.
type PassLocker interface {
	TryLock(ctx context.Context) (unlock func(), err error)
}

type localPassLock struct {
	mu sync.Mutex
}

func newLocalPassLock() *localPassLock {
	return &localPassLock{}
}

func (l *localPassLock) TryLock(_ context.Context) (func(), error) {
	if !l.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	return l.mu.Unlock, nil
}

// RedisPassLock holds a Redis key for the length of a pass and extends it every
// ttl/2 so slow passes keep ownership.
type RedisPassLock struct {
	locker *redlock.Locker
	ttl    time.Duration
}

func NewRedisPassLock(locker *redlock.Locker, ttl time.Duration) *RedisPassLock {
	return &RedisPassLock{locker: locker, ttl: ttl}
}

func (r *RedisPassLock) TryLock(ctx context.Context) (func(), error) {
	if err := r.locker.Lock(ctx, r.ttl); err != nil {
		if errors.Is(err, redlock.ErrLockHeld) {
			return nil, ErrSyncInProgress
		}
		return nil, fmt.Errorf("acquire pass lock: %w", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(r.ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := r.locker.ExtendLock(context.Background(), r.ttl); err != nil {
					logrus.Warnf("failed to extend pass lock %s: %v", r.locker.Key(), err)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			if err := r.locker.Unlock(context.Background()); err != nil {
				logrus.Warnf("failed to release pass lock %s: %v", r.locker.Key(), err)
			}
		})
	}, nil
}
