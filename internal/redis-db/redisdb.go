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


package redis_db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Redis wraps the client shared by the pass lock and the asynq worker.
type Redis struct {
	opts   *redis.Options
	client redis.UniversalClient
}

// ParseRedisURL accepts either a bare host:port or a redis:// URL.
func ParseRedisURL(rawURL string) (*redis.Options, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	if !strings.Contains(rawURL, "//") {
		if strings.Contains(rawURL, "@") {
			parts := strings.SplitN(rawURL, "@", 2)
			return &redis.Options{Addr: parts[1], Password: parts[0]}, nil
		}
		return &redis.Options{Addr: rawURL}, nil
	}

	// redis://password@host has no user separator
	if strings.HasPrefix(rawURL, "redis://") && strings.Contains(rawURL, "@") {
		parts := strings.SplitN(strings.TrimPrefix(rawURL, "redis://"), "@", 2)
		if !strings.Contains(parts[0], ":") {
			rawURL = "redis://:" + parts[0] + "@" + parts[1]
		}
	}

	return redis.ParseURL(rawURL)
}

// NewRedisClient connects to dns and pings it.
func NewRedisClient(dns string) (*Redis, error) {
	opts, err := ParseRedisURL(dns)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Redis{opts: opts, client: client}, nil
}

func (r *Redis) Client() redis.UniversalClient {
	return r.client
}

// AsynqOpt returns the same connection settings for the asynq scheduler and server.
func (r *Redis) AsynqOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:      r.opts.Addr,
		Username:  r.opts.Username,
		Password:  r.opts.Password,
		DB:        r.opts.DB,
		TLSConfig: r.opts.TLSConfig,
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
