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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_LOCAL_STORE_PATH   = "./fieldsync.db"
	DEFAULT_SYNC_INTERVAL_MIN  = 15
	DEFAULT_LOCK_TTL_SEC       = 300
	DEFAULT_CONNECT_TIMEOUT    = 30
	DEFAULT_TIER_PARALLELISM   = 1
	MINIMUM_SYNC_INTERVAL_MINS = 15
)

var ConfigStore atomic.Value

type LocalStoreConfig struct {
	Path string `json:"path" envconfig:"FIELDSYNC_LOCAL_STORE_PATH"`
}

type CentralConfig struct {
	Dns               string `json:"dns" envconfig:"FIELDSYNC_CENTRAL_DNS"`
	ConnectTimeoutSec int    `json:"connect_timeout_sec" envconfig:"FIELDSYNC_CENTRAL_CONNECT_TIMEOUT_SEC"`
}

type RedisConfig struct {
	Dns string `json:"dns" envconfig:"FIELDSYNC_REDIS_DNS"`
}

type SyncConfig struct {
	IntervalMinutes int `json:"interval_minutes" envconfig:"FIELDSYNC_SYNC_INTERVAL_MINUTES"`
	LockTTLSec      int `json:"lock_ttl_sec" envconfig:"FIELDSYNC_SYNC_LOCK_TTL_SEC"`
	TierParallelism int `json:"tier_parallelism" envconfig:"FIELDSYNC_SYNC_TIER_PARALLELISM"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"FIELDSYNC_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName  string           `json:"project_name" envconfig:"FIELDSYNC_PROJECT_NAME"`
	LocalStore   LocalStoreConfig `json:"local_store"`
	Central      CentralConfig    `json:"central"`
	Redis        RedisConfig      `json:"redis"`
	Sync         SyncConfig       `json:"sync"`
	Notification Notification     `json:"notification"`
}

// Interval is the background sync period.
func (s SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// LockTTL bounds how long a pass may hold the distributed lock.
func (s SyncConfig) LockTTL() time.Duration {
	return time.Duration(s.LockTTLSec) * time.Second
}

func (c CentralConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSec) * time.Second
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("fieldsync", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called fieldsync.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		cnf.ProjectName = "FieldSync"
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.LocalStore.Path = strings.TrimSpace(cnf.LocalStore.Path)
	cnf.Central.Dns = strings.TrimSpace(cnf.Central.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	err := validation.ValidateStruct(&cnf.Central,
		validation.Field(&cnf.Central.Dns, validation.Required.Error("central DNS is required")),
	)
	if err != nil {
		log.Println("Error: Central DNS is empty. It's a required field.")
		return errors.New("central DNS is required")
	}

	if cnf.LocalStore.Path == "" {
		cnf.LocalStore.Path = DEFAULT_LOCAL_STORE_PATH
		log.Printf("Warning: Local store path not specified. Setting default path: %s", DEFAULT_LOCAL_STORE_PATH)
	}

	if cnf.Sync.IntervalMinutes == 0 {
		cnf.Sync.IntervalMinutes = DEFAULT_SYNC_INTERVAL_MIN
	} else if cnf.Sync.IntervalMinutes < MINIMUM_SYNC_INTERVAL_MINS {
		log.Printf("Warning: Sync interval %d below minimum. Using %d minutes", cnf.Sync.IntervalMinutes, MINIMUM_SYNC_INTERVAL_MINS)
		cnf.Sync.IntervalMinutes = MINIMUM_SYNC_INTERVAL_MINS
	}

	if cnf.Sync.LockTTLSec <= 0 {
		cnf.Sync.LockTTLSec = DEFAULT_LOCK_TTL_SEC
	}

	if cnf.Sync.TierParallelism <= 0 {
		cnf.Sync.TierParallelism = DEFAULT_TIER_PARALLELISM
	}

	if cnf.Central.ConnectTimeoutSec <= 0 {
		cnf.Central.ConnectTimeoutSec = DEFAULT_CONNECT_TIMEOUT
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
