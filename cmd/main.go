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


package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fieldsync/fieldsync"
	"github.com/fieldsync/fieldsync/config"
	"github.com/fieldsync/fieldsync/database"
	redlock "github.com/fieldsync/fieldsync/internal/lock"
	"github.com/fieldsync/fieldsync/internal/notification"
	redis_db "github.com/fieldsync/fieldsync/internal/redis-db"
	"github.com/fieldsync/fieldsync/localstore"
)

const passLockKey = "fieldsync:sync-pass"

// FieldSyncCLI wraps the root cobra command.
type FieldSyncCLI struct {
	cmd *cobra.Command
}

// fieldSyncInstance carries what the subcommands share at runtime.
type fieldSyncInstance struct {
	configFile string
	cnf        *config.Configuration
	store      *localstore.Store
	central    *database.Datasource
	redis      *redis_db.Redis
	fieldSync  *fieldsync.FieldSync
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and opens the local store. Every command needs both.
func preRun(app *fieldSyncInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(app.configFile); err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}
		app.cnf = cnf

		store, err := localstore.Open(cnf.LocalStore.Path)
		if err != nil {
			return err
		}
		app.store = store
		return nil
	}
}

func postRun(app *fieldSyncInstance) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		app.close()
	}
}

// connect opens the central database and builds the FieldSync instance. Redis is
// optional: when configured the pass lock is shared with other processes.
func (app *fieldSyncInstance) connect() error {
	if app.fieldSync != nil {
		return nil
	}

	central, err := database.NewDataSource(app.cnf)
	if err != nil {
		return fmt.Errorf("error getting datasource: %w", err)
	}
	app.central = central

	opts := []fieldsync.Option{
		fieldsync.WithLocalSource(app.store),
		fieldsync.WithTierParallelism(app.cnf.Sync.TierParallelism),
	}

	if app.cnf.Redis.Dns != "" {
		client, err := redis_db.NewRedisClient(app.cnf.Redis.Dns)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		app.redis = client
		locker := redlock.NewPassLocker(client.Client(), passLockKey)
		opts = append(opts, fieldsync.WithPassLocker(fieldsync.NewRedisPassLock(locker, app.cnf.Sync.LockTTL())))
	}

	if app.cnf.Notification.Slack.WebhookUrl != "" {
		notifier := notification.NewSlackNotifier(app.cnf.Notification.Slack.WebhookUrl, app.cnf.ProjectName, nil)
		opts = append(opts, fieldsync.WithNotifier(notifier))
	}

	fs, err := fieldsync.NewFieldSync(app.store, central, opts...)
	if err != nil {
		return err
	}
	app.fieldSync = fs
	return nil
}

func (app *fieldSyncInstance) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.central != nil {
		_ = app.central.Close()
	}
	if app.store != nil {
		_ = app.store.Close()
	}
}

// NewCLI builds the root command and its subcommands.
func NewCLI() *FieldSyncCLI {
	app := &fieldSyncInstance{}

	rootCmd := &cobra.Command{
		Use:           "fieldsync",
		Short:         "Offline field sales sync",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "./fieldsync.json", "Configuration file")
	rootCmd.PersistentPreRunE = preRun(app)
	rootCmd.PersistentPostRun = postRun(app)

	rootCmd.AddCommand(syncCommands(app))
	rootCmd.AddCommand(reconcileCommands(app))
	rootCmd.AddCommand(queueCommands(app))
	rootCmd.AddCommand(workerCommands(app))
	rootCmd.AddCommand(migrateCommands(app))
	rootCmd.AddCommand(configCommands(app))

	return &FieldSyncCLI{cmd: rootCmd}
}

func (c FieldSyncCLI) executeCLI() {
	if err := c.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
