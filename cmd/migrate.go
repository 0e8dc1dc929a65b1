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
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/fieldsync/fieldsync/localstore"
)

// migrateCommands applies or rolls back the local store schema.
func migrateCommands(app *fieldSyncInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage the local store schema",
	}

	cmd.AddCommand(migrateDirectionCommand(app, "up", migrate.Up, "Applied %d migrations!\n"))
	cmd.AddCommand(migrateDirectionCommand(app, "down", migrate.Down, "Rolled back %d migrations!\n"))

	return cmd
}

func migrateDirectionCommand(app *fieldSyncInstance, use string, direction migrate.MigrationDirection, message string) *cobra.Command {
	return &cobra.Command{
		Use: use,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := localstore.Migrate(app.store.DB(), direction)
			if err != nil {
				return err
			}
			cmd.Printf(message, n)
			return nil
		},
	}
}
