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

package localstore

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/*.sql
var SQLFiles embed.FS

// Store is the on-device SQLite database holding the sync queue, its archive and the
// local copy of the domain records.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open local store")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "connect local store")
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	n, err := Migrate(db, migrate.Up)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if n > 0 {
		logrus.Infof("local store %s: applied %d migrations", path, n)
	}

	return &Store{db: db}, nil
}

// Migrate applies the embedded migrations in the given direction.
func Migrate(db *sql.DB, direction migrate.MigrationDirection) (int, error) {
	migrations := migrate.EmbedFileSystemMigrationSource{
		FileSystem: SQLFiles,
		Root:       "sql",
	}
	n, err := migrate.Exec(db, "sqlite3", migrations, direction)
	if err != nil {
		return 0, errors.Wrap(err, "migrate local store")
	}
	return n, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Wrapf(err, "execute %q", pragma)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the connection for the migrate command.
func (s *Store) DB() *sql.DB {
	return s.db
}
