package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/fieldsync/fieldsync/config"

	_ "github.com/lib/pq"
)

// Datasource talks to the central Postgres database.
type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (*Datasource, error) {
	con, err := ConnectDB(configuration.Central.Dns, configuration.Central.ConnectTimeout())
	if err != nil {
		return nil, err
	}
	return &Datasource{Conn: con}, nil
}

// ConnectDB opens the central database and pings it with exponential backoff until
// maxElapsed runs out.
func ConnectDB(dns string, maxElapsed time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = maxElapsed

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pingErr := db.PingContext(ctx)
		if pingErr != nil {
			logrus.Warnf("central database ping attempt %d failed: %v", attempt, pingErr)
		}
		return pingErr
	}, policy)
	if err != nil {
		logrus.Errorf("central database connection error: %v", err)
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func (d Datasource) Close() error {
	return d.Conn.Close()
}
