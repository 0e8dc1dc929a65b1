package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/fieldsync/fieldsync/model"
)

const (
	activeTable   = "sync_queue"
	historicTable = "sync_historic"
)

const envelopeColumns = "id_record, status, payload, table_name, action, timestamp, kind"

// timestampLayout is fixed width so timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func (s *Store) InsertActive(ctx context.Context, envelope model.RecordEnvelope) error {
	return s.InsertActiveBatch(ctx, []model.RecordEnvelope{envelope})
}

func (s *Store) InsertActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	return errors.Wrap(s.insertEnvelopes(ctx, activeTable, envelopes), "insert active batch")
}

// InsertHistoricBatch archives envelopes. Archiving an id twice keeps a single row
// holding the latest status.
func (s *Store) InsertHistoricBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	return errors.Wrap(s.insertEnvelopes(ctx, historicTable, envelopes), "insert historic batch")
}

// UpdateActiveBatch rewrites the status of envelopes that are still queued.
func (s *Store) UpdateActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE sync_queue SET status = ? WHERE id_record = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, envelope := range envelopes {
			if _, err := stmt.ExecContext(ctx, string(envelope.Status), envelope.ID); err != nil {
				return errors.Wrapf(err, "envelope %s", envelope.ID)
			}
		}
		return nil
	})
	return errors.Wrap(err, "update active batch")
}

func (s *Store) DeleteActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return deleteActiveTx(ctx, tx, envelopes)
	})
	return errors.Wrap(err, "delete active batch")
}

// ArchiveBatch moves envelopes from the active queue into the archive in one
// transaction, so an envelope is never left in both tables.
func (s *Store) ArchiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertEnvelopesTx(ctx, tx, historicTable, envelopes); err != nil {
			return err
		}
		return deleteActiveTx(ctx, tx, envelopes)
	})
	return errors.Wrap(err, "archive batch")
}

func deleteActiveTx(ctx context.Context, tx *sql.Tx, envelopes []model.RecordEnvelope) error {
	stmt, err := tx.PrepareContext(ctx, `DELETE FROM sync_queue WHERE id_record = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, envelope := range envelopes {
		if _, err := stmt.ExecContext(ctx, envelope.ID); err != nil {
			return errors.Wrapf(err, "envelope %s", envelope.ID)
		}
	}
	return nil
}

// ListActive returns the queue in insertion order.
func (s *Store) ListActive(ctx context.Context) ([]model.RecordEnvelope, error) {
	envelopes, err := s.listEnvelopes(ctx, activeTable)
	return envelopes, errors.Wrap(err, "list active")
}

func (s *Store) ListHistoric(ctx context.Context) ([]model.RecordEnvelope, error) {
	envelopes, err := s.listEnvelopes(ctx, historicTable)
	return envelopes, errors.Wrap(err, "list historic")
}

func (s *Store) DeleteHistoricByID(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sync_historic WHERE id_record = ?`, id)
	return errors.Wrapf(err, "delete historic %s", id)
}

func (s *Store) insertEnvelopes(ctx context.Context, table string, envelopes []model.RecordEnvelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertEnvelopesTx(ctx, tx, table, envelopes)
	})
}

func insertEnvelopesTx(ctx context.Context, tx *sql.Tx, table string, envelopes []model.RecordEnvelope) error {
	verb := "INSERT"
	if table == historicTable {
		verb = "INSERT OR REPLACE"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`%s INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)`, verb, table, envelopeColumns))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, envelope := range envelopes {
		_, err := stmt.ExecContext(ctx,
			envelope.ID,
			string(envelope.Status),
			string(envelope.Payload),
			envelope.TableName,
			string(envelope.Action),
			formatTimestamp(envelope.InsertedAt),
			string(envelope.Kind),
		)
		if err != nil {
			return errors.Wrapf(err, "envelope %s", envelope.ID)
		}
	}
	return nil
}

func (s *Store) listEnvelopes(ctx context.Context, table string) ([]model.RecordEnvelope, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY timestamp, rowid`, envelopeColumns, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	envelopes := []model.RecordEnvelope{}
	for rows.Next() {
		var (
			envelope                          model.RecordEnvelope
			status, payload, action, ts, kind string
		)
		if err := rows.Scan(&envelope.ID, &status, &payload, &envelope.TableName, &action, &ts, &kind); err != nil {
			return nil, err
		}
		envelope.Status = model.Status(status)
		envelope.Action = model.Action(action)
		envelope.Kind = model.DomainKind(kind)
		envelope.Payload = []byte(payload)
		envelope.InsertedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, errors.Wrapf(err, "envelope %s timestamp", envelope.ID)
		}
		envelopes = append(envelopes, envelope)
	}
	return envelopes, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
