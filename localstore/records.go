package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/fieldsync/fieldsync/model"
)

// recordTable describes where a domain kind lives in the local database.
type recordTable struct {
	name      string
	keyColumn string
	parent    string
	parentKey func(model.Entity) string
}

var recordTables = map[model.DomainKind]recordTable{
	model.KindWorkDay: {
		name:      model.TableWorkDays,
		keyColumn: "id_work_day",
	},
	model.KindInventoryOperation: {
		name:      model.TableInventoryOperations,
		keyColumn: "id_inventory_operation",
		parent:    "id_work_day",
		parentKey: func(e model.Entity) string { return e.(*model.InventoryOperation).IDWorkDay },
	},
	model.KindInventoryOperationLine: {
		name:      model.TableInventoryOperationLines,
		keyColumn: "id_product_operation_description",
		parent:    "id_inventory_operation",
		parentKey: func(e model.Entity) string { return e.(*model.InventoryOperationLine).IDInventoryOperation },
	},
	model.KindRouteTransaction: {
		name:      model.TableRouteTransactions,
		keyColumn: "id_route_transaction",
		parent:    "id_work_day",
		parentKey: func(e model.Entity) string { return e.(*model.RouteTransaction).IDWorkDay },
	},
	model.KindRouteTransactionOperation: {
		name:      model.TableRouteTransactionOperations,
		keyColumn: "id_route_transaction_operation",
		parent:    "id_route_transaction",
		parentKey: func(e model.Entity) string { return e.(*model.RouteTransactionOperation).IDRouteTransaction },
	},
	model.KindRouteTransactionOperationLine: {
		name:      model.TableRouteTransactionOperationLines,
		keyColumn: "id_route_transaction_operation_description",
		parent:    "id_route_transaction_operation",
		parentKey: func(e model.Entity) string { return e.(*model.RouteTransactionOperationLine).IDRouteTransactionOperation },
	},
}

// RecordWrite stores entity in its local table and queues the matching envelope in
// the same transaction.
func (s *Store) RecordWrite(ctx context.Context, entity model.Entity, action model.Action) (model.RecordEnvelope, error) {
	table, ok := recordTables[entity.Kind()]
	if !ok {
		return model.RecordEnvelope{}, fmt.Errorf("no local table for kind %q", entity.Kind())
	}

	envelope, err := model.NewEnvelope(entity, action, time.Now().UTC())
	if err != nil {
		return model.RecordEnvelope{}, errors.Wrap(err, "serialize record")
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if action == model.ActionDelete {
			query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table.name, table.keyColumn)
			if _, err := tx.ExecContext(ctx, query, entity.PrimaryKey()); err != nil {
				return err
			}
		} else if err := upsertRecord(ctx, tx, table, entity, envelope.Payload); err != nil {
			return err
		}
		return insertEnvelopesTx(ctx, tx, activeTable, []model.RecordEnvelope{envelope})
	})
	if err != nil {
		return model.RecordEnvelope{}, errors.Wrapf(err, "record %s %s", action, entity.Kind())
	}
	return envelope, nil
}

func upsertRecord(ctx context.Context, tx *sql.Tx, table recordTable, entity model.Entity, payload []byte) error {
	if table.parent == "" {
		query := fmt.Sprintf(`INSERT INTO %s (%s, payload) VALUES (?, ?)
			ON CONFLICT (%s) DO UPDATE SET payload = excluded.payload`,
			table.name, table.keyColumn, table.keyColumn)
		_, err := tx.ExecContext(ctx, query, entity.PrimaryKey(), string(payload))
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, payload) VALUES (?, ?, ?)
		ON CONFLICT (%s) DO UPDATE SET %s = excluded.%s, payload = excluded.payload`,
		table.name, table.keyColumn, table.parent, table.keyColumn, table.parent, table.parent)
	_, err := tx.ExecContext(ctx, query, entity.PrimaryKey(), table.parentKey(entity), string(payload))
	return err
}

// listChildren decodes every payload of kind whose parent column equals parentID.
func listChildren[T any](ctx context.Context, db *sql.DB, kind model.DomainKind, parentID string) ([]*T, error) {
	table := recordTables[kind]
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE %s = ? ORDER BY rowid`, table.name, table.parent)

	rows, err := db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", table.name)
	}
	defer rows.Close()

	records := []*T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrapf(err, "scan %s", table.name)
		}
		record := new(T)
		if err := json.Unmarshal([]byte(payload), record); err != nil {
			return nil, errors.Wrapf(err, "decode %s", table.name)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetWorkDay returns the local copy of a work day.
func (s *Store) GetWorkDay(ctx context.Context, workDayID string) (*model.WorkDay, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM work_days WHERE id_work_day = ?`, workDayID).Scan(&payload)
	if err != nil {
		return nil, errors.Wrapf(err, "get work day %s", workDayID)
	}

	workDay := &model.WorkDay{}
	if err := json.Unmarshal([]byte(payload), workDay); err != nil {
		return nil, errors.Wrapf(err, "decode work day %s", workDayID)
	}
	return workDay, nil
}

func (s *Store) GetInventoryOperationsByWorkDay(ctx context.Context, workDayID string) ([]*model.InventoryOperation, error) {
	return listChildren[model.InventoryOperation](ctx, s.db, model.KindInventoryOperation, workDayID)
}

func (s *Store) GetInventoryOperationLines(ctx context.Context, inventoryOperationID string) ([]*model.InventoryOperationLine, error) {
	return listChildren[model.InventoryOperationLine](ctx, s.db, model.KindInventoryOperationLine, inventoryOperationID)
}

func (s *Store) GetRouteTransactionsByWorkDay(ctx context.Context, workDayID string) ([]*model.RouteTransaction, error) {
	return listChildren[model.RouteTransaction](ctx, s.db, model.KindRouteTransaction, workDayID)
}

func (s *Store) GetRouteTransactionOperations(ctx context.Context, routeTransactionID string) ([]*model.RouteTransactionOperation, error) {
	return listChildren[model.RouteTransactionOperation](ctx, s.db, model.KindRouteTransactionOperation, routeTransactionID)
}

func (s *Store) GetRouteTransactionOperationLines(ctx context.Context, routeTransactionOperationID string) ([]*model.RouteTransactionOperationLine, error) {
	return listChildren[model.RouteTransactionOperationLine](ctx, s.db, model.KindRouteTransactionOperationLine, routeTransactionOperationID)
}
