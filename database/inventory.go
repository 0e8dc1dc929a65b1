package database

import (
	"context"
	"fmt"

	"github.com/fieldsync/fieldsync/internal/apierror"
	"github.com/fieldsync/fieldsync/model"
)

func (d Datasource) InsertInventoryOperation(ctx context.Context, operation *model.InventoryOperation) model.Result {
	return d.insert(ctx, "inventory operation", operation, `
		INSERT INTO inventory_operations (id_inventory_operation, id_work_day, id_inventory_operation_type, sign_confirmation, date, audit, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, operation.IDInventoryOperation, operation.IDWorkDay, operation.IDInventoryOperationType, operation.SignConfirmation, operation.Date, operation.Audit, operation.State)
}

func (d Datasource) UpdateInventoryOperation(ctx context.Context, operation *model.InventoryOperation) model.Result {
	return d.update(ctx, "inventory operation", operation.IDInventoryOperation, operation, `
		UPDATE inventory_operations
		SET id_work_day = $2, id_inventory_operation_type = $3, sign_confirmation = $4, date = $5, audit = $6, state = $7
		WHERE id_inventory_operation = $1
	`, operation.IDInventoryOperation, operation.IDWorkDay, operation.IDInventoryOperationType, operation.SignConfirmation, operation.Date, operation.Audit, operation.State)
}

func (d Datasource) InsertInventoryOperationLine(ctx context.Context, line *model.InventoryOperationLine) model.Result {
	return d.insert(ctx, "inventory operation line", line, `
		INSERT INTO inventory_operation_lines (id_product_operation_description, id_inventory_operation, id_product, amount, price_at_moment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, line.IDProductOperationDescription, line.IDInventoryOperation, line.IDProduct, line.Amount, line.PriceAtMoment, line.CreatedAt)
}

func (d Datasource) UpdateInventoryOperationLine(ctx context.Context, line *model.InventoryOperationLine) model.Result {
	return d.update(ctx, "inventory operation line", line.IDProductOperationDescription, line, `
		UPDATE inventory_operation_lines
		SET id_inventory_operation = $2, id_product = $3, amount = $4, price_at_moment = $5, created_at = $6
		WHERE id_product_operation_description = $1
	`, line.IDProductOperationDescription, line.IDInventoryOperation, line.IDProduct, line.Amount, line.PriceAtMoment, line.CreatedAt)
}

func (d Datasource) GetInventoryOperationsByWorkDay(ctx context.Context, workDayID string) ([]*model.InventoryOperation, error) {
	ctx, span := tracer.Start(ctx, "Fetching inventory operations by work day")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id_inventory_operation, id_work_day, id_inventory_operation_type, sign_confirmation, date, audit, state
		FROM inventory_operations
		WHERE id_work_day = $1
		ORDER BY date
	`, workDayID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve inventory operations", err)
	}
	defer rows.Close()

	var operations []*model.InventoryOperation
	for rows.Next() {
		operation := &model.InventoryOperation{}
		err = rows.Scan(
			&operation.IDInventoryOperation,
			&operation.IDWorkDay,
			&operation.IDInventoryOperationType,
			&operation.SignConfirmation,
			&operation.Date,
			&operation.Audit,
			&operation.State,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan inventory operation data", err)
		}
		operations = append(operations, operation)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over inventory operations", err)
	}

	return operations, nil
}

func (d Datasource) GetInventoryOperationLines(ctx context.Context, inventoryOperationID string) ([]*model.InventoryOperationLine, error) {
	ctx, span := tracer.Start(ctx, "Fetching inventory operation lines")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id_product_operation_description, id_inventory_operation, id_product, amount, price_at_moment, created_at
		FROM inventory_operation_lines
		WHERE id_inventory_operation = $1
	`, inventoryOperationID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, fmt.Sprintf("Failed to retrieve lines of inventory operation '%s'", inventoryOperationID), err)
	}
	defer rows.Close()

	var lines []*model.InventoryOperationLine
	for rows.Next() {
		line := &model.InventoryOperationLine{}
		err = rows.Scan(
			&line.IDProductOperationDescription,
			&line.IDInventoryOperation,
			&line.IDProduct,
			&line.Amount,
			&line.PriceAtMoment,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan inventory operation line data", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over inventory operation lines", err)
	}

	return lines, nil
}
