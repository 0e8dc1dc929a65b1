package database

import (
	"context"
	"fmt"

	"github.com/fieldsync/fieldsync/internal/apierror"
	"github.com/fieldsync/fieldsync/model"
)

func (d Datasource) InsertRouteTransaction(ctx context.Context, transaction *model.RouteTransaction) model.Result {
	return d.insert(ctx, "route transaction", transaction, `
		INSERT INTO route_transactions (id_route_transaction, id_work_day, id_store, id_payment_method, date, state)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, transaction.IDRouteTransaction, transaction.IDWorkDay, transaction.IDStore, transaction.IDPaymentMethod, transaction.Date, transaction.State)
}

func (d Datasource) UpdateRouteTransaction(ctx context.Context, transaction *model.RouteTransaction) model.Result {
	return d.update(ctx, "route transaction", transaction.IDRouteTransaction, transaction, `
		UPDATE route_transactions
		SET id_work_day = $2, id_store = $3, id_payment_method = $4, date = $5, state = $6
		WHERE id_route_transaction = $1
	`, transaction.IDRouteTransaction, transaction.IDWorkDay, transaction.IDStore, transaction.IDPaymentMethod, transaction.Date, transaction.State)
}

func (d Datasource) InsertRouteTransactionOperation(ctx context.Context, operation *model.RouteTransactionOperation) model.Result {
	return d.insert(ctx, "route transaction operation", operation, `
		INSERT INTO route_transaction_operations (id_route_transaction_operation, id_route_transaction, id_route_transaction_operation_type, state)
		VALUES ($1, $2, $3, $4)
	`, operation.IDRouteTransactionOperation, operation.IDRouteTransaction, operation.IDRouteTransactionOperationType, operation.State)
}

func (d Datasource) UpdateRouteTransactionOperation(ctx context.Context, operation *model.RouteTransactionOperation) model.Result {
	return d.update(ctx, "route transaction operation", operation.IDRouteTransactionOperation, operation, `
		UPDATE route_transaction_operations
		SET id_route_transaction = $2, id_route_transaction_operation_type = $3, state = $4
		WHERE id_route_transaction_operation = $1
	`, operation.IDRouteTransactionOperation, operation.IDRouteTransaction, operation.IDRouteTransactionOperationType, operation.State)
}

func (d Datasource) InsertRouteTransactionOperationLine(ctx context.Context, line *model.RouteTransactionOperationLine) model.Result {
	return d.insert(ctx, "route transaction operation line", line, `
		INSERT INTO route_transaction_operation_lines (id_route_transaction_operation_description, id_route_transaction_operation, id_product, amount, price_at_moment, state)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, line.IDRouteTransactionOperationDescription, line.IDRouteTransactionOperation, line.IDProduct, line.Amount, line.PriceAtMoment, line.State)
}

func (d Datasource) UpdateRouteTransactionOperationLine(ctx context.Context, line *model.RouteTransactionOperationLine) model.Result {
	return d.update(ctx, "route transaction operation line", line.IDRouteTransactionOperationDescription, line, `
		UPDATE route_transaction_operation_lines
		SET id_route_transaction_operation = $2, id_product = $3, amount = $4, price_at_moment = $5, state = $6
		WHERE id_route_transaction_operation_description = $1
	`, line.IDRouteTransactionOperationDescription, line.IDRouteTransactionOperation, line.IDProduct, line.Amount, line.PriceAtMoment, line.State)
}

func (d Datasource) GetRouteTransactionsByWorkDay(ctx context.Context, workDayID string) ([]*model.RouteTransaction, error) {
	ctx, span := tracer.Start(ctx, "Fetching route transactions by work day")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id_route_transaction, id_work_day, id_store, id_payment_method, date, state
		FROM route_transactions
		WHERE id_work_day = $1
		ORDER BY date
	`, workDayID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve route transactions", err)
	}
	defer rows.Close()

	var transactions []*model.RouteTransaction
	for rows.Next() {
		transaction := &model.RouteTransaction{}
		err = rows.Scan(
			&transaction.IDRouteTransaction,
			&transaction.IDWorkDay,
			&transaction.IDStore,
			&transaction.IDPaymentMethod,
			&transaction.Date,
			&transaction.State,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan route transaction data", err)
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over route transactions", err)
	}

	return transactions, nil
}

func (d Datasource) GetRouteTransactionOperations(ctx context.Context, routeTransactionID string) ([]*model.RouteTransactionOperation, error) {
	ctx, span := tracer.Start(ctx, "Fetching route transaction operations")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id_route_transaction_operation, id_route_transaction, id_route_transaction_operation_type, state
		FROM route_transaction_operations
		WHERE id_route_transaction = $1
	`, routeTransactionID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, fmt.Sprintf("Failed to retrieve operations of route transaction '%s'", routeTransactionID), err)
	}
	defer rows.Close()

	var operations []*model.RouteTransactionOperation
	for rows.Next() {
		operation := &model.RouteTransactionOperation{}
		err = rows.Scan(
			&operation.IDRouteTransactionOperation,
			&operation.IDRouteTransaction,
			&operation.IDRouteTransactionOperationType,
			&operation.State,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan route transaction operation data", err)
		}
		operations = append(operations, operation)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over route transaction operations", err)
	}

	return operations, nil
}

func (d Datasource) GetRouteTransactionOperationLines(ctx context.Context, routeTransactionOperationID string) ([]*model.RouteTransactionOperationLine, error) {
	ctx, span := tracer.Start(ctx, "Fetching route transaction operation lines")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id_route_transaction_operation_description, id_route_transaction_operation, id_product, amount, price_at_moment, state
		FROM route_transaction_operation_lines
		WHERE id_route_transaction_operation = $1
	`, routeTransactionOperationID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, fmt.Sprintf("Failed to retrieve lines of route transaction operation '%s'", routeTransactionOperationID), err)
	}
	defer rows.Close()

	var lines []*model.RouteTransactionOperationLine
	for rows.Next() {
		line := &model.RouteTransactionOperationLine{}
		err = rows.Scan(
			&line.IDRouteTransactionOperationDescription,
			&line.IDRouteTransactionOperation,
			&line.IDProduct,
			&line.Amount,
			&line.PriceAtMoment,
			&line.State,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan route transaction operation line data", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over route transaction operation lines", err)
	}

	return lines, nil
}
