package database

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/fieldsync/fieldsync/internal/apierror"
	"github.com/fieldsync/fieldsync/model"
)

var tracer = otel.Tracer("fieldsync.central")

// resultFromError turns a repository error into the status-coded result the
// sync orchestrator interprets.
func resultFromError(err error) model.Result {
	return model.Result{
		Code:    apierror.MapErrorToHTTPStatus(err),
		Message: err.Error(),
	}
}

// insert runs an INSERT and reports 201 on success.
func (d Datasource) insert(ctx context.Context, entity string, data interface{}, query string, args ...interface{}) model.Result {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("Inserting %s", entity))
	defer span.End()

	_, err := d.Conn.ExecContext(ctx, query, args...)
	if err != nil {
		return resultFromError(apierror.FromPostgres(err, fmt.Sprintf("Failed to insert %s", entity)))
	}

	return model.Result{Code: http.StatusCreated, Data: data, Message: fmt.Sprintf("%s created", entity)}
}

// update runs an UPDATE keyed by primary key and reports 200, or 404 when no row matched.
func (d Datasource) update(ctx context.Context, entity, id string, data interface{}, query string, args ...interface{}) model.Result {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("Updating %s", entity))
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, query, args...)
	if err != nil {
		return resultFromError(apierror.FromPostgres(err, fmt.Sprintf("Failed to update %s", entity)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return resultFromError(apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err))
	}
	if rowsAffected == 0 {
		return resultFromError(apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("%s with ID '%s' not found", entity, id), nil))
	}

	return model.Result{Code: http.StatusOK, Data: data, Message: fmt.Sprintf("%s updated", entity)}
}
