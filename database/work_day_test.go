package database

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fieldsync/fieldsync/model"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newWorkDay() *model.WorkDay {
	return &model.WorkDay{
		IDWorkDay:      "wd_1",
		IDRoute:        "route_7",
		IDRouteDay:     "route_day_3",
		StartDate:      time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC),
		StartPettyCash: decimal.RequireFromString("500.00"),
	}
}

func TestInsertWorkDay_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds := Datasource{Conn: db}
	workDay := newWorkDay()

	mock.ExpectExec("INSERT INTO work_days").
		WithArgs(workDay.IDWorkDay, workDay.IDRoute, workDay.IDRouteDay, workDay.StartDate, sqlmock.AnyArg(), workDay.StartPettyCash, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := ds.InsertWorkDay(context.Background(), workDay)
	assert.Equal(t, http.StatusCreated, result.Code)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, workDay, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWorkDay_DuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds := Datasource{Conn: db}

	mock.ExpectExec("INSERT INTO work_days").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "work_days_pkey"})

	result := ds.InsertWorkDay(context.Background(), newWorkDay())
	assert.Equal(t, http.StatusConflict, result.Code)
	assert.True(t, result.IsConflict())
	assert.False(t, result.IsSuccess())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWorkDay_ConnectionFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds := Datasource{Conn: db}

	mock.ExpectExec("INSERT INTO work_days").WillReturnError(errors.New("connection refused"))

	result := ds.InsertWorkDay(context.Background(), newWorkDay())
	assert.Equal(t, http.StatusInternalServerError, result.Code)
	assert.Contains(t, result.Message, "Failed to insert work day")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWorkDay_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds := Datasource{Conn: db}
	workDay := newWorkDay()
	finish := workDay.StartDate.Add(9 * time.Hour)
	final := decimal.RequireFromString("1830.50")
	workDay.FinishDate = &finish
	workDay.FinalPettyCash = &final

	mock.ExpectExec("UPDATE work_days").
		WithArgs(workDay.IDWorkDay, workDay.IDRoute, workDay.IDRouteDay, workDay.StartDate, sqlmock.AnyArg(), workDay.StartPettyCash, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := ds.UpdateWorkDay(context.Background(), workDay)
	assert.Equal(t, http.StatusOK, result.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWorkDay_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds := Datasource{Conn: db}

	mock.ExpectExec("UPDATE work_days").WillReturnResult(sqlmock.NewResult(0, 0))

	result := ds.UpdateWorkDay(context.Background(), newWorkDay())
	assert.Equal(t, http.StatusNotFound, result.Code)
	assert.Contains(t, result.Message, "wd_1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
