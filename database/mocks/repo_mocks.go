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

package mocks

import (
	"context"

	"github.com/fieldsync/fieldsync/model"
	"github.com/stretchr/testify/mock"
)

// MockCentralRepository is a mock implementation of the ICentralRepository interface
type MockCentralRepository struct {
	mock.Mock
}

// MockRecordSource is a mock implementation of the IRecordSource interface
type MockRecordSource struct {
	mock.Mock
}

// MockLocalQueueStore is a mock implementation of the ILocalQueueStore interface
type MockLocalQueueStore struct {
	mock.Mock
}

// Work day methods

func (m *MockCentralRepository) InsertWorkDay(ctx context.Context, workDay *model.WorkDay) model.Result {
	args := m.Called(ctx, workDay)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) UpdateWorkDay(ctx context.Context, workDay *model.WorkDay) model.Result {
	args := m.Called(ctx, workDay)
	return args.Get(0).(model.Result)
}

// Inventory methods

func (m *MockCentralRepository) InsertInventoryOperation(ctx context.Context, operation *model.InventoryOperation) model.Result {
	args := m.Called(ctx, operation)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) UpdateInventoryOperation(ctx context.Context, operation *model.InventoryOperation) model.Result {
	args := m.Called(ctx, operation)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) InsertInventoryOperationLine(ctx context.Context, line *model.InventoryOperationLine) model.Result {
	args := m.Called(ctx, line)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) UpdateInventoryOperationLine(ctx context.Context, line *model.InventoryOperationLine) model.Result {
	args := m.Called(ctx, line)
	return args.Get(0).(model.Result)
}

// Route transaction methods

func (m *MockCentralRepository) InsertRouteTransaction(ctx context.Context, transaction *model.RouteTransaction) model.Result {
	args := m.Called(ctx, transaction)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) UpdateRouteTransaction(ctx context.Context, transaction *model.RouteTransaction) model.Result {
	args := m.Called(ctx, transaction)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) InsertRouteTransactionOperation(ctx context.Context, operation *model.RouteTransactionOperation) model.Result {
	args := m.Called(ctx, operation)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) UpdateRouteTransactionOperation(ctx context.Context, operation *model.RouteTransactionOperation) model.Result {
	args := m.Called(ctx, operation)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) InsertRouteTransactionOperationLine(ctx context.Context, line *model.RouteTransactionOperationLine) model.Result {
	args := m.Called(ctx, line)
	return args.Get(0).(model.Result)
}

func (m *MockCentralRepository) UpdateRouteTransactionOperationLine(ctx context.Context, line *model.RouteTransactionOperationLine) model.Result {
	args := m.Called(ctx, line)
	return args.Get(0).(model.Result)
}

// Central read methods

func (m *MockCentralRepository) GetInventoryOperationsByWorkDay(ctx context.Context, workDayID string) ([]*model.InventoryOperation, error) {
	args := m.Called(ctx, workDayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryOperation), args.Error(1)
}

func (m *MockCentralRepository) GetInventoryOperationLines(ctx context.Context, inventoryOperationID string) ([]*model.InventoryOperationLine, error) {
	args := m.Called(ctx, inventoryOperationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryOperationLine), args.Error(1)
}

func (m *MockCentralRepository) GetRouteTransactionsByWorkDay(ctx context.Context, workDayID string) ([]*model.RouteTransaction, error) {
	args := m.Called(ctx, workDayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteTransaction), args.Error(1)
}

func (m *MockCentralRepository) GetRouteTransactionOperations(ctx context.Context, routeTransactionID string) ([]*model.RouteTransactionOperation, error) {
	args := m.Called(ctx, routeTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteTransactionOperation), args.Error(1)
}

func (m *MockCentralRepository) GetRouteTransactionOperationLines(ctx context.Context, routeTransactionOperationID string) ([]*model.RouteTransactionOperationLine, error) {
	args := m.Called(ctx, routeTransactionOperationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteTransactionOperationLine), args.Error(1)
}

// Record source methods

func (m *MockRecordSource) GetInventoryOperationsByWorkDay(ctx context.Context, workDayID string) ([]*model.InventoryOperation, error) {
	args := m.Called(ctx, workDayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryOperation), args.Error(1)
}

func (m *MockRecordSource) GetInventoryOperationLines(ctx context.Context, inventoryOperationID string) ([]*model.InventoryOperationLine, error) {
	args := m.Called(ctx, inventoryOperationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InventoryOperationLine), args.Error(1)
}

func (m *MockRecordSource) GetRouteTransactionsByWorkDay(ctx context.Context, workDayID string) ([]*model.RouteTransaction, error) {
	args := m.Called(ctx, workDayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteTransaction), args.Error(1)
}

func (m *MockRecordSource) GetRouteTransactionOperations(ctx context.Context, routeTransactionID string) ([]*model.RouteTransactionOperation, error) {
	args := m.Called(ctx, routeTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteTransactionOperation), args.Error(1)
}

func (m *MockRecordSource) GetRouteTransactionOperationLines(ctx context.Context, routeTransactionOperationID string) ([]*model.RouteTransactionOperationLine, error) {
	args := m.Called(ctx, routeTransactionOperationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RouteTransactionOperationLine), args.Error(1)
}

// Queue methods

func (m *MockLocalQueueStore) InsertActive(ctx context.Context, envelope model.RecordEnvelope) error {
	args := m.Called(ctx, envelope)
	return args.Error(0)
}

func (m *MockLocalQueueStore) InsertActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	args := m.Called(ctx, envelopes)
	return args.Error(0)
}

func (m *MockLocalQueueStore) UpdateActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	args := m.Called(ctx, envelopes)
	return args.Error(0)
}

func (m *MockLocalQueueStore) DeleteActiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	args := m.Called(ctx, envelopes)
	return args.Error(0)
}

func (m *MockLocalQueueStore) ListActive(ctx context.Context) ([]model.RecordEnvelope, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecordEnvelope), args.Error(1)
}

func (m *MockLocalQueueStore) InsertHistoricBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	args := m.Called(ctx, envelopes)
	return args.Error(0)
}

func (m *MockLocalQueueStore) ArchiveBatch(ctx context.Context, envelopes []model.RecordEnvelope) error {
	args := m.Called(ctx, envelopes)
	return args.Error(0)
}

func (m *MockLocalQueueStore) ListHistoric(ctx context.Context) ([]model.RecordEnvelope, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecordEnvelope), args.Error(1)
}

func (m *MockLocalQueueStore) DeleteHistoricByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
