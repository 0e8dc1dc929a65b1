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

package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fieldsync/fieldsync/internal/apierror"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	details := "Some internal error details"
	apiErr := apierror.NewAPIError(apierror.ErrInternalServer, "Something went wrong", details)

	assert.Equal(t, apierror.ErrInternalServer, apiErr.Code)
	assert.Equal(t, "Something went wrong", apiErr.Message)
	assert.Equal(t, details, apiErr.Details)
	assert.Equal(t, "INTERNAL_SERVER_ERROR: Something went wrong", apiErr.Error())
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "NotFound Error",
			err:      apierror.NewAPIError(apierror.ErrNotFound, "Resource not found", nil),
			expected: http.StatusNotFound,
		},
		{
			name:     "Conflict Error",
			err:      apierror.NewAPIError(apierror.ErrConflict, "Conflict occurred", nil),
			expected: http.StatusConflict,
		},
		{
			name:     "InvalidInput Error",
			err:      apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid input", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "BadRequest Error",
			err:      apierror.NewAPIError(apierror.ErrBadRequest, "Bad request", nil),
			expected: http.StatusBadRequest,
		},
		{
			name:     "Wrapped Conflict Error",
			err:      fmt.Errorf("insert work day: %w", apierror.NewAPIError(apierror.ErrConflict, "dup", nil)),
			expected: http.StatusConflict,
		},
		{
			name:     "Non-API Error",
			err:      errors.New("connection reset by peer"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, apierror.MapErrorToHTTPStatus(tt.err))
		})
	}
}

func TestFromPostgres(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected apierror.ErrorCode
	}{
		{
			name:     "Unique violation",
			err:      &pq.Error{Code: "23505", Constraint: "work_days_pkey"},
			expected: apierror.ErrConflict,
		},
		{
			name:     "Foreign key violation",
			err:      &pq.Error{Code: "23503", Message: "violates foreign key constraint"},
			expected: apierror.ErrInvalidInput,
		},
		{
			name:     "Not null violation",
			err:      &pq.Error{Code: "23502"},
			expected: apierror.ErrInvalidInput,
		},
		{
			name:     "Invalid text representation",
			err:      &pq.Error{Code: "22P02"},
			expected: apierror.ErrBadRequest,
		},
		{
			name:     "Serialization failure",
			err:      &pq.Error{Code: "40001"},
			expected: apierror.ErrInternalServer,
		},
		{
			name:     "Driver error",
			err:      errors.New("driver: bad connection"),
			expected: apierror.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := apierror.FromPostgres(tt.err, "Failed to insert")
			assert.Equal(t, tt.expected, apiErr.Code)
		})
	}
}

func TestFromPostgres_ConflictMapsTo409(t *testing.T) {
	apiErr := apierror.FromPostgres(&pq.Error{Code: "23505", Constraint: "route_transactions_pkey"}, "Failed to insert route transaction")
	assert.Equal(t, http.StatusConflict, apierror.MapErrorToHTTPStatus(apiErr))
	assert.Contains(t, apiErr.Message, "route_transactions_pkey")
}
