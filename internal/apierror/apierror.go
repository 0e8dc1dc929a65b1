package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrConflict       ErrorCode = "CONFLICT"
	ErrBadRequest     ErrorCode = "BAD_REQUEST"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"
)

// Postgres SQLSTATE codes the central repository distinguishes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgDataExceptionClass  = "22"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	entry := logrus.WithField("code", code)
	if code == ErrInternalServer {
		entry.Error(details)
	} else if details != nil {
		entry.Debug(details)
	}
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// FromPostgres classifies a database error by its SQLSTATE. Errors that are not
// *pq.Error become ErrInternalServer.
func FromPostgres(err error, message string) APIError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return NewAPIError(ErrInternalServer, message, err)
	}

	code := string(pqErr.Code)
	switch {
	case code == pgUniqueViolation:
		return NewAPIError(ErrConflict, fmt.Sprintf("%s: duplicate key (%s)", message, pqErr.Constraint), err)
	case code == pgForeignKeyViolation, code == pgNotNullViolation, code == pgCheckViolation:
		return NewAPIError(ErrInvalidInput, fmt.Sprintf("%s: %s", message, pqErr.Message), err)
	case pqErr.Code.Class() == pgDataExceptionClass:
		return NewAPIError(ErrBadRequest, fmt.Sprintf("%s: %s", message, pqErr.Message), err)
	default:
		return NewAPIError(ErrInternalServer, message, err)
	}
}

func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict:
			return http.StatusConflict
		case ErrInvalidInput, ErrBadRequest:
			return http.StatusBadRequest
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
