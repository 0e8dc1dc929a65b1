package model

import "net/http"

// Result is what the central repository returns for a single write.
// Code follows HTTP semantics: 200 update, 201 insert, 400 validation,
// 404 missing row, 409 unique-constraint conflict, 500 anything else.
type Result struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// IsSuccess reports a 200 or 201.
func (r Result) IsSuccess() bool {
	return r.Code == http.StatusOK || r.Code == http.StatusCreated
}

// IsConflict reports a duplicate key on the central side.
func (r Result) IsConflict() bool {
	return r.Code == http.StatusConflict
}
