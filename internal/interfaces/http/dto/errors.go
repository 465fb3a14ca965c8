package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes starting with INVALID_ fall back to 400 unless listed here.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":           http.StatusNotFound,
	"ALREADY_EXISTS":      http.StatusConflict,
	"POSITION_OCCUPIED":   http.StatusConflict,
	"UNAUTHORIZED":        http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"INSUFFICIENT_FUNDS":  http.StatusUnprocessableEntity,
	"CARD_ISSUE_FAILED":   http.StatusInternalServerError,
	"PERSISTENCE_FAILURE": http.StatusInternalServerError,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeInternal:       http.StatusInternalServerError,
	ErrCodeTokenInvalid:   http.StatusUnauthorized,
	ErrCodeTokenExpired:   http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
