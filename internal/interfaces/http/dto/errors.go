package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors carry their own codes; these
// cover failures that never reach a domain operation.
const (
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Keep this the
// only place the mapping lives; handlers never pick status codes by hand.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	// Authentication and gating
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"VENDOR_NOT_APPROVED": http.StatusForbidden,

	// Resources
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// Business rules
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INVALID_STATUS":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"INSUFFICIENT_POINTS": http.StatusUnprocessableEntity,
	"ITEM_UNAVAILABLE":    http.StatusUnprocessableEntity,
	"REWARD_INACTIVE":     http.StatusUnprocessableEntity,
	"STAFF_INACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_CHECKED_IN":  http.StatusConflict,

	// Collaborator services
	"RENDERING_UNAVAILABLE":  http.StatusServiceUnavailable,
	"RENDERING_FAILED":       http.StatusBadGateway,
	"MESSAGING_UNAVAILABLE":  http.StatusServiceUnavailable,
	"MESSAGING_FAILED":       http.StatusBadGateway,
	"EXTRACTION_UNAVAILABLE": http.StatusServiceUnavailable,
	"EXTRACTION_FAILED":      http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code. Domain codes
// starting with INVALID_ default to 422; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
