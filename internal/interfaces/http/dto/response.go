package dto

import "net/http"

// ErrorResponse is the wire format for error responses. The field names are
// part of the API contract: {"error": ..., "message": ...}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response body
func NewErrorResponse(err, message string) ErrorResponse {
	return ErrorResponse{Error: err, Message: message}
}

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Unknown codes fall through to 500.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":        http.StatusNotFound,
	"ALREADY_EXISTS":   http.StatusConflict,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_PATIENT":  http.StatusBadRequest,
	"INVALID_AMOUNT":   http.StatusBadRequest,
	"INVALID_CURRENCY": http.StatusBadRequest,
	"INVALID_ITEM":     http.StatusBadRequest,
	"INVALID_ITEMS":    http.StatusBadRequest,
	"INVALID_STATUS":   http.StatusBadRequest,
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"UNAVAILABLE":      http.StatusServiceUnavailable,
}

// HTTPStatusForCode returns the HTTP status for a domain error code
func HTTPStatusForCode(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
