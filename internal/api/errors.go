package api

import (
	"encoding/json"
	"net/http"

	"stacklens/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error          string             `json:"error"`
	Code           string             `json:"code"`
	Details        interface{}        `json:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
	}

	if appErr, ok := err.(*errors.AppError); ok {
		resp.Code = string(appErr.Code)
		resp.Details = appErr.Details
		resp.SuggestedFixes = appErr.SuggestedFixes
	} else {
		resp.Code = string(errors.InternalError)
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// WriteAppError writes an AppError with automatic status code mapping
func WriteAppError(w http.ResponseWriter, err *errors.AppError) {
	WriteError(w, err, MapErrorToStatus(err.Code))
}

// MapErrorToStatus maps stacklens error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.InputAbsent, errors.InvalidRequest:
		return http.StatusBadRequest // 400
	case errors.Unauthorized:
		return http.StatusUnauthorized // 401
	case errors.RepoNotFound, errors.RunNotFound, errors.IndexMissing:
		return http.StatusNotFound // 404
	case errors.ParseFailed:
		return http.StatusUnprocessableEntity // 422
	case errors.RateLimited:
		return http.StatusTooManyRequests // 429
	case errors.BackendUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.Timeout:
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteAppError(w, errors.New(errors.InvalidRequest, message, nil))
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteAppError(w, errors.New(errors.RunNotFound, message, nil))
}

// MethodNotAllowed writes a 405 response
func MethodNotAllowed(w http.ResponseWriter) {
	WriteError(w, errors.New(errors.InvalidRequest, "method not allowed", nil),
		http.StatusMethodNotAllowed)
}
