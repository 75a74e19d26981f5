// Package httpx provides HTTP response utilities for the chart APIs.
package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the error body the deployed chart client expects. Error is
// either boolean true or a short Turkish label depending on the endpoint
// generation; both forms are kept.
type APIError struct {
	Error   any    `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// MissingParam reports a required query parameter as HTTP 400.
func MissingParam(w http.ResponseWriter, name string) {
	JSON(w, http.StatusBadRequest, APIError{Error: true, Message: name + " parametresi gereklidir"})
}

// ServerError reports a failed aggregation as HTTP 500. The raw error text
// is forwarded in the message field, matching the deployed API contract.
func ServerError(w http.ResponseWriter, err error) {
	JSON(w, http.StatusInternalServerError, APIError{Error: true, Message: err.Error()})
}

// FailWith reports an error with the older label-style body.
func FailWith(w http.ResponseWriter, status int, label string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	JSON(w, status, APIError{Error: label, Message: msg})
}
