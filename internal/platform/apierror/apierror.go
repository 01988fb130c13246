// Package apierror define el sobre JSON de errores 4xx/5xx.
// Los handlers nunca devuelven errores internos crudos al cliente.
package apierror

import (
	"encoding/json"
	"net/http"
)

// APIError es el cuerpo canónico de error.
type APIError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewValidation(fields map[string]string) *APIError {
	return &APIError{Detail: "validation failed", Fields: fields}
}

func Write(w http.ResponseWriter, status int, msg string) {
	write(w, status, New(msg))
}

func WriteValidation(w http.ResponseWriter, fields map[string]string) {
	write(w, http.StatusBadRequest, NewValidation(fields))
}

func write(w http.ResponseWriter, status int, e *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}
