package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/budget-keeper/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode and
// "Content-Type: application/json".
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	return WriteRawJSON(w, jsonData, statusCode)
}

// WriteRawJSON writes an already encoded JSON body.
func WriteRawJSON(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// WriteError writes {"error": message} with statusCode.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

// SetBearerToken exposes a freshly issued token in the Authorization
// response header in addition to the JSON body.
func SetBearerToken(w http.ResponseWriter, token string) {
	w.Header().Set("Authorization", "Bearer "+token)
}
