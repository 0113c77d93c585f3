package utils

import (
	"encoding/json"
	"fl350-gear-hub/models"
	"net/http"
)

// RespondJSON writes data as a JSON body with the given status
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// RespondError writes the shared {statusCode, message} error body
func RespondError(w http.ResponseWriter, status int, message string) error {
	return RespondJSON(w, status, models.ErrorResponse{StatusCode: status, Message: message})
}

// MethodNotAllowed answers 405 and advertises the allowed method
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
