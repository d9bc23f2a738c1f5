package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	coreauth "Quill/internal/core/auth"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps auth service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coreauth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired",
			"Invalid username or password")

	case errors.Is(err, coreauth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired",
			"Invalid or expired token")

	default:
		log.Printf("Unexpected error in auth handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
