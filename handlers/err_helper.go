package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"socialite-server/db"
	"socialite-server/shared"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		// If marshalling fails, fall back to a simpler error message
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	log.Printf("API Error: %v\n", apiErr.Msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	_, writeErr := w.Write(bytes)
	if writeErr != nil {
		log.Printf("Error writing response: %v\n", writeErr)
	}
}

// writeDbError maps store sentinel errors onto the API error taxonomy.
// Anything unrecognized is a 500.
func writeDbError(w http.ResponseWriter, err error) {
	switch err {
	case db.ErrNotFound:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "not found",
		})
	case db.ErrEmailTaken:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    err.Error(),
		})
	case db.ErrUsernameTaken, db.ErrProfileExists, db.ErrHashtagExists, db.ErrAlreadyFollowing, db.ErrNotFollowing:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeConflict,
			Status: http.StatusBadRequest,
			Msg:    err.Error(),
		})
	case db.ErrInvalidToken:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid token",
		})
	default:
		log.Printf("db error: %v\n", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeValidationError(w http.ResponseWriter, msg string) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeValidation,
		Status: http.StatusBadRequest,
		Msg:    msg,
	})
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
