package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/virtuwear/wardrobe-backend/errs"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent at this point; nothing left but to log.
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

// RespondError sends a JSON error body with the given status.
func RespondError(w http.ResponseWriter, message string, status int) {
	RespondJSON(w, status, map[string]string{"error": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps a service error onto a status code. Store and
// unknown failures are logged with the operation name and hidden behind a
// generic 500 body.
func respondServiceError(w http.ResponseWriter, op string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", op, err)
		RespondError(w, "Internal Server Error", status)
		return
	}
	RespondError(w, err.Error(), status)
}
