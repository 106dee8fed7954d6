package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mirap9615/owowclub-sub000/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeDomainError maps the sentinel domain errors onto HTTP statuses.
// Anything unrecognized is a dependency failure and stays generic.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicateApplication):
		WriteError(w, models.ErrDuplicateApplication.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrEmailTaken):
		WriteError(w, models.ErrEmailTaken.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInvalidToken):
		WriteError(w, models.ErrInvalidToken.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInviteInvalid):
		WriteError(w, models.ErrInviteInvalid.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidCredentials):
		WriteError(w, models.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, "Forbidden", http.StatusForbidden)
	default:
		WriteError(w, "Something went wrong", http.StatusInternalServerError)
	}
}
