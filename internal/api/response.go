package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlakar/givehub/internal/service"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error body. The key is "message" to match the
// wire contract the clients were written against.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"message": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps workflow errors to HTTP responses. Internal detail is
// logged, never sent to the client.
func serviceError(w http.ResponseWriter, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Donation not found")
	case errors.Is(err, service.ErrForbidden):
		jsonError(w, http.StatusForbidden, "Unauthorized to perform this action")
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal error")
	}
}
