package api

import (
	"log/slog"
	"net/http"

	"github.com/mlakar/givehub/internal/model"
	"github.com/mlakar/givehub/internal/store"
)

// ContactHandler handles the contact form endpoint.
type ContactHandler struct {
	Store store.Store
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Create handles POST /api/contact. Public; append-only.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.Name == "":
		jsonError(w, http.StatusBadRequest, "Name required")
		return
	case req.Subject == "":
		jsonError(w, http.StatusBadRequest, "Subject required")
		return
	case len(req.Message) < 10:
		jsonError(w, http.StatusBadRequest, "Message must be at least 10 characters")
		return
	}
	if err := model.ValidateEmail(req.Email); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.Store.CreateContactMessage(r.Context(), model.NewContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		slog.Error("creating contact message", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	jsonResponse(w, http.StatusCreated, msg)
}
