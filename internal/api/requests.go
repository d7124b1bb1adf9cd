package api

import (
	"net/http"

	"github.com/mlakar/givehub/internal/model"
	"github.com/mlakar/givehub/internal/service"
	"github.com/mlakar/givehub/internal/store"
)

// RequestsHandler handles item request endpoints.
type RequestsHandler struct {
	Store   store.Store
	Service *service.Donations
}

type createRequestRequest struct {
	DonationItemID int64  `json:"donationItemId"`
	Message        string `json:"message"`
}

// Create handles POST /api/requests. The requester is the authenticated
// user. Creating the request drives the donation item to "requested".
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DonationItemID == 0 {
		jsonError(w, http.StatusBadRequest, "donationItemId required")
		return
	}

	request, err := h.Service.RequestItem(r.Context(), UserID(r.Context()), req.DonationItemID, req.Message)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, request)
}

// Mine handles GET /api/users/me/requests.
func (h *RequestsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListItemRequestsByUser(r.Context(), UserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	if requests == nil {
		requests = []model.ItemRequest{}
	}
	jsonResponse(w, http.StatusOK, requests)
}
