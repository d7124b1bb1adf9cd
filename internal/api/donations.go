package api

import (
	"net/http"
	"strconv"

	"github.com/mlakar/givehub/internal/model"
	"github.com/mlakar/givehub/internal/service"
	"github.com/mlakar/givehub/internal/store"
)

// DonationsHandler handles donation listing endpoints.
type DonationsHandler struct {
	Store   store.Store
	Service *service.Donations
}

type createDonationRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ImageURL    string `json:"imageUrl"`
	SelfPickup  bool   `json:"selfPickup"`
	CanDeliver  bool   `json:"canDeliver"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// List handles GET /api/donations. Public; supports ?category= filtering
// (case-insensitive).
func (h *DonationsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var items []model.DonationItem
	var err error
	if category != "" {
		items, err = h.Store.ListDonationItemsByCategory(r.Context(), category)
	} else {
		items, err = h.Store.ListDonationItems(r.Context(), 0)
	}
	if err != nil {
		serviceError(w, err)
		return
	}
	if items == nil {
		items = []model.DonationItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/donations/{id}. Public.
func (h *DonationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid donation id")
		return
	}

	item, err := h.Store.GetDonationItem(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "Donation not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/donations. The donor is the authenticated
// user; any donorId or status in the body is ignored.
func (h *DonationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.CreateDonation(r.Context(), UserID(r.Context()), model.NewDonationItem{
		Name:        req.Name,
		Category:    req.Category,
		Condition:   req.Condition,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		SelfPickup:  req.SelfPickup,
		CanDeliver:  req.CanDeliver,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// UpdateStatus handles PATCH /api/donations/{id}/status.
func (h *DonationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid donation id")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.SetStatus(r.Context(), UserID(r.Context()), id, req.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Mine handles GET /api/users/me/donations.
func (h *DonationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListDonationItemsByDonor(r.Context(), UserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	if items == nil {
		items = []model.DonationItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Requests handles GET /api/donations/{id}/requests. Owner only.
func (h *DonationsHandler) Requests(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid donation id")
		return
	}

	requests, err := h.Service.ListRequestsForItem(r.Context(), UserID(r.Context()), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if requests == nil {
		requests = []model.ItemRequest{}
	}
	jsonResponse(w, http.StatusOK, requests)
}
