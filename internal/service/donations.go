// Package service holds the donation lifecycle and request workflow. The
// store moves data; this layer decides what is allowed to move.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlakar/givehub/internal/model"
	"github.com/mlakar/givehub/internal/store"
)

// Workflow errors, mapped to HTTP status codes by the API layer.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError marks caller mistakes (malformed or disallowed input).
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Policy names the behavioral decisions the original application left
// implicit. All toggles default to false, which reproduces the observed
// permissive behavior exactly.
type Policy struct {
	// OwnerOnlyStatusUpdates restricts direct status updates to the
	// item's donor. The original lets any authenticated user update any
	// item's status.
	OwnerOnlyStatusUpdates bool
	// RejectSelfRequests stops a donor from requesting their own item.
	RejectSelfRequests bool
	// RejectDuplicateRequests stops a user from requesting the same item
	// twice.
	RejectDuplicateRequests bool
}

// Donations implements the donation item lifecycle and request workflow
// over a Store.
type Donations struct {
	Store  store.Store
	Policy Policy
}

// CreateDonation validates and creates a new listing for a donor. The
// store forces the initial status to "available" and stamps the creation
// time, whatever the caller supplied.
func (d *Donations) CreateDonation(ctx context.Context, donorID int64, in model.NewDonationItem) (*model.DonationItem, error) {
	switch {
	case in.Name == "":
		return nil, ValidationError("name required")
	case in.Description == "":
		return nil, ValidationError("description required")
	case in.Location == "":
		return nil, ValidationError("location required")
	case !model.ValidCategory(in.Category):
		return nil, ValidationError("invalid category")
	case !model.ValidCondition(in.Condition):
		return nil, ValidationError("invalid condition")
	}

	in.DonorID = donorID
	item, err := d.Store.CreateDonationItem(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating donation: %w", err)
	}

	slog.Info("donation listed", "item", item.ID, "donor", donorID, "category", item.Category)
	return item, nil
}

// RequestItem records a user's interest in a donation item. Creating the
// request always drives the item's status to "requested", regardless of
// its current status; that forced transition is the application's
// mutual-exclusion policy, not an accident.
func (d *Donations) RequestItem(ctx context.Context, userID, itemID int64, message string) (*model.ItemRequest, error) {
	item, err := d.Store.GetDonationItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("requesting item: %w", err)
	}
	if item == nil {
		return nil, ValidationError("donation item not found")
	}

	if d.Policy.RejectSelfRequests && item.DonorID == userID {
		slog.Info("self-request rejected by policy", "item", itemID, "user", userID)
		return nil, ValidationError("cannot request your own donation")
	}

	if d.Policy.RejectDuplicateRequests {
		existing, err := d.Store.ListItemRequestsByItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("requesting item: %w", err)
		}
		for _, r := range existing {
			if r.UserID == userID {
				slog.Info("duplicate request rejected by policy", "item", itemID, "user", userID)
				return nil, ValidationError("you have already requested this donation")
			}
		}
	}

	req, err := d.Store.CreateItemRequest(ctx, model.NewItemRequest{
		Message:        message,
		UserID:         userID,
		DonationItemID: itemID,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting item: %w", err)
	}

	slog.Info("item requested", "item", itemID, "user", userID)
	return req, nil
}

// SetStatus updates a donation item's status. Only membership in the
// status enum is enforced; any transition among the four values is
// allowed, matching the original API.
func (d *Donations) SetStatus(ctx context.Context, actorID, itemID int64, status string) (*model.DonationItem, error) {
	if !model.ValidStatus(status) {
		return nil, ValidationError("invalid status")
	}

	item, err := d.Store.GetDonationItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("setting status: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if d.Policy.OwnerOnlyStatusUpdates && item.DonorID != actorID {
		slog.Info("status update rejected by policy", "item", itemID, "actor", actorID)
		return nil, ErrForbidden
	}

	updated, err := d.Store.UpdateDonationItemStatus(ctx, itemID, status)
	if err != nil {
		return nil, fmt.Errorf("setting status: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	slog.Info("donation status updated", "item", itemID, "status", status, "actor", actorID)
	return updated, nil
}

// ListRequestsForItem returns the requests against a donation item, most
// recent first. Only the item's donor may enumerate them.
func (d *Donations) ListRequestsForItem(ctx context.Context, actorID, itemID int64) ([]model.ItemRequest, error) {
	item, err := d.Store.GetDonationItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.DonorID != actorID {
		return nil, ErrForbidden
	}

	requests, err := d.Store.ListItemRequestsByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	return requests, nil
}
