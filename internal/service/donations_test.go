package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mlakar/givehub/internal/model"
	"github.com/mlakar/givehub/internal/store"
)

func newService(t *testing.T, policy Policy) (*Donations, *model.User, *model.User) {
	t.Helper()
	s := store.NewMemory()
	ctx := context.Background()

	donor, err := s.CreateUser(ctx, model.NewUser{
		FirstName: "Dana", LastName: "Donor", Email: "dana@x.com", PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	requester, err := s.CreateUser(ctx, model.NewUser{
		FirstName: "Rey", LastName: "Requester", Email: "rey@x.com", PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	return &Donations{Store: s, Policy: policy}, donor, requester
}

func listItem(t *testing.T, d *Donations, donorID int64) *model.DonationItem {
	t.Helper()
	item, err := d.CreateDonation(context.Background(), donorID, model.NewDonationItem{
		Name:        "Lamp",
		Category:    "Household",
		Condition:   "Good",
		Description: "A reading lamp",
		Location:    "Maribor",
	})
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	return item
}

func TestCreateDonationValidation(t *testing.T) {
	d, donor, _ := newService(t, Policy{})
	ctx := context.Background()

	tests := []struct {
		name string
		in   model.NewDonationItem
	}{
		{"missing name", model.NewDonationItem{Category: "Books", Condition: "Good", Description: "d", Location: "l"}},
		{"missing description", model.NewDonationItem{Name: "n", Category: "Books", Condition: "Good", Location: "l"}},
		{"missing location", model.NewDonationItem{Name: "n", Category: "Books", Condition: "Good", Description: "d"}},
		{"bad category", model.NewDonationItem{Name: "n", Category: "Vehicles", Condition: "Good", Description: "d", Location: "l"}},
		{"bad condition", model.NewDonationItem{Name: "n", Category: "Books", Condition: "Broken", Description: "d", Location: "l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.CreateDonation(ctx, donor.ID, tt.in)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateDonationForcesAvailable(t *testing.T) {
	d, donor, _ := newService(t, Policy{})
	item := listItem(t, d, donor.ID)

	if item.Status != model.StatusAvailable {
		t.Errorf("expected 'available', got %q", item.Status)
	}
	if item.DonorID != donor.ID {
		t.Errorf("expected donor %d, got %d", donor.ID, item.DonorID)
	}
}

func TestRequestItemForcesRequested(t *testing.T) {
	d, donor, requester := newService(t, Policy{})
	ctx := context.Background()
	item := listItem(t, d, donor.ID)

	req, err := d.RequestItem(ctx, requester.ID, item.ID, "still available?")
	if err != nil {
		t.Fatalf("RequestItem: %v", err)
	}
	if req.Status != model.RequestPending {
		t.Errorf("expected 'pending', got %q", req.Status)
	}

	got, _ := d.Store.GetDonationItem(ctx, item.ID)
	if got.Status != model.StatusRequested {
		t.Errorf("expected item 'requested', got %q", got.Status)
	}
}

func TestRequestItemUnknownItem(t *testing.T) {
	d, _, requester := newService(t, Policy{})

	_, err := d.RequestItem(context.Background(), requester.ID, 9999, "")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for unknown item, got %v", err)
	}
}

func TestSelfRequestPolicy(t *testing.T) {
	// Default policy: a donor can request their own item.
	d, donor, _ := newService(t, Policy{})
	item := listItem(t, d, donor.ID)
	if _, err := d.RequestItem(context.Background(), donor.ID, item.ID, ""); err != nil {
		t.Errorf("permissive policy: self-request failed: %v", err)
	}

	// With the toggle on, it is rejected.
	d, donor, _ = newService(t, Policy{RejectSelfRequests: true})
	item = listItem(t, d, donor.ID)
	_, err := d.RequestItem(context.Background(), donor.ID, item.ID, "")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("strict policy: expected ValidationError, got %v", err)
	}
}

func TestDuplicateRequestPolicy(t *testing.T) {
	// Default policy: duplicates are allowed.
	d, donor, requester := newService(t, Policy{})
	ctx := context.Background()
	item := listItem(t, d, donor.ID)

	d.RequestItem(ctx, requester.ID, item.ID, "first")
	if _, err := d.RequestItem(ctx, requester.ID, item.ID, "second"); err != nil {
		t.Errorf("permissive policy: duplicate request failed: %v", err)
	}

	// With the toggle on, the second is rejected.
	d, donor, requester = newService(t, Policy{RejectDuplicateRequests: true})
	item = listItem(t, d, donor.ID)
	d.RequestItem(ctx, requester.ID, item.ID, "first")
	_, err := d.RequestItem(ctx, requester.ID, item.ID, "second")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("strict policy: expected ValidationError, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	d, donor, requester := newService(t, Policy{})
	ctx := context.Background()
	item := listItem(t, d, donor.ID)

	// Any of the four values is a valid destination, from anyone.
	updated, err := d.SetStatus(ctx, requester.ID, item.ID, model.StatusCompleted)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("expected 'completed', got %q", updated.Status)
	}

	// Unknown values are not.
	_, err = d.SetStatus(ctx, donor.ID, item.ID, "vanished")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for bad status, got %v", err)
	}

	// Unknown items are not found.
	if _, err := d.SetStatus(ctx, donor.ID, 9999, model.StatusReserved); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOwnerOnlyStatusPolicy(t *testing.T) {
	d, donor, requester := newService(t, Policy{OwnerOnlyStatusUpdates: true})
	ctx := context.Background()
	item := listItem(t, d, donor.ID)

	if _, err := d.SetStatus(ctx, requester.ID, item.ID, model.StatusReserved); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, err := d.SetStatus(ctx, donor.ID, item.ID, model.StatusReserved); err != nil {
		t.Errorf("owner update failed: %v", err)
	}
}

func TestListRequestsForItemOwnerOnly(t *testing.T) {
	d, donor, requester := newService(t, Policy{})
	ctx := context.Background()
	item := listItem(t, d, donor.ID)

	d.RequestItem(ctx, requester.ID, item.ID, "interested")

	// The ownership check here is unconditional, not a policy toggle.
	if _, err := d.ListRequestsForItem(ctx, requester.ID, item.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner, got %v", err)
	}

	requests, err := d.ListRequestsForItem(ctx, donor.ID, item.ID)
	if err != nil {
		t.Fatalf("ListRequestsForItem: %v", err)
	}
	if len(requests) != 1 || requests[0].UserID != requester.ID {
		t.Errorf("expected the requester's entry, got %+v", requests)
	}

	if _, err := d.ListRequestsForItem(ctx, donor.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown item, got %v", err)
	}
}
