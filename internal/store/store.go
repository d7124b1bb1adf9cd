// Package store defines the persistence contract for the application and
// provides two interchangeable implementations: a durable SQLite backend
// and an in-memory backend. Business logic only ever sees the Store
// interface; the backend is picked once, at process start.
package store

import (
	"context"
	"errors"

	"github.com/mlakar/givehub/internal/model"
)

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
var ErrEmailTaken = errors.New("email already in use")

// Store is the persistence contract. Lookups by id return (nil, nil)
// when the id is unknown; an error always means the store itself failed.
type Store interface {
	// Users.
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u model.NewUser) (*model.User, error)

	// Donation items. Listings are ordered by creation time, newest first.
	GetDonationItem(ctx context.Context, id int64) (*model.DonationItem, error)
	ListDonationItems(ctx context.Context, limit int) ([]model.DonationItem, error)
	ListDonationItemsByCategory(ctx context.Context, category string) ([]model.DonationItem, error)
	ListDonationItemsByDonor(ctx context.Context, donorID int64) ([]model.DonationItem, error)
	CreateDonationItem(ctx context.Context, item model.NewDonationItem) (*model.DonationItem, error)
	UpdateDonationItemStatus(ctx context.Context, id int64, status string) (*model.DonationItem, error)

	// Item requests. CreateItemRequest inserts the request and then forces
	// the referenced donation item to "requested", in that order, as one
	// atomic operation.
	CreateItemRequest(ctx context.Context, req model.NewItemRequest) (*model.ItemRequest, error)
	ListItemRequestsByUser(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListItemRequestsByItem(ctx context.Context, itemID int64) ([]model.ItemRequest, error)

	// Contact messages, append-only.
	CreateContactMessage(ctx context.Context, msg model.NewContactMessage) (*model.ContactMessage, error)
}
