package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mlakar/givehub/internal/model"
)

// Memory is the in-process Store implementation: maps guarded by a mutex,
// incrementing integer ids. Useful for tests and demo runs; all data is
// lost on exit.
type Memory struct {
	mu sync.Mutex

	users     map[int64]model.User
	items     map[int64]model.DonationItem
	requests  map[int64]model.ItemRequest
	contacts  map[int64]model.ContactMessage
	userID    int64
	itemID    int64
	requestID int64
	contactID int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[int64]model.User),
		items:    make(map[int64]model.DonationItem),
		requests: make(map[int64]model.ItemRequest),
		contacts: make(map[int64]model.ContactMessage),
	}
}

// GetUser returns a user by ID.
func (m *Memory) GetUser(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetUserByEmail returns a user by email. The match is exact, including case.
func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.findUserByEmail(email), nil
}

func (m *Memory) findUserByEmail(email string) *model.User {
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u
		}
	}
	return nil
}

// CreateUser creates a new user.
func (m *Memory) CreateUser(ctx context.Context, nu model.NewUser) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findUserByEmail(nu.Email) != nil {
		return nil, ErrEmailTaken
	}

	m.userID++
	u := model.User{
		ID:           m.userID,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[u.ID] = u
	return &u, nil
}

// GetDonationItem returns a donation item by ID.
func (m *Memory) GetDonationItem(ctx context.Context, id int64) (*model.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// newestFirst sorts donation items by creation time, newest first, with
// the id as tiebreak so ordering is stable within one timestamp.
func newestFirst(items []model.DonationItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

// ListDonationItems returns donation items, newest first, optionally capped.
func (m *Memory) ListDonationItems(ctx context.Context, limit int) ([]model.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]model.DonationItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	newestFirst(items)

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// ListDonationItemsByCategory returns donation items in a category, newest
// first. The category match is case-insensitive.
func (m *Memory) ListDonationItemsByCategory(ctx context.Context, category string) ([]model.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []model.DonationItem
	for _, item := range m.items {
		if strings.EqualFold(item.Category, category) {
			items = append(items, item)
		}
	}
	newestFirst(items)
	return items, nil
}

// ListDonationItemsByDonor returns all donation items listed by a donor,
// newest first.
func (m *Memory) ListDonationItemsByDonor(ctx context.Context, donorID int64) ([]model.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []model.DonationItem
	for _, item := range m.items {
		if item.DonorID == donorID {
			items = append(items, item)
		}
	}
	newestFirst(items)
	return items, nil
}

// CreateDonationItem creates a new donation item with status "available".
func (m *Memory) CreateDonationItem(ctx context.Context, ni model.NewDonationItem) (*model.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.itemID++
	item := model.DonationItem{
		ID:          m.itemID,
		Name:        ni.Name,
		Category:    ni.Category,
		Condition:   ni.Condition,
		Description: ni.Description,
		Location:    ni.Location,
		ImageURL:    ni.ImageURL,
		SelfPickup:  ni.SelfPickup,
		CanDeliver:  ni.CanDeliver,
		Status:      model.StatusAvailable,
		CreatedAt:   time.Now().UTC(),
		DonorID:     ni.DonorID,
	}
	m.items[item.ID] = item
	return &item, nil
}

// UpdateDonationItemStatus replaces a donation item's status. Returns
// (nil, nil) for an unknown id.
func (m *Memory) UpdateDonationItemStatus(ctx context.Context, id int64, status string) (*model.DonationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	item.Status = status
	m.items[id] = item
	return &item, nil
}

// CreateItemRequest records a request and forces the referenced item to
// "requested". Both steps happen under one lock hold, so readers never
// observe the request without the transition.
func (m *Memory) CreateItemRequest(ctx context.Context, nr model.NewItemRequest) (*model.ItemRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestID++
	r := model.ItemRequest{
		ID:             m.requestID,
		Message:        nr.Message,
		Status:         model.RequestPending,
		CreatedAt:      time.Now().UTC(),
		UserID:         nr.UserID,
		DonationItemID: nr.DonationItemID,
	}
	m.requests[r.ID] = r

	if item, ok := m.items[nr.DonationItemID]; ok {
		item.Status = model.StatusRequested
		m.items[item.ID] = item
	}

	return &r, nil
}

func requestsNewestFirst(requests []model.ItemRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID > requests[j].ID
	})
}

// ListItemRequestsByUser returns a user's requests, newest first.
func (m *Memory) ListItemRequestsByUser(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var requests []model.ItemRequest
	for _, r := range m.requests {
		if r.UserID == userID {
			requests = append(requests, r)
		}
	}
	requestsNewestFirst(requests)
	return requests, nil
}

// ListItemRequestsByItem returns the requests against a donation item,
// newest first.
func (m *Memory) ListItemRequestsByItem(ctx context.Context, itemID int64) ([]model.ItemRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var requests []model.ItemRequest
	for _, r := range m.requests {
		if r.DonationItemID == itemID {
			requests = append(requests, r)
		}
	}
	requestsNewestFirst(requests)
	return requests, nil
}

// CreateContactMessage stores a contact form submission.
func (m *Memory) CreateContactMessage(ctx context.Context, nm model.NewContactMessage) (*model.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contactID++
	msg := model.ContactMessage{
		ID:        m.contactID,
		Name:      nm.Name,
		Email:     nm.Email,
		Subject:   nm.Subject,
		Message:   nm.Message,
		CreatedAt: time.Now().UTC(),
	}
	m.contacts[msg.ID] = msg
	return &msg, nil
}
