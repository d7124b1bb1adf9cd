package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlakar/givehub/internal/model"
)

// SQLite is the durable Store implementation backed by a SQLite database.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite wraps an open database handle. The schema must already be
// applied (db.Migrate).
func NewSQLite(database *sql.DB) *SQLite {
	return &SQLite{DB: database}
}

// GetUser returns a user by ID.
func (s *SQLite) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email. The match is exact, including case.
func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// CreateUser creates a new user. The password hash is computed by the caller.
func (s *SQLite) CreateUser(ctx context.Context, nu model.NewUser) (*model.User, error) {
	existing, err := s.GetUserByEmail(ctx, nu.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?)`,
		nu.FirstName, nu.LastName, nu.Email, nu.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return s.GetUser(ctx, id)
}

const donationItemColumns = `id, name, category, condition, description, location,
	image_url, self_pickup, can_deliver, status, created_at, donor_id`

func scanDonationItem(row *sql.Row) (*model.DonationItem, error) {
	item := &model.DonationItem{}
	var imageURL sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Condition,
		&item.Description, &item.Location, &imageURL, &item.SelfPickup,
		&item.CanDeliver, &item.Status, &item.CreatedAt, &item.DonorID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning donation item: %w", err)
	}
	item.ImageURL = imageURL.String
	return item, nil
}

func scanDonationItems(rows *sql.Rows) ([]model.DonationItem, error) {
	var items []model.DonationItem
	for rows.Next() {
		var item model.DonationItem
		var imageURL sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Condition,
			&item.Description, &item.Location, &imageURL, &item.SelfPickup,
			&item.CanDeliver, &item.Status, &item.CreatedAt, &item.DonorID); err != nil {
			return nil, fmt.Errorf("scanning donation item: %w", err)
		}
		item.ImageURL = imageURL.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetDonationItem returns a donation item by ID.
func (s *SQLite) GetDonationItem(ctx context.Context, id int64) (*model.DonationItem, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+donationItemColumns+` FROM donation_items WHERE id = ?`, id)
	item, err := scanDonationItem(row)
	if err != nil {
		return nil, fmt.Errorf("getting donation item: %w", err)
	}
	return item, nil
}

// ListDonationItems returns donation items, newest first, optionally capped.
// A limit of 0 means no cap.
func (s *SQLite) ListDonationItems(ctx context.Context, limit int) ([]model.DonationItem, error) {
	query := `SELECT ` + donationItemColumns + `
	          FROM donation_items ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing donation items: %w", err)
	}
	defer rows.Close()

	return scanDonationItems(rows)
}

// ListDonationItemsByCategory returns donation items in a category, newest
// first. The category match is case-insensitive.
func (s *SQLite) ListDonationItemsByCategory(ctx context.Context, category string) ([]model.DonationItem, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+donationItemColumns+`
		 FROM donation_items WHERE category = ? COLLATE NOCASE
		 ORDER BY created_at DESC, id DESC`, category,
	)
	if err != nil {
		return nil, fmt.Errorf("listing donation items by category: %w", err)
	}
	defer rows.Close()

	return scanDonationItems(rows)
}

// ListDonationItemsByDonor returns all donation items listed by a donor,
// newest first.
func (s *SQLite) ListDonationItemsByDonor(ctx context.Context, donorID int64) ([]model.DonationItem, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+donationItemColumns+`
		 FROM donation_items WHERE donor_id = ?
		 ORDER BY created_at DESC, id DESC`, donorID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing donation items by donor: %w", err)
	}
	defer rows.Close()

	return scanDonationItems(rows)
}

// CreateDonationItem creates a new donation item. The status is always
// "available" and the creation time is stamped by the database, whatever
// the caller sent.
func (s *SQLite) CreateDonationItem(ctx context.Context, ni model.NewDonationItem) (*model.DonationItem, error) {
	var imageURL any
	if ni.ImageURL != "" {
		imageURL = ni.ImageURL
	}

	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO donation_items
		 (name, category, condition, description, location, image_url, self_pickup, can_deliver, donor_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ni.Name, ni.Category, ni.Condition, ni.Description, ni.Location,
		imageURL, ni.SelfPickup, ni.CanDeliver, ni.DonorID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating donation item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting donation item id: %w", err)
	}

	return s.GetDonationItem(ctx, id)
}

// UpdateDonationItemStatus replaces the status of a donation item. It does
// not validate the legality of the transition; callers check enum
// membership. Returns (nil, nil) for an unknown id.
func (s *SQLite) UpdateDonationItemStatus(ctx context.Context, id int64, status string) (*model.DonationItem, error) {
	result, err := s.DB.ExecContext(ctx,
		`UPDATE donation_items SET status = ? WHERE id = ?`, status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating donation item status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating donation item status: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.GetDonationItem(ctx, id)
}

// CreateItemRequest records a request for a donation item and forces the
// item's status to "requested". The insert and the transition run inside
// one transaction: a fault between the two steps cannot leave the item
// status stale relative to the request history.
func (s *SQLite) CreateItemRequest(ctx context.Context, nr model.NewItemRequest) (*model.ItemRequest, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var message any
	if nr.Message != "" {
		message = nr.Message
	}

	// Step 1: record the request.
	result, err := tx.ExecContext(ctx,
		`INSERT INTO item_requests (message, user_id, donation_item_id) VALUES (?, ?, ?)`,
		message, nr.UserID, nr.DonationItemID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item request: %w", err)
	}

	// Step 2: mark the item requested, whatever its current status. This
	// is the intentional mutual-exclusion policy: a requested item is no
	// longer offered to other requesters.
	if _, err := tx.ExecContext(ctx,
		`UPDATE donation_items SET status = ? WHERE id = ?`,
		model.StatusRequested, nr.DonationItemID,
	); err != nil {
		return nil, fmt.Errorf("marking donation item requested: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item request id: %w", err)
	}

	return s.getItemRequest(ctx, id)
}

func (s *SQLite) getItemRequest(ctx context.Context, id int64) (*model.ItemRequest, error) {
	r := &model.ItemRequest{}
	var message sql.NullString
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, message, status, created_at, user_id, donation_item_id
		 FROM item_requests WHERE id = ?`, id,
	).Scan(&r.ID, &message, &r.Status, &r.CreatedAt, &r.UserID, &r.DonationItemID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item request: %w", err)
	}
	r.Message = message.String
	return r, nil
}

// ListItemRequestsByUser returns a user's requests, newest first.
func (s *SQLite) ListItemRequestsByUser(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, message, status, created_at, user_id, donation_item_id
		 FROM item_requests WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item requests by user: %w", err)
	}
	defer rows.Close()

	return scanItemRequests(rows)
}

// ListItemRequestsByItem returns the requests against a donation item,
// newest first.
func (s *SQLite) ListItemRequestsByItem(ctx context.Context, itemID int64) ([]model.ItemRequest, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, message, status, created_at, user_id, donation_item_id
		 FROM item_requests WHERE donation_item_id = ?
		 ORDER BY created_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item requests by item: %w", err)
	}
	defer rows.Close()

	return scanItemRequests(rows)
}

func scanItemRequests(rows *sql.Rows) ([]model.ItemRequest, error) {
	var requests []model.ItemRequest
	for rows.Next() {
		var r model.ItemRequest
		var message sql.NullString
		if err := rows.Scan(&r.ID, &message, &r.Status, &r.CreatedAt, &r.UserID, &r.DonationItemID); err != nil {
			return nil, fmt.Errorf("scanning item request: %w", err)
		}
		r.Message = message.String
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// CreateContactMessage stores a contact form submission.
func (s *SQLite) CreateContactMessage(ctx context.Context, nm model.NewContactMessage) (*model.ContactMessage, error) {
	result, err := s.DB.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, subject, message) VALUES (?, ?, ?, ?)`,
		nm.Name, nm.Email, nm.Subject, nm.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating contact message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting contact message id: %w", err)
	}

	m := &model.ContactMessage{}
	err = s.DB.QueryRowContext(ctx,
		`SELECT id, name, email, subject, message, created_at
		 FROM contact_messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting contact message: %w", err)
	}
	return m, nil
}
