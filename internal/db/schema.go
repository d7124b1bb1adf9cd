package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    first_name    TEXT NOT NULL,
    last_name     TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS donation_items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    category    TEXT NOT NULL,
    condition   TEXT NOT NULL,
    description TEXT NOT NULL,
    location    TEXT NOT NULL,
    image_url   TEXT,
    self_pickup INTEGER NOT NULL DEFAULT 0,
    can_deliver INTEGER NOT NULL DEFAULT 0,
    status      TEXT NOT NULL DEFAULT 'available'
                CHECK (status IN ('available', 'requested', 'reserved', 'completed')),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    donor_id    INTEGER NOT NULL REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_donation_items_donor ON donation_items(donor_id);

CREATE TABLE IF NOT EXISTS item_requests (
    id               INTEGER PRIMARY KEY,
    message          TEXT,
    status           TEXT NOT NULL DEFAULT 'pending'
                     CHECK (status IN ('pending', 'accepted', 'rejected')),
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    user_id          INTEGER NOT NULL REFERENCES users(id),
    donation_item_id INTEGER NOT NULL REFERENCES donation_items(id)
);

CREATE INDEX IF NOT EXISTS idx_item_requests_item ON item_requests(donation_item_id);
CREATE INDEX IF NOT EXISTS idx_item_requests_user ON item_requests(user_id);

CREATE TABLE IF NOT EXISTS contact_messages (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    subject    TEXT NOT NULL,
    message    TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions (
    token      TEXT PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
