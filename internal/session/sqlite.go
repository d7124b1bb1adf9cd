package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore keeps sessions in the application database, so logins
// survive a server restart.
type SQLiteStore struct {
	DB *sql.DB
}

// NewSQLiteStore wraps an open database handle. The sessions table is part
// of the application schema.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: database}
}

// Create starts a session for a user and returns the opaque token.
func (s *SQLiteStore) Create(ctx context.Context, userID int64) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, time.Now().Add(TTL),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	// Opportunistically clean up expired sessions.
	_, _ = s.DB.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now(),
	)

	return token, nil
}

// Read resolves a token to a user id, renewing the inactivity deadline.
func (s *SQLiteStore) Read(ctx context.Context, token string) (int64, bool, error) {
	var userID int64
	var expiresAt time.Time
	err := s.DB.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE token = ?`, token,
	).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading session: %w", err)
	}

	if time.Now().After(expiresAt) {
		_, _ = s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return 0, false, nil
	}

	if _, err := s.DB.ExecContext(ctx,
		`UPDATE sessions SET expires_at = ? WHERE token = ?`,
		time.Now().Add(TTL), token,
	); err != nil {
		return 0, false, fmt.Errorf("renewing session: %w", err)
	}

	return userID, true, nil
}

// Destroy ends a session.
func (s *SQLiteStore) Destroy(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
