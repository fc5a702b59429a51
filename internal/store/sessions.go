package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/foodcourt/internal/model"
)

// SaveSession stores the session for a backend, replacing any previous one.
func SaveSession(ctx context.Context, db *sql.DB, baseURL string, s model.Session) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (base_url, token, admin, saved_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(base_url) DO UPDATE SET token = excluded.token, admin = excluded.admin, saved_at = CURRENT_TIMESTAMP`,
		sessionKey(baseURL), s.Token, s.Admin,
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// LoadSession returns the stored session for a backend. The zero session
// is returned when there is none.
func LoadSession(ctx context.Context, db *sql.DB, baseURL string) (model.Session, error) {
	var s model.Session
	err := db.QueryRowContext(ctx,
		`SELECT token, admin FROM sessions WHERE base_url = ?`, sessionKey(baseURL),
	).Scan(&s.Token, &s.Admin)
	if err == sql.ErrNoRows {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("loading session: %w", err)
	}
	return s, nil
}

// ClearSession forgets the session for a backend.
func ClearSession(ctx context.Context, db *sql.DB, baseURL string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE base_url = ?`, sessionKey(baseURL))
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func sessionKey(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
