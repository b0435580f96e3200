package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const accessTokenKey = "access_token"

// LoadToken returns the saved access token, or "" if none was saved.
func (j *Journal) LoadToken(ctx context.Context) (string, error) {
	var token string
	err := j.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE name = ?`, accessTokenKey).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// SaveToken stores token, replacing any previous one. An empty token
// deletes the saved credential.
func (j *Journal) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		if _, err := j.db.ExecContext(ctx, `DELETE FROM credentials WHERE name = ?`, accessTokenKey); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		return nil
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO credentials (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, accessTokenKey, token, j.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}
