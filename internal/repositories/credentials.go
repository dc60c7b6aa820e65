package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tidalq/tidalq/internal/models"
)

// CredentialsRepository persists the single [models.Credentials] record.
//
// The table is constrained to one row (id = 1): credentials are created by the
// authorization flow, loaded once at startup, and replaced only by
// re-authorization. There is no programmatic delete path besides [Clear],
// which exists for manual override.
type CredentialsRepository struct {
	db *sql.DB
}

// NewCredentialsRepository creates a new [CredentialsRepository] with the given database connection
func NewCredentialsRepository(db *sql.DB) *CredentialsRepository {
	return &CredentialsRepository{db: db}
}

// Load retrieves the stored credentials.
//
// Returns zero-value credentials (Complete() == false) when nothing has been
// stored yet; this is not an error.
func (r *CredentialsRepository) Load() (models.Credentials, error) {
	query := `
		SELECT token_type, access_token, refresh_token, expires_at
		FROM credentials
		WHERE id = 1
	`

	var (
		creds     models.Credentials
		expiresAt sql.NullTime
	)

	err := r.db.QueryRow(query).Scan(&creds.TokenType, &creds.AccessToken, &creds.RefreshToken, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credentials{}, nil
	}
	if err != nil {
		return models.Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}

	if expiresAt.Valid {
		creds.ExpiresAt = expiresAt.Time
	}

	return creds, nil
}

// Save writes the credentials, replacing any previous record.
//
// Called only at the end of a successful authorization; a timed-out or failed
// flow must never reach this method.
func (r *CredentialsRepository) Save(creds models.Credentials) error {
	query := `
		INSERT INTO credentials (id, token_type, access_token, refresh_token, expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token_type = excluded.token_type,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, creds.TokenType, creds.AccessToken, creds.RefreshToken, creds.ExpiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Clear removes the stored credentials.
func (r *CredentialsRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
