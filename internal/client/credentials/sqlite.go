package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/promogpt/promoctl/internal/client/models"
	"github.com/promogpt/promoctl/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore keeps the credential pair in a two-row key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save writes both keys in a single transaction so a reload never observes
// a token without its user record.
func (s *SQLiteStore) Save(ctx context.Context, token string, user *models.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user record: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, encoded)
	})
}

// Load returns the stored pair, or nil if either half is missing. A token
// without a user record only happens on corruption; it is treated as no
// credentials rather than a half-authenticated state.
func (s *SQLiteStore) Load(ctx context.Context) (*StoredCredential, error) {
	token, err := get(ctx, s.db, keyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}

	rawUser, err := get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if len(rawUser) == 0 {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, fmt.Errorf("decoding cached user record: %w", err)
	}

	return &StoredCredential{Token: string(token), User: &user}, nil
}

// Clear removes the whole pair.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}
