// Package credentials persists the session credential pair (bearer token +
// cached user record) across program restarts.
//
// The pair has a strict lifecycle: written on successful login/register/
// verify, read once at boot, deleted on logout or verification failure.
// It is never partially updated.
package credentials

import (
	"context"

	"github.com/promogpt/promoctl/internal/client/models"
)

// StoredCredential is the persisted projection of an authenticated session.
type StoredCredential struct {
	Token string
	User  *models.User
}

// Store saves, loads and clears the credential pair.
//
// Contract:
//   - Save persists token and user together (atomically where the medium
//     allows).
//   - Load returns nil, nil when no complete pair is stored.
//   - Clear removes both; clearing an empty store is not an error.
type Store interface {
	Save(ctx context.Context, token string, user *models.User) error
	Load(ctx context.Context) (*StoredCredential, error)
	Clear(ctx context.Context) error
}

// NoopStore is the degraded store used when local storage cannot be opened.
// Saves and clears succeed silently, loads find nothing; the session then
// simply does not survive restarts.
type NoopStore struct{}

func (NoopStore) Save(context.Context, string, *models.User) error { return nil }
func (NoopStore) Load(context.Context) (*StoredCredential, error)  { return nil, nil }
func (NoopStore) Clear(context.Context) error                      { return nil }
