// Package session owns the client's belief about who is logged in.
//
// The session is a three-state machine:
//
//	anonymous ──login/register──▶ authenticated
//	anonymous ◀──logout/expiry──  authenticated
//	(boot with a stored token passes through verifying first)
//
// Anonymous and authenticated are both stable resting states; verifying
// only exists between boot and the result of the single verification call.
package session

import (
	"errors"

	"github.com/promogpt/promoctl/internal/client/models"
)

type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusVerifying     Status = "verifying"
	StatusAuthenticated Status = "authenticated"
)

// ErrBusy is returned when a login or register call is already in flight.
// Overlapping attempts (double-submit) are rejected, not queued.
var ErrBusy = errors.New("another authentication attempt is in progress")

// Session is an immutable snapshot of the machine. Invariants:
// Token != "" exactly when Status is verifying or authenticated;
// User != nil implies Status is authenticated.
type Session struct {
	Status Status
	Token  string
	User   *models.User
}

func (s Session) LoggedIn() bool {
	return s.Status == StatusAuthenticated
}

// Listener observes state transitions. Listeners are called outside the
// manager's lock and must not block for long.
type Listener func(Session)
