// Package guard decides whether a view may be shown for the current
// session. The decision is a pure function of (session, requirement);
// Resolve adds the waiting needed while a boot-time verification is still
// in flight, so a protected view is never bounced to login a moment before
// the stored session turns out to be valid.
package guard

import (
	"context"

	"github.com/promogpt/promoctl/internal/client/session"
)

// Requirement classifies a view.
type Requirement int

const (
	// Public views render for anyone.
	Public Requirement = iota
	// RequiresAuth views render only for an authenticated session.
	RequiresAuth
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// Allow renders the requested view.
	Allow Decision = iota
	// Redirect sends the user to the login view instead.
	Redirect
	// Pending means verification has not settled yet; show a neutral
	// waiting indicator and decide again on the next transition.
	Pending
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "pending"
	}
}

// Decide maps a session snapshot and a view requirement to a decision.
func Decide(s session.Session, req Requirement) Decision {
	if req == Public {
		return Allow
	}
	switch s.Status {
	case session.StatusAuthenticated:
		return Allow
	case session.StatusVerifying:
		return Pending
	default:
		return Redirect
	}
}

// Resolve blocks until the decision settles to Allow or Redirect. While the
// session is verifying it waits for the next transition instead of
// redirecting early. Returns ctx.Err() if the caller gives up first.
func Resolve(ctx context.Context, m *session.Manager, req Requirement) (Decision, error) {
	if d := Decide(m.Current(), req); d != Pending {
		return d, nil
	}

	wake := make(chan struct{}, 1)
	cancel := m.Subscribe(func(session.Session) {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	defer cancel()

	for {
		// Re-check after subscribing: the transition may have already happened.
		if d := Decide(m.Current(), req); d != Pending {
			return d, nil
		}
		select {
		case <-wake:
		case <-ctx.Done():
			return Pending, ctx.Err()
		}
	}
}
