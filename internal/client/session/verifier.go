package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/promogpt/promoctl/internal/client/api"
	"github.com/promogpt/promoctl/internal/client/models"
	"github.com/promogpt/promoctl/internal/logging"
)

// Verifier validates a stored token against the identity endpoint.
// One attempt per boot, no retries; any failure means the token is treated
// as invalid regardless of cause.
type Verifier struct {
	api api.Client
	log logging.Logger
}

func NewVerifier(apiClient api.Client, log logging.Logger) *Verifier {
	return &Verifier{api: apiClient, log: log}
}

// Verify resolves the canonical user record for token.
func (v *Verifier) Verify(ctx context.Context, token string) (*models.User, error) {
	v.peekExpiry(ctx, token)

	user, err := v.api.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	return user, nil
}

// peekExpiry decodes the token without signature verification, purely so
// the log can say why a rejection was likely. The server remains the only
// authority; the verification call is made either way.
func (v *Verifier) peekExpiry(ctx context.Context, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		v.log.Debug(ctx, "stored token is not a parseable JWT")
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		v.log.Debug(ctx, "stored token is past its expiry", "expired_at", exp.Time)
	}
}
