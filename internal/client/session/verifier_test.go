package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/promogpt/promoctl/internal/client/api"
	"github.com/promogpt/promoctl/internal/client/models"
)

type meOnlyAPI struct {
	api.Client

	gotToken string
	user     *models.User
	err      error
}

func (a *meOnlyAPI) Me(_ context.Context, token string) (*models.User, error) {
	a.gotToken = token
	return a.user, a.err
}

func TestVerify_ResolvesCanonicalUser(t *testing.T) {
	want := &models.User{ID: 3, Email: "a@b.com"}
	apiClient := &meOnlyAPI{user: want}

	v := NewVerifier(apiClient, testLogger())
	user, err := v.Verify(context.Background(), "tok-x")
	require.NoError(t, err)
	require.Equal(t, want, user)
	require.Equal(t, "tok-x", apiClient.gotToken)
}

func TestVerify_ServerRejects(t *testing.T) {
	apiClient := &meOnlyAPI{err: api.ErrUnauthorized}

	v := NewVerifier(apiClient, testLogger())
	_, err := v.Verify(context.Background(), "stale")
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestVerify_ServerUnreachable(t *testing.T) {
	apiClient := &meOnlyAPI{err: api.ErrUnavailable}

	v := NewVerifier(apiClient, testLogger())
	_, err := v.Verify(context.Background(), "tok")
	require.ErrorIs(t, err, api.ErrUnavailable)
}

func TestVerify_ExpiredJWTStillAsksServer(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	apiClient := &meOnlyAPI{err: errors.New("expired")}
	v := NewVerifier(apiClient, testLogger())

	_, err = v.Verify(context.Background(), expired)
	require.Error(t, err)
	require.Equal(t, expired, apiClient.gotToken, "local expiry is advisory only")
}
