package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promogpt/promoctl/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testClient(srv *httptest.Server) *HTTPClient {
	return NewHTTPClient(srv.URL, srv.Client(), testLogger())
}

func TestLogin_TokenKeyVariants(t *testing.T) {
	bodies := map[string]string{
		"access":       `{"access":"tok-a","user":{"id":1,"email":"a@b.com"}}`,
		"token":        `{"token":"tok-a","user":{"id":1,"email":"a@b.com"}}`,
		"access_token": `{"access_token":"tok-a","user":{"id":1,"email":"a@b.com"}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/users/login/", r.URL.Path)
				io.WriteString(w, body)
			}))
			defer srv.Close()

			res, err := testClient(srv).Login(context.Background(), "a@b.com", "pw")
			require.NoError(t, err)
			require.Equal(t, "tok-a", res.Token)
			require.Equal(t, "a@b.com", res.User.Email)
		})
	}
}

func TestLogin_SendsCredentials(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got = string(raw)
		io.WriteString(w, `{"access":"tok","user":{"email":"a@b.com"}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Login(context.Background(), "a@b.com", "s3cret")
	require.NoError(t, err)
	require.Contains(t, got, `"email":"a@b.com"`)
	require.Contains(t, got, `"password":"s3cret"`)
}

func TestLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv).Login(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"email":"a@b.com"}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrMalformedResponse)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_MissingUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"access":"tok"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestLogin_GarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>gateway error</html>`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, nil, testLogger())
	_, err := c.Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegister_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/register/", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"email":["user with this email already exists."]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "pw"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email: user with this email already exists.", ve.FirstMessage())
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-verify", r.Header.Get("Authorization"))
		require.Equal(t, "/users/me/", r.URL.Path)
		io.WriteString(w, `{"id":7,"email":"a@b.com","first_name":"Ann"}`)
	}))
	defer srv.Close()

	user, err := testClient(srv).Me(context.Background(), "tok-verify")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, "Ann", user.FirstName)
}

func TestMe_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv).Me(context.Background(), "stale")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestMe_EmptyIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).Me(context.Background(), "tok")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestListProducts_UnknownBusiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv).ListProducts(context.Background(), "no-such-shop")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUploadSalesCSV_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/business/corner-cafe/sales/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "sales.csv", hdr.Filename)

		raw, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, "product_name,quantity,date\nlatte,2,2025-01-01\n", string(raw))

		io.WriteString(w, `{"message":"ok","summary":{"created":1,"skipped":0}}`)
	}))
	defer srv.Close()

	data := strings.NewReader("product_name,quantity,date\nlatte,2,2025-01-01\n")
	summary, err := testClient(srv).UploadSalesCSV(context.Background(), "corner-cafe", "sales.csv", data)
	require.NoError(t, err)
	require.Equal(t, "ok", summary.Message)
	require.Equal(t, 1, summary.Summary["created"])
}

func TestFirstMessage(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string][]string
		want   string
	}{
		{"field keyed", map[string][]string{"phone": {"too short"}}, "phone: too short"},
		{"bare detail", map[string][]string{"detail": {"not allowed"}}, "not allowed"},
		{"bare error", map[string][]string{"error": {"boom"}}, "boom"},
		{"non field errors", map[string][]string{"non_field_errors": {"account locked"}}, "account locked"},
		{"sorted keys", map[string][]string{"zip": {"bad"}, "email": {"taken"}}, "email: taken"},
		{"empty", map[string][]string{}, "invalid request"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := &ValidationError{Fields: tc.fields}
			require.Equal(t, tc.want, e.FirstMessage())
		})
	}
}

func TestParseValidationBody(t *testing.T) {
	body := map[string]any{
		"email": []any{"taken", "too long"},
		"error": "nope",
		"count": 3.0,
	}
	ve := parseValidationBody(body)
	require.Equal(t, []string{"taken", "too long"}, ve.Fields["email"])
	require.Equal(t, []string{"nope"}, ve.Fields["error"])
	require.NotContains(t, ve.Fields, "count")
}
