package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/promogpt/promoctl/internal/client/models"
	"github.com/promogpt/promoctl/internal/logging"
)

// HTTPClient is the Client implementation backed by net/http. The supplied
// http.Client is expected to carry the bearer-attaching transport, so this
// layer never touches tokens except on the explicit verification path.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, hc *http.Client, log logging.Logger) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, hc: hc, log: log}
}

// authResponse tolerates the token-key variants the backend has shipped
// over time. Exactly one of the three is expected to be set.
type authResponse struct {
	User        *models.User `json:"user"`
	Access      string       `json:"access"`
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
	Refresh     string       `json:"refresh"` // unused: no refresh rotation
}

func (r *authResponse) bearerToken() string {
	switch {
	case r.Access != "":
		return r.Access
	case r.Token != "":
		return r.Token
	default:
		return r.AccessToken
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/users/login/", "", body, &resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return authResult(&resp)
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/users/register/", "", req, &resp); err != nil {
		return nil, err
	}
	return authResult(&resp)
}

// authResult validates that a 2xx credential exchange actually produced a
// token and a user. A response missing either is never accepted.
func authResult(resp *authResponse) (*AuthResult, error) {
	token := resp.bearerToken()
	if token == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: auth response missing token or user", ErrMalformedResponse)
	}
	return &AuthResult{Token: token, User: resp.User}, nil
}

// Me fetches the canonical user record for the given token. The token is
// set on the request directly so verification works before the transport
// has a session token installed.
func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me/", token, nil, &user); err != nil {
		return nil, err
	}
	if user.Email == "" {
		return nil, fmt.Errorf("%w: identity response missing user", ErrMalformedResponse)
	}
	return &user, nil
}

func (c *HTTPClient) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var out []models.Business
	if err := c.do(ctx, http.MethodGet, "/users/business/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateBusiness(ctx context.Context, req BusinessRequest) (*models.Business, error) {
	var out models.Business
	if err := c.do(ctx, http.MethodPost, "/users/business/create/", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, slug string) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/business/"+slug+"/products/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UploadProductsCSV(ctx context.Context, slug, filename string, data io.Reader) (*ImportSummary, error) {
	return c.upload(ctx, "/business/"+slug+"/products/upload/", filename, data)
}

func (c *HTTPClient) ListSales(ctx context.Context, slug string) ([]models.SalesRecord, error) {
	var out []models.SalesRecord
	if err := c.do(ctx, http.MethodGet, "/business/"+slug+"/sales/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UploadSalesCSV(ctx context.Context, slug, filename string, data io.Reader) (*ImportSummary, error) {
	return c.upload(ctx, "/business/"+slug+"/sales/upload/", filename, data)
}

func (c *HTTPClient) ListCampaigns(ctx context.Context, slug string) ([]models.Campaign, error) {
	var out []models.Campaign
	if err := c.do(ctx, http.MethodGet, "/business/"+slug+"/campaigns/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GenerateCampaign(ctx context.Context, slug string, req CampaignRequest) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.do(ctx, http.MethodPost, "/business/"+slug+"/campaigns/", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one JSON round trip. token is only set on the explicit
// verification path; otherwise the transport decides what to attach.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, joinPath(c.baseURL, path), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.roundTrip(req, out)
}

// upload posts a CSV file as multipart/form-data under the "file" field.
func (c *HTTPClient) upload(ctx context.Context, path, filename string, data io.Reader) (*ImportSummary, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("preparing upload: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("reading upload data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinPath(c.baseURL, path), &buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var summary ImportSummary
	if err := c.roundTrip(req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *HTTPClient) roundTrip(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(req, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s %s: %v", ErrMalformedResponse, req.Method, req.URL.Path, err)
	}
	return nil
}

// statusError maps a non-2xx response to the error taxonomy.
func (c *HTTPClient) statusError(req *http.Request, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	c.log.Debug(req.Context(), "request failed",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil || len(body) == 0 {
			return &ValidationError{Fields: map[string][]string{"error": {resp.Status}}}
		}
		return parseValidationBody(body)
	default:
		return fmt.Errorf("%w: %s %s returned %s", ErrUnavailable, req.Method, req.URL.Path, resp.Status)
	}
}
