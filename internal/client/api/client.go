// Package api implements the REST client for the PromoGPT backend.
//
// Authentication endpoints live under /users/; business-scoped data and
// campaign endpoints live under /business/{slug}/. Protected calls rely on
// the transport layer to attach the bearer token; Me takes the token
// explicitly because it runs before the session is established.
package api

import (
	"context"
	"io"

	"github.com/promogpt/promoctl/internal/client/models"
)

// AuthResult is the canonical outcome of a credential exchange. The wire
// response names the token inconsistently (access, token, access_token);
// the decoder folds all variants into Token.
type AuthResult struct {
	Token string
	User  *models.User
}

// RegisterRequest is the body of POST /users/register/.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// BusinessRequest is the body of POST /users/business/create/.
type BusinessRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
}

// CampaignRequest is the body of POST /business/{slug}/campaigns/.
type CampaignRequest struct {
	Goal   string  `json:"goal"`
	Budget float64 `json:"budget"`
}

// ImportSummary reports the outcome of a CSV upload. The products endpoint
// nests counters under "summary", the sales endpoint under "results".
type ImportSummary struct {
	Message string         `json:"message"`
	Summary map[string]int `json:"summary"`
	Results map[string]int `json:"results"`
}

// Counts returns whichever counter map the server filled in.
func (s *ImportSummary) Counts() map[string]int {
	if len(s.Summary) > 0 {
		return s.Summary
	}
	return s.Results
}

// Client is the surface of the backend consumed by the rest of the program.
type Client interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Me(ctx context.Context, token string) (*models.User, error)

	ListBusinesses(ctx context.Context) ([]models.Business, error)
	CreateBusiness(ctx context.Context, req BusinessRequest) (*models.Business, error)

	ListProducts(ctx context.Context, slug string) ([]models.Product, error)
	UploadProductsCSV(ctx context.Context, slug, filename string, data io.Reader) (*ImportSummary, error)

	ListSales(ctx context.Context, slug string) ([]models.SalesRecord, error)
	UploadSalesCSV(ctx context.Context, slug, filename string, data io.Reader) (*ImportSummary, error)

	ListCampaigns(ctx context.Context, slug string) ([]models.Campaign, error)
	GenerateCampaign(ctx context.Context, slug string, req CampaignRequest) (*models.Campaign, error)
}
