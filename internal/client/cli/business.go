package cli

import (
	"context"
	"fmt"

	"github.com/promogpt/promoctl/internal/client/api"
)

// Businesses lists the businesses owned by the user and marks the selected one.
func (a *App) Businesses(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	businesses, err := a.api.ListBusinesses(ctx)
	if err != nil {
		a.printAuthError(err)
		return err
	}
	if len(businesses) == 0 {
		printlnFn("No businesses yet. Run 'newbusiness' to create one.")
		return nil
	}

	for _, b := range businesses {
		marker := "  "
		if b.Slug == a.business {
			marker = "* "
		}
		fmt.Fprintf(a.out, "%s%s\t%s\t%s, %s\n", marker, b.Slug, b.Name, b.Industry, b.Location)
	}
	return nil
}

// NewBusiness creates a business and selects it.
func (a *App) NewBusiness(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Business name", a.out)
	if err != nil {
		return err
	}
	industry, err := getSimpleText(a.reader, "Industry", a.out)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location", a.out)
	if err != nil {
		return err
	}

	created, err := a.api.CreateBusiness(ctx, api.BusinessRequest{
		Name:     name,
		Industry: industry,
		Location: location,
	})
	if err != nil {
		a.printAuthError(err)
		return err
	}

	a.business = created.Slug
	fmt.Fprintf(a.out, "Created %q (slug %s)\n", created.Name, created.Slug)
	return nil
}

// Use selects the business all data commands operate on.
func (a *App) Use(ctx context.Context) error {
	if !a.requireAuth(ctx) {
		return nil
	}

	slug, err := getSimpleText(a.reader, "Enter business slug", a.out)
	if err != nil {
		return err
	}
	if slug == "" {
		printlnFn("Slug cannot be empty.")
		return nil
	}
	a.business = slug
	printlnFn("Using business " + slug)
	return nil
}
