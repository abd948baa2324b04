package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/promogpt/promoctl/internal/client/api"
	"github.com/promogpt/promoctl/internal/csvx"
)

// Required CSV columns, matching what the import endpoints clean on the
// server side. Checked locally so a wrong file fails before the upload.
var (
	productColumns = []string{"name"}
	salesColumns   = []string{"product_name", "quantity", "date"}
)

// Products lists the catalog of the selected business.
func (a *App) Products(ctx context.Context) error {
	if !a.requireAuth(ctx) || !a.requireBusiness() {
		return nil
	}

	products, err := a.api.ListProducts(ctx, a.business)
	if err != nil {
		a.printAuthError(err)
		return err
	}
	if len(products) == 0 {
		printlnFn("No products yet. Run 'upload-products' to import a CSV.")
		return nil
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "%s\t%.2f\t%s\n", p.Name, p.Price, p.Category)
	}
	return nil
}

// UploadProducts imports a product CSV into the selected business.
func (a *App) UploadProducts(ctx context.Context) error {
	return a.uploadCSV(ctx, "product", productColumns, a.api.UploadProductsCSV)
}

// Sales lists the sales records of the selected business.
func (a *App) Sales(ctx context.Context) error {
	if !a.requireAuth(ctx) || !a.requireBusiness() {
		return nil
	}

	sales, err := a.api.ListSales(ctx, a.business)
	if err != nil {
		a.printAuthError(err)
		return err
	}
	if len(sales) == 0 {
		printlnFn("No sales data yet. Run 'upload-sales' to import a CSV.")
		return nil
	}
	for _, s := range sales {
		fmt.Fprintf(a.out, "%s\tx%d\t%.2f\t%s\n", s.Date, s.Quantity, s.Revenue, s.Channel)
	}
	return nil
}

// UploadSales imports a sales CSV into the selected business.
func (a *App) UploadSales(ctx context.Context) error {
	return a.uploadCSV(ctx, "sales", salesColumns, a.api.UploadSalesCSV)
}

type uploadFn func(ctx context.Context, slug, filename string, data io.Reader) (*api.ImportSummary, error)

func (a *App) uploadCSV(ctx context.Context, kind string, required []string, upload uploadFn) error {
	if !a.requireAuth(ctx) || !a.requireBusiness() {
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to "+kind+" CSV file", a.out)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err.Error())
		return err
	}
	defer file.Close()

	if err := csvx.Preflight(file, required); err != nil {
		var mce *csvx.MissingColumnsError
		if errors.As(err, &mce) {
			printlnFn(mce.Error())
		} else {
			printlnFn("Not a usable CSV file:", err.Error())
		}
		return err
	}
	// Preflight consumed part of the file; upload needs it from the start.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	summary, err := upload(ctx, a.business, filepath.Base(path), file)
	if err != nil {
		a.printAuthError(err)
		return err
	}

	printlnFn(summary.Message)
	for key, n := range summary.Counts() {
		fmt.Fprintf(a.out, "  %s: %d\n", key, n)
	}
	return nil
}
