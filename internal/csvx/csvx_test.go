package csvx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreflight_AllColumnsPresent(t *testing.T) {
	in := strings.NewReader("name,price,category\nCoffee,3.50,drinks\n")
	require.NoError(t, Preflight(in, []string{"name"}))
}

func TestPreflight_CaseAndWhitespaceInsensitive(t *testing.T) {
	in := strings.NewReader(" Product_Name , Quantity ,Date\n")
	require.NoError(t, Preflight(in, []string{"product_name", "quantity", "date"}))
}

func TestPreflight_MissingColumns(t *testing.T) {
	in := strings.NewReader("product_name,quantity\n")
	err := Preflight(in, []string{"product_name", "quantity", "date"})

	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	require.Equal(t, []string{"date"}, mce.Columns)
}

func TestPreflight_EmptyFile(t *testing.T) {
	err := Preflight(strings.NewReader(""), []string{"name"})
	require.True(t, errors.Is(err, ErrEmptyFile))
}

func TestPreflight_OnlyReadsHeader(t *testing.T) {
	// Ragged data rows must not fail the preflight.
	in := strings.NewReader("name,price\na\nb,1,extra\n")
	require.NoError(t, Preflight(in, []string{"name", "price"}))
}
