// Package csvx contains a small preflight check for CSV files before they
// are shipped to the import endpoints. The backend does the real cleaning;
// this only rejects files that are obviously not importable so the user
// gets an answer without a round trip.
package csvx

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyFile = errors.New("csv file is empty")

// MissingColumnsError reports required header columns absent from the file.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("csv is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Preflight reads the header row of r and verifies that every column in
// required is present (case-insensitive, surrounding whitespace ignored).
// The rest of the file is not read.
func Preflight(r io.Reader, required []string) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyFile
		}
		return fmt.Errorf("reading csv header: %w", err)
	}

	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = struct{}{}
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}
