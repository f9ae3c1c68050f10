// Package export produces downloadable artifacts from the volunteer list:
// a CSV of the authoritative records and a rasterized ID card per record.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// csvHeader lists the exported columns in order.
var csvHeader = []string{"id", "name", "idNumber", "phone", "address", "joinDate"}

// WriteCSV writes the volunteer list as RFC 4180 CSV. Fields containing
// commas or quotes come out quoted.
func WriteCSV(w io.Writer, records []model.Volunteer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, v := range records {
		row := []string{
			v.ID,
			v.Name,
			v.IDNumber,
			v.PhoneNumber,
			v.Address,
			v.JoinDate.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", v.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
