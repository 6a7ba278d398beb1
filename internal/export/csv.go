package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shelfwright/shelfwright/internal/engine"
)

// ExportConvergenceCSV writes the per-generation fitness history as CSV for
// plotting or spreadsheet analysis.
func ExportConvergenceCSV(path string, history []engine.ConvergenceEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "best", "average", "worst"}); err != nil {
		return err
	}
	for _, e := range history {
		record := []string{
			strconv.Itoa(e.Generation),
			strconv.FormatFloat(e.Best, 'f', 4, 64),
			strconv.FormatFloat(e.Average, 'f', 4, 64),
			strconv.FormatFloat(e.Worst, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
