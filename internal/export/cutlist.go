package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shelfwright/shelfwright/internal/costing"
	"github.com/shelfwright/shelfwright/internal/model"
)

const cutListSheet = "Cut List"

// ExportCutList writes an XLSX workbook with one row per panel plus a
// hardware summary, ready for the sheet shop.
func ExportCutList(path string, d model.Design, b costing.Breakdown) error {
	panels, err := d.Panels()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cutListSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Panel", "Kind", "Width (mm)", "Height (mm)", "Thickness (mm)", "Material", "Area (m2)"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(cutListSheet, cell, h); err != nil {
			return err
		}
	}

	for r, p := range panels {
		row := r + 2
		values := []interface{}{p.Label, string(p.Kind), p.Width, p.Height, p.Thickness, string(d.Material), p.AreaM2()}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(cutListSheet, cell, v); err != nil {
				return err
			}
		}
	}

	// Hardware and cost summary below the panel table.
	summaryRow := len(panels) + 4
	summary := [][]interface{}{
		{"Sheets required", b.SheetCount},
		{"Dowel holes", b.DowelHoles},
		{"Cam sets", b.CamSets},
		{"Shelf pin holes", b.ShelfPinHoles},
		{"Machine minutes", b.MachineMinutes},
		{"Assembly minutes", b.AssemblyMinutes},
		{"Total cost", b.Total},
	}
	for i, pair := range summary {
		for c, v := range pair {
			cell, err := excelize.CoordinatesToCellName(c+1, summaryRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(cutListSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(cutListSheet, "A", "G", 16); err != nil {
		return err
	}

	return f.SaveAs(path)
}
