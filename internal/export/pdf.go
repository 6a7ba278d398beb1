// Package export writes optimization results to shareable formats: a PDF
// design report, an XLSX cut list, DXF panel outlines and QR-coded part
// labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/shelfwright/shelfwright/internal/costing"
	"github.com/shelfwright/shelfwright/internal/engine"
	"github.com/shelfwright/shelfwright/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	drawAreaMaxH = 130.0
)

// ReportData bundles everything the PDF report renders.
type ReportData struct {
	Requirements model.Requirements
	Result       engine.Report
	Breakdown    costing.Breakdown
	Warnings     []string
}

// ExportPDF writes the design report: a scaled front elevation of the best
// design, the cost breakdown, manufacturability warnings and the convergence
// table.
func ExportPDF(path string, data ReportData) error {
	d := data.Result.Best
	if err := d.Validate(); err != nil {
		return fmt.Errorf("cannot render report: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	y := renderHeader(pdf, data)
	y = renderElevation(pdf, d, y)
	y = renderScoreSummary(pdf, data.Result.BestRecord, y)
	renderCostBreakdown(pdf, data.Breakdown, y)

	pdf.AddPage()
	y = renderWarnings(pdf, data.Warnings, marginTop)
	renderConvergence(pdf, data.Result.History, y+8)

	renderFooter(pdf)
	return pdf.OutputFileAndClose(path)
}

func renderHeader(pdf *fpdf.Fpdf, data ReportData) float64 {
	d := data.Result.Best

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Shelving Unit %s: %.0f x %.0f x %.0f mm", d.ID, d.Width, d.Height, d.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Material: %s | Thickness: %.0f mm | Shelves: %d | Dividers: %d | Target load: %.0f kg/bay",
		d.Material, d.Thickness, len(d.Shelves), len(d.Dividers), data.Requirements.TargetLoad)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	return drawAreaTop
}

// renderElevation draws the front elevation to scale: side panels, bottom,
// optional top, shelves and dividers. Returns the y position below the
// drawing.
func renderElevation(pdf *fpdf.Fpdf, d model.Design, top float64) float64 {
	drawW := pageWidth - marginLeft - marginRight
	scale := math.Min(drawW/d.Width, drawAreaMaxH/d.Height)

	canvasW := d.Width * scale
	canvasH := d.Height * scale
	offsetX := marginLeft + (drawW-canvasW)/2
	offsetY := top

	// PDF y grows downward; design z grows upward from the floor.
	toPage := func(z float64) float64 { return offsetY + canvasH - z*scale }

	// Carcass outline
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	t := d.Thickness * scale
	panel := func(x, y, w, h float64) {
		pdf.SetFillColor(210, 180, 140)
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")
	}

	// Sides
	panel(offsetX, offsetY, t, canvasH)
	panel(offsetX+canvasW-t, offsetY, t, canvasH)
	// Bottom
	panel(offsetX, toPage(d.Thickness), canvasW, t)
	// Top
	if d.AddTop {
		panel(offsetX, offsetY, canvasW, t)
	}
	// Shelves span the clear width
	for _, z := range d.Shelves {
		panel(offsetX+t, toPage(z), canvasW-2*t, t)
	}
	// Dividers run bottom to top of the interior
	interiorTop := offsetY
	if d.AddTop {
		interiorTop += t
	}
	for _, x := range d.Dividers {
		panel(offsetX+x*scale-t/2, interiorTop, t, toPage(d.Thickness)-interiorTop)
	}

	drawEnvelopeDims(pdf, d, scale, offsetX, offsetY, canvasW, canvasH)
	return offsetY + canvasH + 10
}

// drawEnvelopeDims adds width and height labels outside the elevation.
func drawEnvelopeDims(pdf *fpdf.Fpdf, d model.Design, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", d.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", d.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func renderScoreSummary(pdf *fpdf.Fpdf, rec engine.Record, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Optimization Result", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Fitness", fmt.Sprintf("%.1f", rec.Fitness)},
		{"Estimated Cost", fmt.Sprintf("%.2f", rec.Cost)},
		{"Load Capacity", fmt.Sprintf("%.0f kg/bay", rec.LoadCapacity)},
		{"Panel Area", fmt.Sprintf("%.2f m²", rec.PanelAreaM2)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y + 4
}

func renderCostBreakdown(pdf *fpdf.Fpdf, b costing.Breakdown, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cost Breakdown", "", 0, "L", false, 0, "")
	y += 9

	rows := []struct {
		label string
		value string
	}{
		{"Material", fmt.Sprintf("%.2f  (%d sheets, %.2f m²)", b.MaterialCost, b.SheetCount, b.PanelAreaM2)},
		{"Hardware", fmt.Sprintf("%.2f  (%d dowel holes, %d cam sets, %d pin holes)", b.HardwareCost, b.DowelHoles, b.CamSets, b.ShelfPinHoles)},
		{"Machine", fmt.Sprintf("%.2f  (%.1f min)", b.MachineCost, b.MachineMinutes)},
		{"Assembly", fmt.Sprintf("%.2f  (%.1f min)", b.AssemblyCost, b.AssemblyMinutes)},
		{"Total", fmt.Sprintf("%.2f", b.Total)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for i, row := range rows {
		if i == len(rows)-1 {
			pdf.SetFont("Helvetica", "B", 10)
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(35, 6, row.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(120, 6, row.value, "", 0, "L", false, 0, "")
		y += 7
	}
}

func renderWarnings(pdf *fpdf.Fpdf, warnings []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Manufacturability", "", 0, "L", false, 0, "")
	y += 9

	if len(warnings) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(160, 6, "No production concerns detected.", "", 0, "L", false, 0, "")
		return y + 8
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(170, 90, 0)
	for _, w := range warnings {
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-10, 4.5, "- "+w, "", "L", false)
		y = pdf.GetY() + 1.5
	}
	pdf.SetTextColor(0, 0, 0)
	return y
}

func renderConvergence(pdf *fpdf.Fpdf, history []engine.ConvergenceEntry, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Convergence", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 35, 35, 35}
	headers := []string{"Generation", "Best", "Average", "Worst"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range history {
		if y > pageHeight-marginBottom-8 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		row := []string{
			fmt.Sprintf("%d", e.Generation),
			fmt.Sprintf("%.2f", e.Best),
			fmt.Sprintf("%.2f", e.Average),
			fmt.Sprintf("%.2f", e.Worst),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 5.5, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 5.5
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by shelfwright - Shelving Unit Optimizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
