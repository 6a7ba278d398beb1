// Package manufacturability checks a design against practical production and
// handling limits and reports human-readable warnings. Warnings inform the
// final report; they do not feed the fitness function.
package manufacturability

import (
	"fmt"
	"math"

	"github.com/shelfwright/shelfwright/internal/materials"
	"github.com/shelfwright/shelfwright/internal/model"
)

// Production and handling limits.
const (
	maxPanelWeightKg             = 25.0
	maxAssemblyWeightKg          = 50.0
	maxAssemblyWeightEquipmentKg = 100.0

	shippingLengthMM = 2400.0
	shippingWidthMM  = 1200.0
	shippingHeightMM = 600.0

	hardwareWeightKg = 0.5
)

// Weights summarizes component and total masses for a design.
type Weights struct {
	SidePanel     float64 `json:"side_panel"`
	BottomPanel   float64 `json:"bottom_panel"`
	TopPanel      float64 `json:"top_panel"`
	ShelfPanel    float64 `json:"shelf_panel"`
	DividerPanel  float64 `json:"divider_panel"`
	HeaviestPanel float64 `json:"heaviest_panel"`
	Total         float64 `json:"total"`
}

// ComputeWeights calculates per-panel and total weights from the material
// density.
func ComputeWeights(d model.Design) Weights {
	density := materials.Get(d.Material).Density

	panelKg := func(a, b float64) float64 {
		return a * b * d.Thickness / 1e9 * density
	}

	w := Weights{
		SidePanel:   panelKg(d.Depth, d.Height),
		BottomPanel: panelKg(d.Width, d.Depth),
	}
	if d.AddTop {
		w.TopPanel = panelKg(d.Width, d.Depth)
	}
	if len(d.Shelves) > 0 {
		w.ShelfPanel = panelKg(d.BayWidth(), d.Depth)
	}
	if len(d.Dividers) > 0 {
		w.DividerPanel = panelKg(d.Depth, d.InteriorHeight())
	}

	w.Total = 2*w.SidePanel + w.BottomPanel + w.TopPanel +
		float64(len(d.Shelves)*d.NumBays())*w.ShelfPanel +
		float64(len(d.Dividers))*w.DividerPanel +
		hardwareWeightKg

	w.HeaviestPanel = math.Max(w.SidePanel,
		math.Max(w.BottomPanel,
			math.Max(w.TopPanel,
				math.Max(w.ShelfPanel, w.DividerPanel))))
	return w
}

// Analyze runs every check and returns the collected warnings. An empty
// slice means the design is unremarkable to produce.
func Analyze(d model.Design, targetLoadKg, materialCost float64) []string {
	var warnings []string
	warnings = append(warnings, checkPanelSizes(d)...)
	warnings = append(warnings, checkWeights(ComputeWeights(d))...)
	warnings = append(warnings, checkShipping(d)...)
	warnings = append(warnings, checkOverEngineering(d, targetLoadKg, materialCost)...)
	return warnings
}

func checkPanelSizes(d model.Design) []string {
	spec := materials.Get(d.Material)
	var out []string
	if d.Height > spec.SheetLength {
		out = append(out, fmt.Sprintf(
			"side panel height %.0fmm exceeds standard sheet length %.0fmm: requires splicing or special-order stock",
			d.Height, spec.SheetLength))
	}
	if d.Depth > spec.SheetWidth {
		out = append(out, fmt.Sprintf(
			"panel depth %.0fmm exceeds standard sheet width %.0fmm: requires splicing or special-order stock",
			d.Depth, spec.SheetWidth))
	}
	if d.Width > spec.SheetLength {
		out = append(out, fmt.Sprintf(
			"unit width %.0fmm exceeds standard sheet length %.0fmm: bottom/top panels require splicing",
			d.Width, spec.SheetLength))
	}
	if len(d.Dividers) > 0 && d.InteriorHeight() > spec.SheetLength {
		out = append(out, fmt.Sprintf(
			"divider height %.0fmm exceeds standard sheet length %.0fmm: dividers require splicing",
			d.InteriorHeight(), spec.SheetLength))
	}
	return out
}

func checkWeights(w Weights) []string {
	var out []string
	if w.HeaviestPanel > maxPanelWeightKg {
		out = append(out, fmt.Sprintf(
			"heaviest panel weighs %.1fkg (limit %.0fkg): two people needed to handle individual panels",
			w.HeaviestPanel, maxPanelWeightKg))
	}
	switch {
	case w.Total > maxAssemblyWeightEquipmentKg:
		out = append(out, fmt.Sprintf(
			"total assembly weight %.1fkg (limit %.0fkg): lifting equipment required",
			w.Total, maxAssemblyWeightEquipmentKg))
	case w.Total > maxAssemblyWeightKg:
		out = append(out, fmt.Sprintf(
			"total assembly weight %.1fkg (limit %.0fkg): two people needed for assembly",
			w.Total, maxAssemblyWeightKg))
	}
	return out
}

func checkShipping(d model.Design) []string {
	var over []string
	if d.Width > shippingLengthMM {
		over = append(over, fmt.Sprintf("width %.0fmm > %.0fmm", d.Width, shippingLengthMM))
	}
	if d.Depth > shippingWidthMM {
		over = append(over, fmt.Sprintf("depth %.0fmm > %.0fmm", d.Depth, shippingWidthMM))
	}
	if d.Height > shippingHeightMM {
		over = append(over, fmt.Sprintf("height %.0fmm > %.0fmm", d.Height, shippingHeightMM))
	}
	if len(over) == 0 {
		return nil
	}
	msg := "assembled dimensions exceed standard parcel limits ("
	for i, o := range over {
		if i > 0 {
			msg += ", "
		}
		msg += o
	}
	msg += "): freight shipping required"
	return []string{msg}
}

func checkOverEngineering(d model.Design, targetLoadKg, materialCost float64) []string {
	capacity := materials.LoadCapacity(d.BayWidth(), d.Depth, d.Thickness, d.Material)
	factor := capacity / math.Max(targetLoadKg, 10.0)

	var out []string
	if factor > 3.0 {
		// Capacity scales with thickness squared, so the recommended
		// thickness follows a square-root rule.
		recommended := math.Max(12.0, math.Round(d.Thickness*math.Sqrt(targetLoadKg/capacity)))
		savings := materialCost * (1.0 - recommended/d.Thickness)
		out = append(out, fmt.Sprintf(
			"over-engineered: capacity %.0fkg/bay is %.1fx the %.0fkg target; reducing thickness to ~%.0fmm saves ~%.2f in material",
			capacity, factor, targetLoadKg, recommended, savings))
	}
	if len(d.Dividers) > 0 && d.BayWidth() < 400 {
		out = append(out, fmt.Sprintf(
			"bay width %.0fmm is narrow for %d dividers: fewer dividers would save material and hardware",
			d.BayWidth(), len(d.Dividers)))
	}
	return out
}
