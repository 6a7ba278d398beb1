package model

import "fmt"

// PanelKind identifies a panel's role in the carcass.
type PanelKind string

const (
	PanelSideLeft  PanelKind = "side_left"
	PanelSideRight PanelKind = "side_right"
	PanelBottom    PanelKind = "bottom"
	PanelTop       PanelKind = "top"
	PanelShelf     PanelKind = "shelf"
	PanelDivider   PanelKind = "divider"
)

// Panel is one concrete piece of the derived cut list. Width and Height are
// the face dimensions in mm; depth-facing panels use the design depth as one
// of the two.
type Panel struct {
	Kind      PanelKind `json:"kind"`
	Label     string    `json:"label"`
	Width     float64   `json:"width"`     // mm
	Height    float64   `json:"height"`    // mm
	Thickness float64   `json:"thickness"` // mm
}

// AreaM2 returns the face area in square meters.
func (p Panel) AreaM2() float64 {
	return p.Width * p.Height / 1e6
}

// Panels derives the concrete panel list for the design: two sides, a
// bottom, an optional top, one panel per shelf, one per divider. Pure
// function; fails only with ErrInvalidGenome on malformed input.
func (d Design) Panels() ([]Panel, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	panels := []Panel{
		{Kind: PanelSideLeft, Label: "Side L", Width: d.Depth, Height: d.Height, Thickness: d.Thickness},
		{Kind: PanelSideRight, Label: "Side R", Width: d.Depth, Height: d.Height, Thickness: d.Thickness},
		{Kind: PanelBottom, Label: "Bottom", Width: d.Width, Height: d.Depth, Thickness: d.Thickness},
	}
	if d.AddTop {
		panels = append(panels, Panel{
			Kind: PanelTop, Label: "Top", Width: d.Width, Height: d.Depth, Thickness: d.Thickness,
		})
	}
	for i := range d.Shelves {
		panels = append(panels, Panel{
			Kind:      PanelShelf,
			Label:     fmt.Sprintf("Shelf %d", i+1),
			Width:     d.ClearWidth(),
			Height:    d.Depth,
			Thickness: d.Thickness,
		})
	}
	for i := range d.Dividers {
		panels = append(panels, Panel{
			Kind:      PanelDivider,
			Label:     fmt.Sprintf("Divider %d", i+1),
			Width:     d.Depth,
			Height:    d.InteriorHeight(),
			Thickness: d.Thickness,
		})
	}
	return panels, nil
}

// TotalAreaM2 sums the face areas of all derived panels.
func (d Design) TotalAreaM2() (float64, error) {
	panels, err := d.Panels()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range panels {
		total += p.AreaM2()
	}
	return total, nil
}

// EvenShelfPositions distributes n shelves evenly through the clear interior
// height, the classic reference layout.
func EvenShelfPositions(height, thickness float64, addTop bool, n int) []float64 {
	if n <= 0 {
		return nil
	}
	zMin := thickness
	zMax := height
	if addTop {
		zMax -= thickness
	}
	spacing := (zMax - zMin) / float64(n+1)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = zMin + float64(i+1)*spacing
	}
	return out
}

// EvenDividerPositions distributes n dividers evenly across the clear width.
func EvenDividerPositions(width, thickness float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	clear := width - 2*thickness
	bay := clear / float64(n+1)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = thickness + float64(i+1)*bay
	}
	return out
}
