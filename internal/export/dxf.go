package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/shelfwright/shelfwright/internal/model"
)

// Spacing between panel outlines in the DXF layout (mm).
const dxfPanelGap = 50.0

// ExportDXF writes the panel outlines as a flat DXF layout for CAD or CNC
// handoff. Panels are laid out left to right in cut-list order, one
// rectangle each, on a single layer.
func ExportDXF(path string, d model.Design) error {
	panels, err := d.Panels()
	if err != nil {
		return err
	}

	drw := dxf.NewDrawing()
	if _, err := drw.AddLayer("PANELS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}

	x := 0.0
	for _, p := range panels {
		if err := drawRect(drw, x, 0, p.Width, p.Height); err != nil {
			return fmt.Errorf("failed to draw %s: %w", p.Label, err)
		}
		x += p.Width + dxfPanelGap
	}

	return drw.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four line entities.
func drawRect(drw *drawing.Drawing, x, y, w, h float64) error {
	lines := [4][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, l := range lines {
		if _, err := drw.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}
	return nil
}
