// Package costing estimates manufacturing cost for a shelving design. It
// publishes the unit-price and joint-cost tables the fitness evaluator uses,
// and builds the full customer-facing breakdown from the same tables so the
// two can never diverge.
package costing

import (
	"math"

	"github.com/shelfwright/shelfwright/internal/materials"
	"github.com/shelfwright/shelfwright/internal/model"
)

// HardwareCosts holds per-unit hardware prices.
type HardwareCosts struct {
	DowelCost    float64 `json:"dowel_cost"`
	CamSetCost   float64 `json:"cam_set_cost"`
	ShelfPinCost float64 `json:"shelf_pin_cost"`
}

// ProcessRates holds machine and labor rates.
type ProcessRates struct {
	SetupTimeMin        float64 `json:"setup_time_min"`
	DrillSecPerHole     float64 `json:"drill_sec_per_hole"`
	MachineRatePerHour  float64 `json:"machine_rate_per_hour"`
	AssemblyMinPerJoint float64 `json:"assembly_min_per_joint"`
	LaborRatePerHour    float64 `json:"labor_rate_per_hour"`
}

// DefaultHardware returns the baseline hardware price list.
func DefaultHardware() HardwareCosts {
	return HardwareCosts{
		DowelCost:    0.04,
		CamSetCost:   0.55,
		ShelfPinCost: 0.06,
	}
}

// DefaultRates returns the baseline shop rates.
func DefaultRates() ProcessRates {
	return ProcessRates{
		SetupTimeMin:        8.0,
		DrillSecPerHole:     2.5,
		MachineRatePerHour:  45.0,
		AssemblyMinPerJoint: 0.4,
		LaborRatePerHour:    35.0,
	}
}

// FixedAssemblyCost is the flat setup-and-handling charge included in every
// estimate, quick or full.
const FixedAssemblyCost = 6.0

// UnitPrice returns the published material price per square meter of usable
// (waste-adjusted) sheet stock.
func UnitPrice(m materials.Material) float64 {
	spec := materials.Get(m)
	sheetM2 := spec.SheetLength * spec.SheetWidth / 1e6
	usable := sheetM2 * (1.0 - spec.WasteFactor)
	return spec.PricePerSheet / usable
}

// JointUnitCost returns the published hardware cost per joint for the given
// method. Unknown methods fall back to the cam-lock baseline.
func JointUnitCost(method model.JointMethod) float64 {
	hw := DefaultHardware()
	switch method {
	case model.JointGlueDowels:
		// Two dowels per joint, no cam hardware.
		return 2 * hw.DowelCost
	default:
		return hw.CamSetCost
	}
}

// QuickCost is the estimate the fitness evaluator uses: panel area at the
// published unit price, joints at the published joint cost, plus the fixed
// assembly charge.
func QuickCost(d model.Design, method model.JointMethod) (float64, error) {
	area, err := d.TotalAreaM2()
	if err != nil {
		return 0, err
	}
	return area*UnitPrice(d.Material) +
		float64(d.JointCount())*JointUnitCost(method) +
		FixedAssemblyCost, nil
}

// Breakdown is the full customer-facing cost estimate.
type Breakdown struct {
	PanelAreaM2 float64 `json:"panel_area_m2"`
	SheetCount  int     `json:"sheet_count"`

	DowelHoles    int `json:"dowel_holes"`
	CamSets       int `json:"cam_sets"`
	ShelfPinHoles int `json:"shelf_pin_holes"`
	DrillHoles    int `json:"drill_holes"`

	MachineMinutes  float64 `json:"machine_minutes"`
	AssemblyMinutes float64 `json:"assembly_minutes"`

	MaterialCost float64 `json:"material_cost"`
	HardwareCost float64 `json:"hardware_cost"`
	MachineCost  float64 `json:"machine_cost"`
	AssemblyCost float64 `json:"assembly_cost"`
	Total        float64 `json:"total"`
}

// Estimate builds the full breakdown for a design using the default hardware
// prices and shop rates.
func Estimate(d model.Design, method model.JointMethod, pinMode model.ShelfPinMode) (Breakdown, error) {
	return EstimateWith(d, method, pinMode, DefaultHardware(), DefaultRates())
}

// EstimateWith builds the full breakdown with explicit hardware prices and
// rates. Material cost is sheet-based: the panel area is rounded up to whole
// stock sheets after the material's waste factor.
func EstimateWith(d model.Design, method model.JointMethod, pinMode model.ShelfPinMode, hw HardwareCosts, rates ProcessRates) (Breakdown, error) {
	area, err := d.TotalAreaM2()
	if err != nil {
		return Breakdown{}, err
	}
	spec := materials.Get(d.Material)

	sheetM2 := spec.SheetLength * spec.SheetWidth / 1e6
	usable := sheetM2 * (1.0 - spec.WasteFactor)
	sheets := int(math.Ceil(area / math.Max(usable, 1e-6)))
	if sheets < 1 {
		sheets = 1
	}

	joints := d.JointCount()
	var dowelHoles, camSets int
	switch method {
	case model.JointGlueDowels:
		dowelHoles = joints * 2
	default:
		// Cam locks on the carcass and shelves; dividers stay doweled.
		camSets = joints - 2*len(d.Dividers)
		dowelHoles = 4 * len(d.Dividers)
	}

	pinHoles := shelfPinHoles(d, pinMode)

	drillHoles := dowelHoles + pinHoles
	drillMin := float64(drillHoles) * rates.DrillSecPerHole / 60.0
	machineMin := rates.SetupTimeMin + drillMin
	machineCost := machineMin / 60.0 * rates.MachineRatePerHour

	dowels := dowelHoles / 2
	pins := 4 * len(d.Shelves)
	hardwareCost := float64(dowels)*hw.DowelCost +
		float64(camSets)*hw.CamSetCost +
		float64(pins)*hw.ShelfPinCost

	assemblyMin := float64(joints) * rates.AssemblyMinPerJoint
	assemblyCost := assemblyMin/60.0*rates.LaborRatePerHour + FixedAssemblyCost

	materialCost := float64(sheets) * spec.PricePerSheet

	return Breakdown{
		PanelAreaM2:     area,
		SheetCount:      sheets,
		DowelHoles:      dowelHoles,
		CamSets:         camSets,
		ShelfPinHoles:   pinHoles,
		DrillHoles:      drillHoles,
		MachineMinutes:  machineMin,
		AssemblyMinutes: assemblyMin,
		MaterialCost:    materialCost,
		HardwareCost:    hardwareCost,
		MachineCost:     machineCost,
		AssemblyCost:    assemblyCost,
		Total:           materialCost + hardwareCost + machineCost + assemblyCost,
	}, nil
}

// Shelf-pin grid parameters (32mm system).
const (
	pinGridPitch        = 32.0
	pinGridBottomMargin = 64.0
	pinGridTopMargin    = 96.0
	pinRowsPerSide      = 2 // front and back drilling lanes
)

// shelfPinHoles counts shelf-pin holes for the side panels and both faces of
// every divider.
func shelfPinHoles(d model.Design, mode model.ShelfPinMode) int {
	var levels int
	switch mode {
	case model.PinsFixedAtShelves:
		levels = len(d.Shelves)
	default:
		z0 := d.Thickness + pinGridBottomMargin
		z1 := d.InteriorHeight() + d.Thickness - pinGridTopMargin
		if z1 > z0 {
			levels = int((z1-z0)/pinGridPitch) + 1
		}
	}
	faces := 2 + 2*len(d.Dividers)
	return levels * pinRowsPerSide * faces
}
