package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/shelfwright/shelfwright/internal/costing"
	"github.com/shelfwright/shelfwright/internal/materials"
	"github.com/shelfwright/shelfwright/internal/model"
)

// Fitness scoring constants. The score starts from a fixed base and each
// term subtracts (or adds) from it; the final score is floored at zero.
const (
	fitnessBase = 100.0

	costDivisor = 5.0

	slendernessHigh        = 120.0
	slendernessLow         = 80.0
	slendernessHighPenalty = 20.0
	slendernessLowBonus    = 10.0

	spacingDivisor = 10.0

	areaLowM2       = 0.5
	areaHighM2      = 3.0
	areaLowPenalty  = 5.0
	areaHighPenalty = 10.0

	underLoadFactor     = 2.0
	overCapacityRatio   = 1.5
	overCapacityPenalty = 5.0
)

// Record is the full fitness accounting for one design, kept term by term so
// reports can explain a score.
type Record struct {
	Fitness float64 `json:"fitness"`

	Cost           float64 `json:"cost"`
	CostPenalty    float64 `json:"cost_penalty"`
	StructuralTerm float64 `json:"structural_term"`
	SpacingPenalty float64 `json:"spacing_penalty"`
	AreaPenalty    float64 `json:"area_penalty"`
	LoadPenalty    float64 `json:"load_penalty"`

	LoadCapacity float64 `json:"load_capacity"` // kg per bay
	PanelAreaM2  float64 `json:"panel_area_m2"`
}

// Evaluator scores designs against one set of requirements. It holds no
// mutable state: Evaluate is a pure function of the design, safe to call
// concurrently.
type Evaluator struct {
	req model.Requirements
}

// NewEvaluator returns an evaluator bound to the given requirements.
func NewEvaluator(req model.Requirements) *Evaluator {
	return &Evaluator{req: req}
}

// Evaluate scores one design. The only error is ErrInvalidGenome from the
// panel derivation; every valid genome gets a score in [0, +inf).
func (e *Evaluator) Evaluate(d model.Design) (Record, error) {
	cost, err := costing.QuickCost(d, e.req.Method())
	if err != nil {
		return Record{}, err
	}
	area, err := d.TotalAreaM2()
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Cost:         cost,
		CostPenalty:  cost / costDivisor,
		PanelAreaM2:  area,
		LoadCapacity: materials.LoadCapacity(d.BayWidth(), d.Depth, d.Thickness, d.Material),
	}

	switch ratio := d.SlendernessRatio(); {
	case ratio > slendernessHigh:
		rec.StructuralTerm = -slendernessHighPenalty
	case ratio < slendernessLow:
		rec.StructuralTerm = slendernessLowBonus
	}

	rec.SpacingPenalty = spacingPenalty(d)

	switch {
	case area < areaLowM2:
		rec.AreaPenalty = areaLowPenalty
	case area > areaHighM2:
		rec.AreaPenalty = areaHighPenalty
	}

	switch target := e.req.TargetLoad; {
	case rec.LoadCapacity < target:
		rec.LoadPenalty = underLoadFactor * (target - rec.LoadCapacity)
	case rec.LoadCapacity > overCapacityRatio*target:
		rec.LoadPenalty = overCapacityPenalty
	}

	fitness := fitnessBase -
		rec.CostPenalty +
		rec.StructuralTerm -
		rec.SpacingPenalty -
		rec.AreaPenalty -
		rec.LoadPenalty
	if fitness < 0 {
		fitness = 0
	}
	rec.Fitness = fitness
	return rec, nil
}

// spacingPenalty scores how unevenly the shelves divide the height. The gap
// list includes the run below the first shelf and above the last one. Zero
// and one-shelf designs have nothing to balance and score zero.
func spacingPenalty(d model.Design) float64 {
	if len(d.Shelves) <= 1 {
		return 0
	}
	zs := append([]float64(nil), d.Shelves...)
	sort.Float64s(zs)

	gaps := make([]float64, 0, len(zs)+1)
	prev := 0.0
	for _, z := range zs {
		gaps = append(gaps, z-prev)
		prev = z
	}
	gaps = append(gaps, d.Height-prev)

	return stat.PopStdDev(gaps, nil) / spacingDivisor
}
