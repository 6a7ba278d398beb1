package engine

import "github.com/shelfwright/shelfwright/internal/model"

// BaselineComparison contrasts an optimized design with the naive reference
// build: evenly spaced shelves at the default thickness, no dividers.
type BaselineComparison struct {
	Baseline       model.Design `json:"baseline"`
	BaselineRecord Record       `json:"baseline_record"`
	Optimized      model.Design `json:"optimized"`
	OptimizedRec   Record       `json:"optimized_record"`

	FitnessGain float64 `json:"fitness_gain"`
	CostDelta   float64 `json:"cost_delta"`
}

const baselineThicknessMM = 18.0

// BaselineDesign builds the reference design a customer would sketch by hand:
// default thickness, shelves evenly spaced through the interior.
func BaselineDesign(req model.Requirements) model.Design {
	d := model.NewDesign(req)
	d.Thickness = baselineThicknessMM
	d.Shelves = model.EvenShelfPositions(req.Height, d.Thickness, req.AddTop, req.NumShelves)
	return d
}

// CompareToBaseline scores the optimized design against the reference build.
func CompareToBaseline(req model.Requirements, optimized model.Design, optimizedRec Record) (BaselineComparison, error) {
	baseline := BaselineDesign(req)
	rec, err := NewEvaluator(req).Evaluate(baseline)
	if err != nil {
		return BaselineComparison{}, err
	}
	return BaselineComparison{
		Baseline:       baseline,
		BaselineRecord: rec,
		Optimized:      optimized.Clone(),
		OptimizedRec:   optimizedRec,
		FitnessGain:    optimizedRec.Fitness - rec.Fitness,
		CostDelta:      optimizedRec.Cost - rec.Cost,
	}, nil
}
