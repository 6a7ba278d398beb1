package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwright/shelfwright/internal/materials"
	"github.com/shelfwright/shelfwright/internal/model"
)

func testRequirements() model.Requirements {
	return model.Requirements{
		Width:      800,
		Height:     1800,
		Depth:      300,
		NumShelves: 4,
		Material:   materials.MelaminePB,
		TargetLoad: 30,
	}
}

func evenDesign(req model.Requirements) model.Design {
	d := model.NewDesign(req)
	d.Thickness = 18
	d.Shelves = model.EvenShelfPositions(req.Height, d.Thickness, req.AddTop, req.NumShelves)
	return d
}

func TestEvaluateIsPure(t *testing.T) {
	eval := NewEvaluator(testRequirements())
	d := evenDesign(testRequirements())

	first, err := eval.Evaluate(d)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		rec, err := eval.Evaluate(d)
		require.NoError(t, err)
		assert.Equal(t, first, rec)
	}
}

func TestEvaluateRejectsInvalidGenome(t *testing.T) {
	eval := NewEvaluator(testRequirements())
	d := evenDesign(testRequirements())
	d.Thickness = 17

	_, err := eval.Evaluate(d)
	assert.ErrorIs(t, err, model.ErrInvalidGenome)
}

func TestFitnessNeverNegative(t *testing.T) {
	req := testRequirements()
	req.TargetLoad = 100000 // absurd target drives the load penalty far past the base
	eval := NewEvaluator(req)

	rec, err := eval.Evaluate(evenDesign(req))
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.Fitness)
	assert.Greater(t, rec.LoadPenalty, fitnessBase)
}

func TestSlendernessBands(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		want   float64
	}{
		{"stocky earns bonus", 1200, slendernessLowBonus},       // 1200/18 = 66.7 < 80
		{"moderate is neutral", 1900, 0},                        // 1900/18 = 105.6
		{"slender is penalized", 2300, -slendernessHighPenalty}, // 2300/18 = 127.8 > 120
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequirements()
			req.Height = tt.height
			eval := NewEvaluator(req)

			rec, err := eval.Evaluate(evenDesign(req))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.StructuralTerm)
		})
	}
}

func TestSpacingPenalty(t *testing.T) {
	t.Run("zero shelves", func(t *testing.T) {
		req := testRequirements()
		req.NumShelves = 0
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		assert.Zero(t, rec.SpacingPenalty)
	})

	t.Run("one shelf anywhere", func(t *testing.T) {
		req := testRequirements()
		req.NumShelves = 1
		d := evenDesign(req)
		d.Shelves = []float64{200} // far from center
		rec, err := NewEvaluator(req).Evaluate(d)
		require.NoError(t, err)
		assert.Zero(t, rec.SpacingPenalty)
	})

	t.Run("uneven spacing penalized more", func(t *testing.T) {
		req := testRequirements()
		eval := NewEvaluator(req)

		even, err := eval.Evaluate(evenDesign(req))
		require.NoError(t, err)

		d := evenDesign(req)
		d.Shelves = []float64{100, 200, 300, 400} // crowded at the bottom
		uneven, err := eval.Evaluate(d)
		require.NoError(t, err)

		assert.Greater(t, uneven.SpacingPenalty, even.SpacingPenalty)
	})
}

func TestAreaPenaltyBands(t *testing.T) {
	t.Run("small unit", func(t *testing.T) {
		req := testRequirements()
		req.Width, req.Height, req.Depth = 400, 500, 200
		req.NumShelves = 1
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		require.Less(t, rec.PanelAreaM2, areaLowM2)
		assert.Equal(t, areaLowPenalty, rec.AreaPenalty)
	})

	t.Run("normal unit", func(t *testing.T) {
		req := testRequirements()
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		assert.Zero(t, rec.AreaPenalty)
	})

	t.Run("large unit", func(t *testing.T) {
		req := testRequirements()
		req.Width, req.Height, req.Depth = 1800, 2200, 500
		req.NumShelves = 5
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		require.Greater(t, rec.PanelAreaM2, areaHighM2)
		assert.Equal(t, areaHighPenalty, rec.AreaPenalty)
	})
}

func TestLoadPenalty(t *testing.T) {
	t.Run("under capacity", func(t *testing.T) {
		req := testRequirements()
		req.TargetLoad = 500
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		require.Less(t, rec.LoadCapacity, req.TargetLoad)
		assert.InDelta(t, underLoadFactor*(req.TargetLoad-rec.LoadCapacity), rec.LoadPenalty, 1e-9)
	})

	t.Run("heavily over capacity", func(t *testing.T) {
		req := testRequirements()
		req.TargetLoad = 10
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		require.Greater(t, rec.LoadCapacity, overCapacityRatio*req.TargetLoad)
		assert.Equal(t, overCapacityPenalty, rec.LoadPenalty)
	})

	t.Run("matched capacity", func(t *testing.T) {
		req := testRequirements()
		req.TargetLoad = 200
		rec, err := NewEvaluator(req).Evaluate(evenDesign(req))
		require.NoError(t, err)
		require.GreaterOrEqual(t, rec.LoadCapacity, req.TargetLoad)
		require.LessOrEqual(t, rec.LoadCapacity, overCapacityRatio*req.TargetLoad)
		assert.Zero(t, rec.LoadPenalty)
	})
}

func TestCheaperDesignScoresHigher(t *testing.T) {
	req := testRequirements()
	req.TargetLoad = 0
	eval := NewEvaluator(req)

	melamine, err := eval.Evaluate(evenDesign(req))
	require.NoError(t, err)

	pricier := evenDesign(req)
	pricier.Material = materials.SolidWood
	solid, err := eval.Evaluate(pricier)
	require.NoError(t, err)

	assert.Greater(t, melamine.Fitness, solid.Fitness)
}
