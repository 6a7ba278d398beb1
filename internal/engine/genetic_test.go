package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwright/shelfwright/internal/model"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRandomDesignRespectsBounds(t *testing.T) {
	req := testRequirements()
	rng := testRNG()

	for i := 0; i < 100; i++ {
		d := randomDesign(req, rng)
		require.NoError(t, d.Validate())
		require.Len(t, d.Shelves, req.NumShelves)
		assert.LessOrEqual(t, len(d.Dividers), maxRandomDividers)

		for j, z := range d.Shelves {
			assert.GreaterOrEqual(t, z, model.PositionMargin)
			assert.LessOrEqual(t, z, req.Height-model.PositionMargin)
			if j > 0 {
				assert.Greater(t, z, d.Shelves[j-1])
			}
		}
		for _, x := range d.Dividers {
			assert.GreaterOrEqual(t, x, model.PositionMargin)
			assert.LessOrEqual(t, x, req.Width-model.PositionMargin)
		}
		assert.True(t, model.ThicknessAllowed(d.Thickness))
	}
}

func TestAdoptSeedForcesEnvelope(t *testing.T) {
	req := testRequirements()
	rng := testRNG()

	prior := model.Design{
		ID:        "prior001",
		Width:     900,
		Height:    2000,
		Depth:     350,
		Thickness: 18,
		Shelves:   []float64{500, 1000, 1500, 1950},
		Dividers:  []float64{860},
	}

	d := adoptSeed(prior, req, rng)

	assert.NotEqual(t, prior.ID, d.ID)
	assert.Equal(t, req.Width, d.Width)
	assert.Equal(t, req.Height, d.Height)
	assert.Equal(t, req.Depth, d.Depth)
	assert.Equal(t, req.Material, d.Material)
	require.NoError(t, d.Validate())

	require.Len(t, d.Shelves, req.NumShelves)
	for _, z := range d.Shelves {
		assert.LessOrEqual(t, z, req.Height-model.PositionMargin)
	}
	for _, x := range d.Dividers {
		assert.LessOrEqual(t, x, req.Width-model.PositionMargin)
	}
}

func TestAdoptSeedRebuildsWrongShelfCount(t *testing.T) {
	req := testRequirements()
	prior := model.Design{
		ID: "prior002", Width: 800, Height: 1800, Depth: 300,
		Thickness: 18, Shelves: []float64{900},
	}

	d := adoptSeed(prior, req, testRNG())
	require.Len(t, d.Shelves, req.NumShelves)
	require.NoError(t, d.Validate())
}

func TestTournamentSelectPrefersFit(t *testing.T) {
	pop := []individual{
		{record: Record{Fitness: 10}},
		{record: Record{Fitness: 90}},
		{record: Record{Fitness: 50}},
	}
	rng := testRNG()

	wins := make([]int, len(pop))
	for i := 0; i < 300; i++ {
		wins[tournamentSelect(pop, 3, rng)]++
	}
	assert.Greater(t, wins[1], wins[0])
	assert.Greater(t, wins[1], wins[2])
}

func TestCrossoverTakesFieldsWholesale(t *testing.T) {
	req := testRequirements()
	rng := testRNG()

	a := evenDesign(req)
	a.Thickness = 16
	b := evenDesign(req)
	b.Thickness = 22
	b.Shelves = []float64{300, 600, 900, 1200}
	b.Dividers = []float64{400}

	for i := 0; i < 50; i++ {
		child := crossover(a, b, req, rng)
		require.NoError(t, child.Validate())
		assert.Contains(t, []float64{16, 22}, child.Thickness)
		assert.Len(t, child.Shelves, req.NumShelves, "shelf count comes from one parent intact")
		assert.Contains(t, []int{0, 1}, len(child.Dividers))
	}
}

func TestMutateKeepsGenomeValid(t *testing.T) {
	req := testRequirements()
	rng := testRNG()

	for i := 0; i < 100; i++ {
		d := evenDesign(req)
		d.Dividers = []float64{400}
		mutate(&d, 1.0, rng) // force every gene to move

		require.NoError(t, d.Validate())
		require.Len(t, d.Shelves, req.NumShelves)
		for j := 1; j < len(d.Shelves); j++ {
			assert.Greater(t, d.Shelves[j], d.Shelves[j-1], "positions stay strictly ordered")
		}
		for _, z := range d.Shelves {
			assert.GreaterOrEqual(t, z, model.PositionMargin)
			assert.LessOrEqual(t, z, req.Height-model.PositionMargin)
		}
	}
}

func TestMutateZeroRateIsIdentityForPositions(t *testing.T) {
	req := testRequirements()
	d := evenDesign(req)
	want := append([]float64(nil), d.Shelves...)

	mutate(&d, 0, testRNG())
	assert.Equal(t, want, d.Shelves)
}

func TestNormalizePositions(t *testing.T) {
	t.Run("sorts and clamps", func(t *testing.T) {
		got := normalizePositions([]float64{1900, -40, 600}, 50, 1750)
		assert.Equal(t, []float64{50, 600, 1750}, got)
	})
	t.Run("separates collisions", func(t *testing.T) {
		got := normalizePositions([]float64{600, 600, 600}, 50, 1750)
		assert.Equal(t, []float64{600, 601, 602}, got)
	})
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, normalizePositions(nil, 50, 1750))
	})
}

func TestConfigNormalized(t *testing.T) {
	cfg := Config{PopulationSize: 10, EliteCount: 50, TournamentSize: 99}.normalized()
	assert.Equal(t, 9, cfg.EliteCount)
	assert.Equal(t, 10, cfg.TournamentSize)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 2, cfg.SeedCount)
	assert.Equal(t, 1, cfg.Generations)
}

func TestPresets(t *testing.T) {
	def := DefaultConfig()
	assert.Equal(t, 30, def.PopulationSize)
	assert.Equal(t, 15, def.Generations)
	assert.Equal(t, 0.30, def.MutationRate)
	assert.Equal(t, 0.80, def.CrossoverRate)
	assert.Equal(t, 3, def.EliteCount)

	light := LightConfig()
	assert.Equal(t, 20, light.PopulationSize)
	assert.Equal(t, 0.25, light.MutationRate)
	assert.Equal(t, 2, light.EliteCount)
}
