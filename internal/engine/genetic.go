package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/shelfwright/shelfwright/internal/model"
)

// Config tunes one optimization run.
type Config struct {
	PopulationSize int     `json:"population_size" yaml:"population_size"`
	Generations    int     `json:"generations" yaml:"generations"`
	MutationRate   float64 `json:"mutation_rate" yaml:"mutation_rate"`
	CrossoverRate  float64 `json:"crossover_rate" yaml:"crossover_rate"`
	EliteCount     int     `json:"elite_count" yaml:"elite_count"`
	TournamentSize int     `json:"tournament_size" yaml:"tournament_size"`

	// SeedCount is the maximum number of knowledge-base designs adopted into
	// the initial population. Zero means PopulationSize/5.
	SeedCount int `json:"seed_count" yaml:"seed_count"`

	// Workers bounds the fitness evaluation fan-out per generation.
	// Values below 1 mean sequential evaluation.
	Workers int `json:"workers" yaml:"workers"`

	// Seed initializes the run's private RNG. Equal seeds with equal inputs
	// reproduce the run exactly.
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 30,
		Generations:    15,
		MutationRate:   0.30,
		CrossoverRate:  0.80,
		EliteCount:     3,
		TournamentSize: 3,
	}
}

// LightConfig returns a cheaper tuning for quick interactive runs.
func LightConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 20
	cfg.MutationRate = 0.25
	cfg.EliteCount = 2
	return cfg
}

// normalized fills unset fields with usable values.
func (c Config) normalized() Config {
	if c.PopulationSize < 2 {
		c.PopulationSize = 2
	}
	if c.Generations < 1 {
		c.Generations = 1
	}
	if c.TournamentSize < 1 {
		c.TournamentSize = 3
	}
	if c.TournamentSize > c.PopulationSize {
		c.TournamentSize = c.PopulationSize
	}
	if c.EliteCount < 0 {
		c.EliteCount = 0
	}
	if c.EliteCount >= c.PopulationSize {
		c.EliteCount = c.PopulationSize - 1
	}
	if c.SeedCount <= 0 {
		c.SeedCount = c.PopulationSize / 5
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}

// Mutation deltas and divider bounds.
const (
	shelfDeltaMM      = 100.0
	dividerDeltaMM    = 50.0
	maxRandomDividers = 2
)

// individual pairs a genome with its fitness accounting for one generation.
type individual struct {
	design model.Design
	record Record
}

// randomDesign draws a fresh genome: thickness uniform over the allowed set,
// the required shelf count at sorted random heights, zero to two dividers.
func randomDesign(req model.Requirements, rng *rand.Rand) model.Design {
	d := model.NewDesign(req)
	d.Thickness = model.AllowedThicknesses[rng.Intn(len(model.AllowedThicknesses))]

	d.Shelves = randomPositions(rng, req.NumShelves, model.PositionMargin, req.Height-model.PositionMargin)
	d.Dividers = randomPositions(rng, rng.Intn(maxRandomDividers+1), model.PositionMargin, req.Width-model.PositionMargin)
	return d
}

func randomPositions(rng *rand.Rand, n int, lo, hi float64) []float64 {
	if n <= 0 || hi <= lo {
		return nil
	}
	ps := make([]float64, n)
	for i := range ps {
		ps[i] = lo + rng.Float64()*(hi-lo)
	}
	sort.Float64s(ps)
	return ps
}

// adoptSeed turns a prior design into a candidate for this run: fresh ID,
// envelope and material forced to the requirements, positions clamped into
// range, shelf count corrected to the requested number.
func adoptSeed(prior model.Design, req model.Requirements, rng *rand.Rand) model.Design {
	d := prior.Clone()
	d.ResetID()
	d.Width = req.Width
	d.Height = req.Height
	d.Depth = req.Depth
	d.AddTop = req.AddTop
	d.Material = req.Material
	if !model.ThicknessAllowed(d.Thickness) {
		d.Thickness = model.AllowedThicknesses[rng.Intn(len(model.AllowedThicknesses))]
	}

	if len(d.Shelves) != req.NumShelves {
		d.Shelves = model.EvenShelfPositions(req.Height, d.Thickness, req.AddTop, req.NumShelves)
	}
	d.Shelves = normalizePositions(d.Shelves, model.PositionMargin, req.Height-model.PositionMargin)
	d.Dividers = normalizePositions(d.Dividers, model.PositionMargin, req.Width-model.PositionMargin)
	return d
}

// tournamentSelect draws k contenders with replacement and returns the index
// of the fittest. Ties keep the first contender encountered.
func tournamentSelect(pop []individual, k int, rng *rand.Rand) int {
	best := rng.Intn(len(pop))
	for i := 1; i < k; i++ {
		c := rng.Intn(len(pop))
		if pop[c].record.Fitness > pop[best].record.Fitness {
			best = c
		}
	}
	return best
}

// crossover produces a child by picking each gene field wholesale from one
// parent or the other. Slice genes come from exactly one parent, so shelf and
// divider counts are never blended.
func crossover(a, b model.Design, req model.Requirements, rng *rand.Rand) model.Design {
	child := model.NewDesign(req)

	pick := func() model.Design {
		if rng.Float64() < 0.5 {
			return a
		}
		return b
	}
	child.Thickness = pick().Thickness
	child.Shelves = append([]float64(nil), pick().Shelves...)
	child.Dividers = append([]float64(nil), pick().Dividers...)

	child.Shelves = normalizePositions(child.Shelves, model.PositionMargin, req.Height-model.PositionMargin)
	child.Dividers = normalizePositions(child.Dividers, model.PositionMargin, req.Width-model.PositionMargin)
	return child
}

// mutate perturbs the genome in place. Each position gene shifts by a bounded
// uniform delta at the mutation rate; thickness resamples at half that rate.
// Positions are re-sorted afterwards so downstream code always sees ordered
// genes.
func mutate(d *model.Design, rate float64, rng *rand.Rand) {
	for i := range d.Shelves {
		if rng.Float64() < rate {
			d.Shelves[i] += (rng.Float64()*2 - 1) * shelfDeltaMM
		}
	}
	for i := range d.Dividers {
		if rng.Float64() < rate {
			d.Dividers[i] += (rng.Float64()*2 - 1) * dividerDeltaMM
		}
	}
	if rng.Float64() < rate*0.5 {
		d.Thickness = model.AllowedThicknesses[rng.Intn(len(model.AllowedThicknesses))]
	}
	d.Shelves = normalizePositions(d.Shelves, model.PositionMargin, d.Height-model.PositionMargin)
	d.Dividers = normalizePositions(d.Dividers, model.PositionMargin, d.Width-model.PositionMargin)
}

// normalizePositions sorts ps ascending, clamps every value into [lo, hi] and
// enforces at least 1mm between neighbors so the order is strictly
// increasing. When the range is too tight to separate every position the
// values saturate at hi.
func normalizePositions(ps []float64, lo, hi float64) []float64 {
	if len(ps) == 0 {
		return ps
	}
	if hi < lo {
		hi = lo
	}
	sort.Float64s(ps)
	const sep = 1.0
	prev := math.Inf(-1)
	for i, p := range ps {
		p = math.Max(lo, math.Min(hi, p))
		if p < prev+sep {
			p = math.Min(prev+sep, hi)
		}
		ps[i] = p
		prev = p
	}
	return ps
}
