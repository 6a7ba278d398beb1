// Package engine implements the genetic optimizer: fitness scoring,
// population management and the generation loop, plus the run report and a
// baseline comparison.
package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/shelfwright/shelfwright/internal/kb"
	"github.com/shelfwright/shelfwright/internal/model"
)

// ConvergenceEntry is one generation's fitness summary.
type ConvergenceEntry struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Average    float64 `json:"average"`
	Worst      float64 `json:"worst"`
}

// PopulationStats summarizes the final population.
type PopulationStats struct {
	Size       int     `json:"size"`
	BestFit    float64 `json:"best_fitness"`
	AverageFit float64 `json:"average_fitness"`
	WorstFit   float64 `json:"worst_fitness"`
	StdDevFit  float64 `json:"stddev_fitness"`
}

// Report is the result of one completed run.
type Report struct {
	Best        model.Design       `json:"best"`
	BestRecord  Record             `json:"best_record"`
	History     []ConvergenceEntry `json:"history"`
	Final       PopulationStats    `json:"final_population"`
	SeededCount int                `json:"seeded_count"`
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLogger attaches a logger for per-generation progress. Without it the
// optimizer is silent.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *Optimizer) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSeedSource attaches a knowledge base to seed the initial population
// from. Lookup failures degrade to random seeding.
func WithSeedSource(src kb.SeedSource) Option {
	return func(o *Optimizer) { o.seeds = src }
}

// Optimizer runs one genetic search. It owns its population and RNG and must
// not be shared across goroutines; fitness evaluation inside a generation
// fans out internally when Config.Workers allows.
type Optimizer struct {
	req   model.Requirements
	cfg   Config
	rng   *rand.Rand
	log   *zap.SugaredLogger
	seeds kb.SeedSource

	eval       *Evaluator
	population []individual
	best       *individual
	history    []ConvergenceEntry
	seeded     int
}

// New validates the requirements and builds an optimizer. The only error is
// ErrInvalidRequirements.
func New(req model.Requirements, cfg Config, opts ...Option) (*Optimizer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	o := &Optimizer{
		req:  req,
		cfg:  cfg.normalized(),
		log:  zap.NewNop().Sugar(),
		eval: NewEvaluator(req),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.rng = rand.New(rand.NewSource(o.cfg.Seed))
	return o, nil
}

// Optimize runs the full generation loop and returns the report. The
// returned best design is deep-copied; callers may mutate it freely.
func (o *Optimizer) Optimize() (Report, error) {
	o.initPopulation()
	o.log.Infow("starting optimization",
		"population", o.cfg.PopulationSize,
		"generations", o.cfg.Generations,
		"seeded", o.seeded,
	)

	for gen := 0; gen < o.cfg.Generations; gen++ {
		if err := o.evaluateAll(); err != nil {
			return Report{}, fmt.Errorf("generation %d: %w", gen, err)
		}
		o.rank()
		entry := o.recordGeneration(gen)
		o.trackBest()

		o.log.Infow("generation complete",
			"generation", gen,
			"best", entry.Best,
			"average", entry.Average,
			"worst", entry.Worst,
		)

		if gen < o.cfg.Generations-1 {
			o.population = o.nextGeneration()
		}
	}

	return o.report(), nil
}

// initPopulation fills the population with knowledge-base seeds first (when a
// source is attached) and random designs for the rest.
func (o *Optimizer) initPopulation() {
	o.population = make([]individual, 0, o.cfg.PopulationSize)

	if o.seeds != nil {
		priors, err := o.seeds.FindSimilar(o.req, o.cfg.SeedCount)
		if err != nil {
			o.log.Warnw("knowledge base lookup failed, seeding randomly", "error", err)
		}
		for _, p := range priors {
			if len(o.population) >= o.cfg.SeedCount {
				break
			}
			d := adoptSeed(p, o.req, o.rng)
			if d.Validate() != nil {
				continue
			}
			o.population = append(o.population, individual{design: d})
		}
		o.seeded = len(o.population)
	}

	for len(o.population) < o.cfg.PopulationSize {
		o.population = append(o.population, individual{design: randomDesign(o.req, o.rng)})
	}
}

// evaluateAll scores every individual. Results land in per-index slots, so
// the worker fan-out cannot change outcomes.
func (o *Optimizer) evaluateAll() error {
	errs := make([]error, len(o.population))

	if o.cfg.Workers <= 1 {
		for i := range o.population {
			o.population[i].record, errs[i] = o.eval.Evaluate(o.population[i].design)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, o.cfg.Workers)
		for i := range o.population {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				o.population[i].record, errs[i] = o.eval.Evaluate(o.population[i].design)
			}(i)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// rank sorts the population by descending fitness. The stable sort keeps
// the run deterministic when scores tie.
func (o *Optimizer) rank() {
	sort.SliceStable(o.population, func(i, j int) bool {
		return o.population[i].record.Fitness > o.population[j].record.Fitness
	})
}

func (o *Optimizer) recordGeneration(gen int) ConvergenceEntry {
	fits := make([]float64, len(o.population))
	for i, ind := range o.population {
		fits[i] = ind.record.Fitness
	}
	entry := ConvergenceEntry{
		Generation: gen,
		Best:       fits[0],
		Average:    stat.Mean(fits, nil),
		Worst:      fits[len(fits)-1],
	}
	o.history = append(o.history, entry)
	return entry
}

// trackBest keeps the best-so-far individual, replaced only on strictly
// greater fitness so the first holder of a score wins ties.
func (o *Optimizer) trackBest() {
	top := o.population[0]
	if o.best == nil || top.record.Fitness > o.best.record.Fitness {
		o.best = &individual{design: top.design.Clone(), record: top.record}
	}
}

// nextGeneration breeds the successor population: elites carried over as deep
// copies, the rest bred by tournament selection, crossover and mutation.
func (o *Optimizer) nextGeneration() []individual {
	next := make([]individual, 0, o.cfg.PopulationSize)

	for i := 0; i < o.cfg.EliteCount && i < len(o.population); i++ {
		next = append(next, individual{design: o.population[i].design.Clone()})
	}

	for len(next) < o.cfg.PopulationSize {
		a := o.population[tournamentSelect(o.population, o.cfg.TournamentSize, o.rng)].design
		b := o.population[tournamentSelect(o.population, o.cfg.TournamentSize, o.rng)].design

		var child model.Design
		if o.rng.Float64() < o.cfg.CrossoverRate {
			child = crossover(a, b, o.req, o.rng)
		} else {
			child = a.Clone()
			child.ResetID()
		}
		mutate(&child, o.cfg.MutationRate, o.rng)
		next = append(next, individual{design: child})
	}
	return next
}

func (o *Optimizer) report() Report {
	fits := make([]float64, len(o.population))
	for i, ind := range o.population {
		fits[i] = ind.record.Fitness
	}

	rep := Report{
		History:     append([]ConvergenceEntry(nil), o.history...),
		SeededCount: o.seeded,
		Final: PopulationStats{
			Size:       len(o.population),
			BestFit:    fits[0],
			AverageFit: stat.Mean(fits, nil),
			WorstFit:   fits[len(fits)-1],
			StdDevFit:  stat.PopStdDev(fits, nil),
		},
	}
	if o.best != nil {
		rep.Best = o.best.design.Clone()
		rep.BestRecord = o.best.record
	}
	return rep
}
