// Command shelfwright optimizes a shelving unit design for a set of customer
// requirements and writes the result to the requested report formats.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/shelfwright/shelfwright/internal/costing"
	"github.com/shelfwright/shelfwright/internal/engine"
	"github.com/shelfwright/shelfwright/internal/export"
	"github.com/shelfwright/shelfwright/internal/manufacturability"
	"github.com/shelfwright/shelfwright/internal/materials"
	"github.com/shelfwright/shelfwright/internal/model"
	"github.com/shelfwright/shelfwright/internal/project"
)

// runConfig is the YAML file format accepted by -config. Flags override any
// value set here.
type runConfig struct {
	Requirements struct {
		Width      float64 `yaml:"width"`
		Height     float64 `yaml:"height"`
		Depth      float64 `yaml:"depth"`
		NumShelves int     `yaml:"num_shelves"`
		AddTop     bool    `yaml:"add_top"`
		Material   string  `yaml:"material"`
		TargetLoad float64 `yaml:"target_load"`
		Joint      string  `yaml:"joint"`
	} `yaml:"requirements"`
	Engine engine.Config `yaml:"engine"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML run configuration file")

		width    = flag.Float64("width", 0, "unit width in mm")
		height   = flag.Float64("height", 0, "unit height in mm")
		depth    = flag.Float64("depth", 0, "unit depth in mm")
		shelves  = flag.Int("shelves", -1, "number of shelves")
		addTop   = flag.Bool("top", false, "include a top panel")
		material = flag.String("material", "", "material (melamine_pb, plywood, mdf, solid_wood)")
		load     = flag.Float64("load", 0, "target load per bay in kg")
		joint    = flag.String("joint", "", "joint method (camlock_dowels, glue_dowels)")

		pop       = flag.Int("pop", 0, "population size")
		gens      = flag.Int("gens", 0, "number of generations")
		mutation  = flag.Float64("mutation", 0, "mutation rate")
		crossover = flag.Float64("crossover", 0, "crossover rate")
		elite     = flag.Int("elite", 0, "elite count")
		seed      = flag.Int64("seed", 0, "random seed")
		workers   = flag.Int("workers", 0, "parallel fitness workers")
		light     = flag.Bool("light", false, "use the light preset")

		pdfPath     = flag.String("pdf", "", "write the PDF design report to this path")
		xlsxPath    = flag.String("xlsx", "", "write the XLSX cut list to this path")
		dxfPath     = flag.String("dxf", "", "write the DXF panel layout to this path")
		labelsPath  = flag.String("labels", "", "write QR part labels (PDF) to this path")
		csvPath     = flag.String("csv", "", "write the convergence history (CSV) to this path")
		projectPath = flag.String("project", "", "save the project (JSON) to this path")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()

	req, cfg, err := buildRun(*configPath, *light)
	if err != nil {
		log.Fatalw("invalid configuration file", "error", err)
	}

	// Flags override the config file.
	if *width > 0 {
		req.Width = *width
	}
	if *height > 0 {
		req.Height = *height
	}
	if *depth > 0 {
		req.Depth = *depth
	}
	if *shelves >= 0 {
		req.NumShelves = *shelves
	}
	if *addTop {
		req.AddTop = true
	}
	if *material != "" {
		req.Material = materials.Material(*material)
	}
	if *load > 0 {
		req.TargetLoad = *load
	}
	if *joint != "" {
		req.JointMethod = model.JointMethod(*joint)
	}
	if *pop > 0 {
		cfg.PopulationSize = *pop
	}
	if *gens > 0 {
		cfg.Generations = *gens
	}
	if *mutation > 0 {
		cfg.MutationRate = *mutation
	}
	if *crossover > 0 {
		cfg.CrossoverRate = *crossover
	}
	if *elite > 0 {
		cfg.EliteCount = *elite
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	if !materials.Known(req.Material) && req.Material != "" {
		log.Fatalw("unknown material", "material", req.Material)
	}

	opt, err := engine.New(req, cfg, engine.WithLogger(log))
	if err != nil {
		log.Fatalw("invalid requirements", "error", err)
	}

	start := time.Now()
	report, err := opt.Optimize()
	if err != nil {
		log.Fatalw("optimization failed", "error", err)
	}
	log.Infow("optimization finished",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"fitness", report.BestRecord.Fitness,
	)

	breakdown, err := costing.Estimate(report.Best, req.Method(), req.ShelfPinMode)
	if err != nil {
		log.Fatalw("cost estimation failed", "error", err)
	}
	warnings := manufacturability.Analyze(report.Best, req.TargetLoad, breakdown.MaterialCost)

	printSummary(report, breakdown, warnings)
	if cmp, err := engine.CompareToBaseline(req, report.Best, report.BestRecord); err == nil {
		fmt.Printf("  Baseline:   fitness %+.1f, cost %+.2f vs even 18mm layout\n",
			cmp.FitnessGain, cmp.CostDelta)
	}

	writeOutputs(log, outputs{
		pdf: *pdfPath, xlsx: *xlsxPath, dxf: *dxfPath,
		labels: *labelsPath, csv: *csvPath, project: *projectPath,
	}, req, cfg, report, breakdown, warnings)
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
		os.Exit(1)
	}
	return logger.Sugar()
}

// buildRun loads the optional YAML config and returns requirements and
// engine tuning with defaults applied.
func buildRun(path string, light bool) (model.Requirements, engine.Config, error) {
	cfg := engine.DefaultConfig()
	if light {
		cfg = engine.LightConfig()
	}
	req := model.Requirements{
		Width:      800,
		Height:     1800,
		Depth:      300,
		NumShelves: 4,
		Material:   materials.MelaminePB,
		TargetLoad: 30,
	}
	if path == "" {
		return req, cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return req, cfg, err
	}
	var rc runConfig
	rc.Engine = cfg
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return req, cfg, err
	}

	r := rc.Requirements
	if r.Width > 0 {
		req.Width = r.Width
	}
	if r.Height > 0 {
		req.Height = r.Height
	}
	if r.Depth > 0 {
		req.Depth = r.Depth
	}
	if r.NumShelves > 0 {
		req.NumShelves = r.NumShelves
	}
	req.AddTop = r.AddTop
	if r.Material != "" {
		req.Material = materials.Material(r.Material)
	}
	if r.TargetLoad > 0 {
		req.TargetLoad = r.TargetLoad
	}
	if r.Joint != "" {
		req.JointMethod = model.JointMethod(r.Joint)
	}
	return req, rc.Engine, nil
}

func printSummary(report engine.Report, b costing.Breakdown, warnings []string) {
	d := report.Best
	fmt.Printf("Best design %s\n", d.ID)
	fmt.Printf("  Envelope:   %.0f x %.0f x %.0f mm, %s %.0fmm\n",
		d.Width, d.Height, d.Depth, d.Material, d.Thickness)
	fmt.Printf("  Shelves:    %v\n", formatPositions(d.Shelves))
	if len(d.Dividers) > 0 {
		fmt.Printf("  Dividers:   %v\n", formatPositions(d.Dividers))
	}
	fmt.Printf("  Fitness:    %.1f\n", report.BestRecord.Fitness)
	fmt.Printf("  Cost:       %.2f (material %.2f, hardware %.2f, machine %.2f, assembly %.2f)\n",
		b.Total, b.MaterialCost, b.HardwareCost, b.MachineCost, b.AssemblyCost)
	fmt.Printf("  Capacity:   %.0f kg/bay\n", report.BestRecord.LoadCapacity)
	for _, w := range warnings {
		fmt.Printf("  Warning:    %s\n", w)
	}
}

func formatPositions(ps []float64) string {
	out := "["
	for i, p := range ps {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%.0f", p)
	}
	return out + "] mm"
}

type outputs struct {
	pdf, xlsx, dxf, labels, csv, project string
}

func writeOutputs(log *zap.SugaredLogger, out outputs, req model.Requirements, cfg engine.Config, report engine.Report, b costing.Breakdown, warnings []string) {
	if out.pdf != "" {
		err := export.ExportPDF(out.pdf, export.ReportData{
			Requirements: req,
			Result:       report,
			Breakdown:    b,
			Warnings:     warnings,
		})
		logOutput(log, "pdf", out.pdf, err)
	}
	if out.xlsx != "" {
		logOutput(log, "xlsx", out.xlsx, export.ExportCutList(out.xlsx, report.Best, b))
	}
	if out.dxf != "" {
		logOutput(log, "dxf", out.dxf, export.ExportDXF(out.dxf, report.Best))
	}
	if out.labels != "" {
		logOutput(log, "labels", out.labels, export.ExportLabels(out.labels, report.Best))
	}
	if out.csv != "" {
		logOutput(log, "csv", out.csv, export.ExportConvergenceCSV(out.csv, report.History))
	}
	if out.project != "" {
		p := project.Project{
			Name:         filepath.Base(out.project),
			CreatedAt:    time.Now(),
			Requirements: req,
			Config:       cfg,
			Result:       &report,
			Warnings:     warnings,
		}
		logOutput(log, "project", out.project, project.Save(out.project, p))
	}
}

func logOutput(log *zap.SugaredLogger, kind, path string, err error) {
	if err != nil {
		log.Errorw("export failed", "kind", kind, "path", path, "error", err)
		return
	}
	log.Infow("wrote output", "kind", kind, "path", path)
}
