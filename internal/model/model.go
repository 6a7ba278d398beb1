// Package model defines the customer requirements and the design genome the
// optimizer searches over, together with the panel geometry derived from a
// genome. The exterior envelope (width, height, depth) is always fixed from
// the requirements; only the internal structure is free.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/shelfwright/shelfwright/internal/materials"
)

var (
	// ErrInvalidRequirements rejects a run before any population work begins.
	ErrInvalidRequirements = errors.New("invalid requirements")

	// ErrInvalidGenome marks an internal invariant violation: a position
	// outside the envelope or a thickness outside the allowed set. Clamping
	// during reproduction prevents this by construction, so hitting it is a
	// fault to surface, never to swallow.
	ErrInvalidGenome = errors.New("invalid genome")
)

// AllowedThicknesses is the discrete set of panel thicknesses (mm) the
// optimizer may choose from.
var AllowedThicknesses = []float64{16, 18, 20, 22}

// PositionMargin is the minimum clearance (mm) between a shelf or divider
// position and the envelope edge.
const PositionMargin = 50.0

// JointMethod selects the carcass fastening hardware.
type JointMethod string

const (
	JointCamlockDowels JointMethod = "camlock_dowels" // cam locks on the carcass, dowels elsewhere
	JointGlueDowels    JointMethod = "glue_dowels"    // glued dowels throughout
)

// ShelfPinMode selects how shelf-pin holes are laid out.
type ShelfPinMode string

const (
	PinsModularGrid    ShelfPinMode = "modular_grid"     // 32mm system rows
	PinsFixedAtShelves ShelfPinMode = "fixed_at_shelves" // holes only at shelf levels
)

// Requirements captures the customer's inputs for one optimization run.
// They are immutable for the duration of the run.
type Requirements struct {
	Width      float64            `json:"width"`  // mm
	Height     float64            `json:"height"` // mm
	Depth      float64            `json:"depth"`  // mm
	NumShelves int                `json:"num_shelves"`
	AddTop     bool               `json:"add_top"`
	Material   materials.Material `json:"material"`
	TargetLoad float64            `json:"target_load"` // kg per shelf bay

	JointMethod  JointMethod  `json:"joint_method,omitempty"`
	ShelfPinMode ShelfPinMode `json:"shelf_pin_mode,omitempty"`
}

// Validate checks the hard input invariants. All failures wrap
// ErrInvalidRequirements.
func (r Requirements) Validate() error {
	if r.Width <= 0 || r.Height <= 0 || r.Depth <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %.0fx%.0fx%.0fmm",
			ErrInvalidRequirements, r.Width, r.Height, r.Depth)
	}
	if r.NumShelves < 0 {
		return fmt.Errorf("%w: num_shelves must be >= 0, got %d", ErrInvalidRequirements, r.NumShelves)
	}
	if r.TargetLoad < 0 {
		return fmt.Errorf("%w: target_load must be >= 0, got %.1fkg", ErrInvalidRequirements, r.TargetLoad)
	}
	return nil
}

// Method returns the joint method, defaulting to cam locks with dowels.
func (r Requirements) Method() JointMethod {
	if r.JointMethod == JointGlueDowels {
		return JointGlueDowels
	}
	return JointCamlockDowels
}

// Design is one candidate genome: the free internal parameters of a shelving
// unit plus the fixed envelope copied from the requirements.
type Design struct {
	ID        string             `json:"id"`
	Width     float64            `json:"width"`     // mm, fixed from requirements
	Height    float64            `json:"height"`    // mm, fixed from requirements
	Depth     float64            `json:"depth"`     // mm, fixed from requirements
	Thickness float64            `json:"thickness"` // mm, from AllowedThicknesses
	AddTop    bool               `json:"add_top"`
	Material  materials.Material `json:"material"`
	Shelves   []float64          `json:"shelves"`  // ascending z positions (mm)
	Dividers  []float64          `json:"dividers"` // ascending x positions (mm)
}

// NewDesign creates an empty design carrying the fixed envelope from the
// requirements. The caller fills in the free genes.
func NewDesign(req Requirements) Design {
	return Design{
		ID:       uuid.New().String()[:8],
		Width:    req.Width,
		Height:   req.Height,
		Depth:    req.Depth,
		AddTop:   req.AddTop,
		Material: req.Material,
	}
}

// Clone returns an independently owned deep copy. Retained candidates
// (elites, best-so-far) must be cloned so no slice is shared across
// generations.
func (d Design) Clone() Design {
	cp := d
	cp.Shelves = append([]float64(nil), d.Shelves...)
	cp.Dividers = append([]float64(nil), d.Dividers...)
	return cp
}

// ResetID gives the design a fresh identity. Used when adopting a prior
// design from the knowledge base as a new candidate.
func (d *Design) ResetID() {
	d.ID = uuid.New().String()[:8]
}

// ClearWidth is the usable interior width between the side panels.
func (d Design) ClearWidth() float64 { return d.Width - 2*d.Thickness }

// NumBays is the number of horizontal bays (dividers + 1).
func (d Design) NumBays() int { return len(d.Dividers) + 1 }

// BayWidth is the span of a single shelf bay.
func (d Design) BayWidth() float64 {
	return d.ClearWidth() / float64(d.NumBays())
}

// InteriorHeight is the clear height between bottom panel and top panel (or
// the open top edge).
func (d Design) InteriorHeight() float64 {
	h := d.Height - d.Thickness
	if d.AddTop {
		h -= d.Thickness
	}
	return h
}

// SlendernessRatio is height over thickness, the stability proxy used by the
// fitness evaluator.
func (d Design) SlendernessRatio() float64 {
	if d.Thickness <= 0 {
		return math.Inf(1)
	}
	return d.Height / d.Thickness
}

// JointCount counts fastened connections: two per horizontal member side
// (bottom, optional top, each shelf) plus two per divider (floor and
// ceiling).
func (d Design) JointCount() int {
	horizontals := 1 + len(d.Shelves)
	if d.AddTop {
		horizontals++
	}
	return 2*horizontals + 2*len(d.Dividers)
}

// ThicknessAllowed reports whether t is in the discrete allowed set.
func ThicknessAllowed(t float64) bool {
	for _, a := range AllowedThicknesses {
		if t == a {
			return true
		}
	}
	return false
}

// Validate checks the genome invariants. All failures wrap ErrInvalidGenome.
func (d Design) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 {
		return fmt.Errorf("%w: non-positive envelope %.0fx%.0fx%.0fmm",
			ErrInvalidGenome, d.Width, d.Height, d.Depth)
	}
	if !ThicknessAllowed(d.Thickness) {
		return fmt.Errorf("%w: thickness %.1fmm not in allowed set %v",
			ErrInvalidGenome, d.Thickness, AllowedThicknesses)
	}
	for i, z := range d.Shelves {
		if z < 0 || z > d.Height {
			return fmt.Errorf("%w: shelf %d at z=%.1fmm outside [0, %.0f]",
				ErrInvalidGenome, i, z, d.Height)
		}
	}
	for i, x := range d.Dividers {
		if x < 0 || x > d.Width {
			return fmt.Errorf("%w: divider %d at x=%.1fmm outside [0, %.0f]",
				ErrInvalidGenome, i, x, d.Width)
		}
	}
	return nil
}
