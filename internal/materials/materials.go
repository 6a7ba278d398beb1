// Package materials holds the sheet-material property table and the
// closed-form structural approximations built on it. The same table feeds
// both the fitness evaluator and the costing module so the two never
// disagree about what a material costs or how stiff it is.
package materials

// Material identifies a sheet material.
type Material string

const (
	MelaminePB Material = "melamine_pb"
	Plywood    Material = "plywood"
	MDF        Material = "mdf"
	SolidWood  Material = "solid_wood"
)

// Spec is the complete material specification: stock sheet geometry and
// pricing plus the structural properties the estimator needs.
type Spec struct {
	Name          string  `json:"name"`
	SheetLength   float64 `json:"sheet_length"`    // mm
	SheetWidth    float64 `json:"sheet_width"`     // mm
	PricePerSheet float64 `json:"price_per_sheet"` // currency per full sheet
	WasteFactor   float64 `json:"waste_factor"`    // fraction of a sheet lost to offcuts

	Stiffness float64 `json:"stiffness"`  // Young's modulus E (Pa)
	MaxStress float64 `json:"max_stress"` // allowable bending stress (Pa)
	Density   float64 `json:"density"`    // kg/m3

	// DeflectionLimitRatio is the sag limit as a fraction of span (L/250).
	DeflectionLimitRatio float64 `json:"deflection_limit_ratio"`
}

var specs = map[Material]Spec{
	MelaminePB: {
		Name:                 "Melamine Particleboard",
		SheetLength:          2440,
		SheetWidth:           1220,
		PricePerSheet:        30.0,
		WasteFactor:          0.12,
		Stiffness:            3.0e9,
		MaxStress:            15e6,
		Density:              680,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
	Plywood: {
		Name:                 "Plywood",
		SheetLength:          2440,
		SheetWidth:           1220,
		PricePerSheet:        42.0,
		WasteFactor:          0.12,
		Stiffness:            8.0e9,
		MaxStress:            30e6,
		Density:              600,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
	MDF: {
		Name:                 "MDF",
		SheetLength:          2440,
		SheetWidth:           1220,
		PricePerSheet:        26.0,
		WasteFactor:          0.12,
		Stiffness:            3.5e9,
		MaxStress:            18e6,
		Density:              750,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
	SolidWood: {
		Name:                 "Solid Wood",
		SheetLength:          2440,
		SheetWidth:           1220,
		PricePerSheet:        60.0,
		WasteFactor:          0.15,
		Stiffness:            10.0e9,
		MaxStress:            40e6,
		Density:              600,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
}

// Get returns the spec for m. Unknown keys fall back to melamine
// particleboard, the documented baseline material.
func Get(m Material) Spec {
	if s, ok := specs[m]; ok {
		return s
	}
	return specs[MelaminePB]
}

// Known reports whether m is one of the catalogued materials.
func Known(m Material) bool {
	_, ok := specs[m]
	return ok
}

// All returns the catalogued materials in a stable order.
func All() []Material {
	return []Material{MelaminePB, Plywood, MDF, SolidWood}
}
