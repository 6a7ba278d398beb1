package materials

import "math"

// Caps keeping the closed-form results in a physically sane range.
const (
	maxDeflectionMM = 1000.0
	maxStressPa     = 1e9
	maxCapacityKg   = 1000.0
	gravity         = 9.81
)

// Estimate holds the structural results for one shelf bay.
type Estimate struct {
	MaxDeflection float64 `json:"max_deflection"` // mm, under the given load
	MaxStress     float64 `json:"max_stress"`     // Pa, under the given load
	LoadCapacity  float64 `json:"load_capacity"`  // kg, at the material stress limit
}

// EstimateBay evaluates a single shelf bay as a simply supported beam under
// uniform load. It never fails: degenerate inputs produce pessimistic
// deflection/stress and zero capacity.
func EstimateBay(bayWidthMM, depthMM, thicknessMM, loadKg float64, m Material) Estimate {
	return Estimate{
		MaxDeflection: Deflection(bayWidthMM, depthMM, thicknessMM, loadKg, m),
		MaxStress:     Stress(bayWidthMM, depthMM, thicknessMM, loadKg),
		LoadCapacity:  LoadCapacity(bayWidthMM, depthMM, thicknessMM, m),
	}
}

// Deflection returns the midspan sag in mm of a simply supported shelf under
// a uniformly distributed load: delta = 5wL^4 / 384EI.
func Deflection(bayWidthMM, depthMM, thicknessMM, loadKg float64, m Material) float64 {
	if bayWidthMM <= 0 || depthMM <= 0 || thicknessMM <= 0 || loadKg < 0 {
		return maxDeflectionMM
	}
	spec := Get(m)

	l := bayWidthMM / 1000.0
	b := depthMM / 1000.0
	h := thicknessMM / 1000.0

	inertia := b * math.Pow(h, 3) / 12.0
	w := loadKg * gravity / l

	delta := 5.0 * w * math.Pow(l, 4) / (384.0 * spec.Stiffness * inertia)
	return math.Min(delta*1000.0, maxDeflectionMM)
}

// Stress returns the maximum bending stress in Pa of a simply supported
// shelf under a uniformly distributed load: sigma = Mc/I with M = wL^2/8.
func Stress(bayWidthMM, depthMM, thicknessMM, loadKg float64) float64 {
	if bayWidthMM <= 0 || depthMM <= 0 || thicknessMM <= 0 || loadKg < 0 {
		return maxStressPa
	}

	l := bayWidthMM / 1000.0
	b := depthMM / 1000.0
	h := thicknessMM / 1000.0

	inertia := b * math.Pow(h, 3) / 12.0
	w := loadKg * gravity / l
	moment := w * l * l / 8.0
	sigma := moment * (h / 2.0) / inertia

	return math.Min(sigma, maxStressPa)
}

// LoadCapacity inverts the bending stress limit to the maximum uniformly
// distributed load (kg) a shelf bay can carry. Capacity derates with span:
// wider bays carry less.
func LoadCapacity(bayWidthMM, depthMM, thicknessMM float64, m Material) float64 {
	if bayWidthMM <= 0 || depthMM <= 0 || thicknessMM <= 0 {
		return 0
	}
	spec := Get(m)

	l := bayWidthMM / 1000.0
	b := depthMM / 1000.0
	h := thicknessMM / 1000.0

	inertia := b * math.Pow(h, 3) / 12.0
	momentMax := spec.MaxStress * inertia / (h / 2.0)
	wMax := 8.0 * momentMax / (l * l)
	loadKg := wMax * l / gravity

	return math.Max(0, math.Min(loadKg, maxCapacityKg))
}
