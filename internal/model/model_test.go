package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwright/shelfwright/internal/materials"
)

func testRequirements() Requirements {
	return Requirements{
		Width:      800,
		Height:     1800,
		Depth:      300,
		NumShelves: 4,
		Material:   materials.MelaminePB,
		TargetLoad: 30,
	}
}

func testDesign() Design {
	d := NewDesign(testRequirements())
	d.Thickness = 18
	d.Shelves = []float64{360, 720, 1080, 1440}
	return d
}

func TestRequirementsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Requirements)
		wantErr bool
	}{
		{"valid", func(r *Requirements) {}, false},
		{"zero shelves ok", func(r *Requirements) { r.NumShelves = 0 }, false},
		{"zero width", func(r *Requirements) { r.Width = 0 }, true},
		{"negative height", func(r *Requirements) { r.Height = -100 }, true},
		{"negative shelves", func(r *Requirements) { r.NumShelves = -1 }, true},
		{"negative load", func(r *Requirements) { r.TargetLoad = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequirements()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRequirements)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewDesignCarriesEnvelope(t *testing.T) {
	req := testRequirements()
	d := NewDesign(req)

	assert.Equal(t, req.Width, d.Width)
	assert.Equal(t, req.Height, d.Height)
	assert.Equal(t, req.Depth, d.Depth)
	assert.Equal(t, req.Material, d.Material)
	assert.Len(t, d.ID, 8)
}

func TestCloneIsDeep(t *testing.T) {
	d := testDesign()
	d.Dividers = []float64{400}

	cp := d.Clone()
	cp.Shelves[0] = 999
	cp.Dividers[0] = 999

	assert.Equal(t, 360.0, d.Shelves[0])
	assert.Equal(t, 400.0, d.Dividers[0])
}

func TestResetIDChangesIdentity(t *testing.T) {
	d := testDesign()
	old := d.ID
	d.ResetID()
	assert.NotEqual(t, old, d.ID)
	assert.Len(t, d.ID, 8)
}

func TestGeometryDerivations(t *testing.T) {
	d := testDesign()

	assert.Equal(t, 800.0-36.0, d.ClearWidth())
	assert.Equal(t, 1, d.NumBays())
	assert.InDelta(t, 764.0, d.BayWidth(), 1e-9)
	assert.Equal(t, 100.0, d.SlendernessRatio())
	assert.Equal(t, 1800.0-18.0, d.InteriorHeight())

	d.AddTop = true
	assert.Equal(t, 1800.0-36.0, d.InteriorHeight())

	d.Dividers = []float64{400}
	assert.Equal(t, 2, d.NumBays())
	assert.InDelta(t, 382.0, d.BayWidth(), 1e-9)
}

func TestJointCount(t *testing.T) {
	d := testDesign()
	// bottom + 4 shelves, two joints each
	assert.Equal(t, 10, d.JointCount())

	d.AddTop = true
	assert.Equal(t, 12, d.JointCount())

	d.Dividers = []float64{400}
	assert.Equal(t, 14, d.JointCount())
}

func TestDesignValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testDesign().Validate())
	})
	t.Run("bad thickness", func(t *testing.T) {
		d := testDesign()
		d.Thickness = 17
		err := d.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidGenome)
	})
	t.Run("shelf outside envelope", func(t *testing.T) {
		d := testDesign()
		d.Shelves[3] = 2000
		assert.ErrorIs(t, d.Validate(), ErrInvalidGenome)
	})
	t.Run("divider outside envelope", func(t *testing.T) {
		d := testDesign()
		d.Dividers = []float64{-10}
		assert.ErrorIs(t, d.Validate(), ErrInvalidGenome)
	})
}

func TestPanels(t *testing.T) {
	d := testDesign()
	d.AddTop = true
	d.Dividers = []float64{400}

	panels, err := d.Panels()
	require.NoError(t, err)

	// 2 sides + bottom + top + 4 shelves + 1 divider
	require.Len(t, panels, 9)

	kinds := map[PanelKind]int{}
	for _, p := range panels {
		kinds[p.Kind]++
		assert.Equal(t, d.Thickness, p.Thickness)
	}
	assert.Equal(t, 1, kinds[PanelSideLeft])
	assert.Equal(t, 1, kinds[PanelSideRight])
	assert.Equal(t, 1, kinds[PanelBottom])
	assert.Equal(t, 1, kinds[PanelTop])
	assert.Equal(t, 4, kinds[PanelShelf])
	assert.Equal(t, 1, kinds[PanelDivider])
}

func TestPanelsRejectsInvalidGenome(t *testing.T) {
	d := testDesign()
	d.Thickness = 5
	_, err := d.Panels()
	assert.ErrorIs(t, err, ErrInvalidGenome)

	_, err = d.TotalAreaM2()
	assert.ErrorIs(t, err, ErrInvalidGenome)
}

func TestTotalAreaM2(t *testing.T) {
	d := testDesign()
	area, err := d.TotalAreaM2()
	require.NoError(t, err)

	// 2 sides 300x1800, bottom 800x300, 4 shelves 764x300
	want := 2*(300.0*1800.0)/1e6 + (800.0*300.0)/1e6 + 4*(764.0*300.0)/1e6
	assert.InDelta(t, want, area, 1e-9)
}

func TestEvenShelfPositions(t *testing.T) {
	ps := EvenShelfPositions(1800, 18, false, 3)
	require.Len(t, ps, 3)
	for i := 1; i < len(ps); i++ {
		assert.Greater(t, ps[i], ps[i-1])
	}
	assert.Greater(t, ps[0], 18.0)
	assert.Less(t, ps[2], 1800.0)

	assert.Nil(t, EvenShelfPositions(1800, 18, false, 0))
}

func TestEvenDividerPositions(t *testing.T) {
	ps := EvenDividerPositions(900, 18, 2)
	require.Len(t, ps, 2)
	assert.InDelta(t, 18.0+288.0, ps[0], 1e-9)
	assert.InDelta(t, 18.0+576.0, ps[1], 1e-9)
}
