package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwright/shelfwright/internal/materials"
	"github.com/shelfwright/shelfwright/internal/model"
)

func storedDesign(w, h, d float64, m materials.Material) model.Design {
	return model.Design{
		ID:        "seed0001",
		Width:     w,
		Height:    h,
		Depth:     d,
		Thickness: 18,
		Material:  m,
		Shelves:   []float64{h * 0.25, h * 0.5, h * 0.75},
	}
}

func testReq() model.Requirements {
	return model.Requirements{
		Width:      800,
		Height:     1800,
		Depth:      300,
		NumShelves: 3,
		Material:   materials.MelaminePB,
		TargetLoad: 30,
	}
}

func TestRecordAndLen(t *testing.T) {
	s := NewMemoryStore()
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Record(Entry{Design: storedDesign(800, 1800, 300, materials.MelaminePB), Fitness: 80}))
	assert.Equal(t, 1, s.Len())
}

func TestRecordStoresCopy(t *testing.T) {
	s := NewMemoryStore()
	d := storedDesign(800, 1800, 300, materials.MelaminePB)
	require.NoError(t, s.Record(Entry{Design: d, Fitness: 80}))

	d.Shelves[0] = 9999

	out, err := s.FindSimilar(testReq(), 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 450.0, out[0].Shelves[0])
}

func TestFindSimilarTolerance(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Record(Entry{Design: storedDesign(820, 1750, 310, materials.MelaminePB), Fitness: 70}))
	require.NoError(t, s.Record(Entry{Design: storedDesign(1200, 1800, 300, materials.MelaminePB), Fitness: 95}))

	out, err := s.FindSimilar(testReq(), 10)
	require.NoError(t, err)
	// 1200mm width is 50% off the requested 800mm and must not match.
	require.Len(t, out, 1)
	assert.Equal(t, 820.0, out[0].Width)
}

func TestFindSimilarRanksExactEnvelopeFirst(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Record(Entry{Design: storedDesign(900, 1900, 330, materials.MelaminePB), Fitness: 99}))
	require.NoError(t, s.Record(Entry{Design: storedDesign(800, 1800, 300, materials.MelaminePB), Fitness: 50}))

	out, err := s.FindSimilar(testReq(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 800.0, out[0].Width, "exact envelope outranks higher fitness")
}

func TestFindSimilarMaterialBonus(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Record(Entry{Design: storedDesign(800, 1800, 300, materials.Plywood), Fitness: 99}))
	require.NoError(t, s.Record(Entry{Design: storedDesign(800, 1800, 300, materials.MelaminePB), Fitness: 50}))

	out, err := s.FindSimilar(testReq(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, materials.MelaminePB, out[0].Material)
}

func TestFindSimilarHonorsLimit(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(Entry{Design: storedDesign(800, 1800, 300, materials.MelaminePB), Fitness: float64(i)}))
	}

	out, err := s.FindSimilar(testReq(), 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestFindSimilarEmptyStore(t *testing.T) {
	s := NewMemoryStore()
	out, err := s.FindSimilar(testReq(), 5)
	require.NoError(t, err)
	assert.Empty(t, out)
}
