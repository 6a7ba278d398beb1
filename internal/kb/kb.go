// Package kb defines the knowledge-base collaboration surface: a source of
// prior designs used to seed the optimizer's initial population, and a sink
// for recording finished results. The optimizer depends only on the
// interfaces; an in-memory store backs them for library and test use.
package kb

import (
	"sort"
	"sync"
	"time"

	"github.com/shelfwright/shelfwright/internal/model"
)

// SeedSource supplies prior designs similar to a set of requirements.
// Consumed once, at population initialization. Implementations may fail;
// callers degrade to random seeding.
type SeedSource interface {
	FindSimilar(req model.Requirements, limit int) ([]model.Design, error)
}

// Recorder accepts finished optimization results for future reuse.
type Recorder interface {
	Record(e Entry) error
}

// Entry is one stored design with the outcome metrics that make it worth
// reusing.
type Entry struct {
	Design    model.Design `json:"design"`
	Fitness   float64      `json:"fitness"`
	Cost      float64      `json:"cost"`
	CreatedAt time.Time    `json:"created_at"`
}

// Dimensional tolerance for similarity matching: a stored design matches a
// requirement dimension when within +/-20%.
const similarityTolerance = 0.20

// MemoryStore is a concurrency-safe in-memory knowledge base.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record stores a deep copy of the entry.
func (s *MemoryStore) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Design = e.Design.Clone()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, e)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// FindSimilar returns up to limit stored designs whose envelope lies within
// the similarity tolerance of the requirements, best match first. Matching
// material earns a bonus; among equal scores, higher recorded fitness wins.
func (s *MemoryStore) FindSimilar(req model.Requirements, limit int) ([]model.Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		entry Entry
		score float64
	}
	var matches []scored
	for _, e := range s.entries {
		score, ok := similarity(req, e)
		if !ok {
			continue
		}
		matches = append(matches, scored{entry: e, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].entry.Fitness > matches[j].entry.Fitness
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]model.Design, len(matches))
	for i, m := range matches {
		out[i] = m.entry.Design.Clone()
	}
	return out, nil
}

// similarity scores an entry against the requirements in [0,1]. The second
// return is false when any dimension falls outside the tolerance band.
func similarity(req model.Requirements, e Entry) (float64, bool) {
	dims := [3][2]float64{
		{req.Width, e.Design.Width},
		{req.Height, e.Design.Height},
		{req.Depth, e.Design.Depth},
	}
	score := 0.0
	for _, d := range dims {
		want, got := d[0], d[1]
		if want <= 0 {
			return 0, false
		}
		rel := (got - want) / want
		if rel < 0 {
			rel = -rel
		}
		if rel > similarityTolerance {
			return 0, false
		}
		score += (similarityTolerance - rel) / similarityTolerance
	}
	score /= 3.0
	if e.Design.Material == req.Material {
		score += 0.25
	}
	return score, true
}
