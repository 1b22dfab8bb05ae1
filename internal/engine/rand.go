package engine

import (
    "sync"
    "time"

    "golang.org/x/exp/rand"
)

// Source supplies the randomness used by the soft and smart policies and the
// heuristic's tie breaking.
type Source interface {
    // Float64 returns a value in [0, 1).
    Float64() float64
    // Intn returns a value in [0, n). n must be positive.
    Intn(n int) int
}

// lockedSource makes a *rand.Rand safe for concurrent games.
type lockedSource struct {
    mu sync.Mutex
    r  *rand.Rand
}

// NewSource returns a Source seeded with seed.
func NewSource(seed uint64) Source {
    return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func newClockSource() Source {
    return NewSource(uint64(time.Now().UnixNano()))
}

func (s *lockedSource) Float64() float64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.r.Intn(n)
}

func pick(src Source, cells []int) int {
    return cells[src.Intn(len(cells))]
}
