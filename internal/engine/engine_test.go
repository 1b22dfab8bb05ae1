package engine

import (
    "time"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
)

const (
    A = domain.X
    B = domain.O
    E = domain.Empty
)

// scripted replays fixed random draws so policy branches can be forced.
type scripted struct {
    floats []float64
    ints   []int
}

func (s *scripted) Float64() float64 {
    if len(s.floats) == 0 {
        return 0
    }
    f := s.floats[0]
    s.floats = s.floats[1:]
    return f
}

func (s *scripted) Intn(n int) int {
    if len(s.ints) == 0 {
        return 0
    }
    i := s.ints[0]
    s.ints = s.ints[1:]
    return i % n
}

func fixedClock(y int, m time.Month, d int) func() time.Time {
    return func() time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
}

func board(cells ...domain.Cell) domain.Board { return domain.Board(cells) }
