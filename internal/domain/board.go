package domain

import (
    "errors"
    "fmt"
)

// ErrGeometryMismatch is returned when a board's length does not match the
// geometry it is evaluated against.
var ErrGeometryMismatch = errors.New("board length does not match geometry")

// Board is a row-major grid of cells. Index i is row i/width, column i%width.
type Board []Cell

// NewBoard returns an empty board for g.
func NewBoard(g Geometry) Board {
    return make(Board, g.Size())
}

// Clone returns an independent copy.
func (b Board) Clone() Board {
    cp := make(Board, len(b))
    copy(cp, b)
    return cp
}

// Validate checks that b has the length required by g.
func (b Board) Validate(g Geometry) error {
    if !g.Valid() {
        return fmt.Errorf("%w: %v", ErrUnknownGeometry, g)
    }
    if len(b) != g.Size() {
        return fmt.Errorf("%w: %d cells for %s", ErrGeometryMismatch, len(b), g)
    }
    return nil
}

// EmptyCells lists the indices holding Empty in ascending order.
func (b Board) EmptyCells() []int {
    out := make([]int, 0, len(b))
    for i, c := range b {
        if c == Empty {
            out = append(out, i)
        }
    }
    return out
}

// IsFull reports whether no cell is Empty.
func (b Board) IsFull() bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}

// Count returns how many cells hold mark.
func (b Board) Count(mark Cell) int {
    n := 0
    for _, c := range b {
        if c == mark {
            n++
        }
    }
    return n
}

// RowCol converts an index into row and column for g.
func (g Geometry) RowCol(i int) (int, int) {
    return i / g.Width(), i % g.Width()
}

// Index converts row and column into an index; ok is false when out of range.
func (g Geometry) Index(r, c int) (int, bool) {
    w := g.Width()
    if r < 0 || r >= w || c < 0 || c >= w {
        return -1, false
    }
    return r*w + c, true
}
