package domain

// Status classifies a board after a move.
type Status uint8

const (
    Continue Status = iota
    Win
    Draw
)

func (s Status) String() string {
    switch s {
    case Win:
        return "win"
    case Draw:
        return "draw"
    default:
        return "continue"
    }
}

// Outcome is derived from a board and the mark that just moved.
// Winner and Line are set only for Win.
type Outcome struct {
    Status Status
    Winner Cell
    Line   []int
}

// HasWon reports whether every index of some winning line holds mark.
func HasWon(b Board, mark Cell, g Geometry) bool {
    _, ok := WinningLine(b, mark, g)
    return ok
}

// WinningLine returns the first completed line for mark in definition order.
func WinningLine(b Board, mark Cell, g Geometry) ([]int, bool) {
    if mark == Empty || len(b) != g.Size() {
        return nil, false
    }
    for _, ln := range g.Lines() {
        if lineHolds(b, ln, mark) {
            out := make([]int, len(ln))
            copy(out, ln)
            return out, true
        }
    }
    return nil, false
}

func lineHolds(b Board, ln []int, mark Cell) bool {
    for _, i := range ln {
        if b[i] != mark {
            return false
        }
    }
    return true
}

// Evaluate classifies b from the point of view of mark, the side that just
// moved: a win for mark first, then a full board is a draw, else play goes on.
func Evaluate(b Board, mark Cell, g Geometry) (Outcome, error) {
    if err := b.Validate(g); err != nil {
        return Outcome{}, err
    }
    if ln, ok := WinningLine(b, mark, g); ok {
        return Outcome{Status: Win, Winner: mark, Line: ln}, nil
    }
    if b.IsFull() {
        return Outcome{Status: Draw}, nil
    }
    return Outcome{Status: Continue}, nil
}
