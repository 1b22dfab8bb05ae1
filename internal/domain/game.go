package domain

import "errors"

// Game holds the current state of a match between the human (X) and the
// computer (O). X always moves first.
type Game struct {
    Mode     Mode
    Geometry Geometry
    Board    Board
    Turn     Cell
    Winner   Cell
    Line     []int
    Over     bool
    Moves    int
}

// Errors returned by domain operations.
var (
    ErrOutOfBounds = errors.New("out of bounds")
    ErrOccupied    = errors.New("cell occupied")
    ErrGameOver    = errors.New("game over")
)

// New returns a new game for mode with X to move.
func New(mode Mode) Game {
    g := mode.Geometry()
    return Game{Mode: mode, Geometry: g, Board: NewBoard(g), Turn: X}
}

// Clone returns a deep copy so callers can hand out snapshots.
func (g Game) Clone() Game {
    cp := g
    cp.Board = g.Board.Clone()
    if g.Line != nil {
        cp.Line = append([]int(nil), g.Line...)
    }
    return cp
}

// PlayAt plays the current turn at row r, column c.
func (g *Game) PlayAt(r, c int) error {
    idx, ok := g.Geometry.Index(r, c)
    if !ok {
        if g.Over {
            return ErrGameOver
        }
        return ErrOutOfBounds
    }
    return g.Play(idx)
}

// Play places the current turn's mark at idx.
func (g *Game) Play(idx int) error {
    if g.Over {
        return ErrGameOver
    }
    if idx < 0 || idx >= len(g.Board) {
        return ErrOutOfBounds
    }
    if g.Board[idx] != Empty {
        return ErrOccupied
    }

    g.Board[idx] = g.Turn
    g.Moves++

    out, err := Evaluate(g.Board, g.Turn, g.Geometry)
    if err != nil {
        return err
    }
    switch out.Status {
    case Win:
        g.Winner = out.Winner
        g.Line = out.Line
        g.Over = true
    case Draw:
        g.Winner = Empty
        g.Over = true
    default:
        g.Turn = g.Turn.Opponent()
    }
    return nil
}

// Outcome reports the game's classification.
func (g Game) Outcome() Outcome {
    switch {
    case g.Over && g.Winner != Empty:
        return Outcome{Status: Win, Winner: g.Winner, Line: g.Line}
    case g.Over:
        return Outcome{Status: Draw}
    default:
        return Outcome{Status: Continue}
    }
}
