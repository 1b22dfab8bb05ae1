package engine

import (
    "fmt"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
)

const (
    // SmartOptimalRate is how often Smart plays the Unbeatable move.
    SmartOptimalRate = 0.7
    // SoftWinCheckRate is how often Soft looks for an immediate win.
    SoftWinCheckRate = 0.4
)

// SelectMove picks the computer's cell for the configured difficulty.
func (e *Engine) SelectMove(b domain.Board, g domain.Geometry, d domain.Difficulty) (int, error) {
    if err := checkBoard(b, g); err != nil {
        return -1, err
    }
    var (
        idx    int
        reason string
    )
    switch d {
    case domain.Unbeatable:
        idx, reason = e.optimal(b, g), "optimal"
    case domain.Smart:
        idx, reason = e.smart(b, g)
    case domain.Soft:
        idx, reason = e.soft(b, g)
    default:
        return -1, fmt.Errorf("%w: %v", domain.ErrUnknownDifficulty, d)
    }
    e.log.Debug().
        Str("geometry", g.String()).
        Str("difficulty", d.String()).
        Str("reason", reason).
        Int("cell", idx).
        Msg("engine move")
    return idx, nil
}

// optimal resolves Unbeatable play: full search on the classic board, the
// heuristic on the 4x4 board where full search is too slow.
func (e *Engine) optimal(b domain.Board, g domain.Geometry) int {
    if g == domain.Relax {
        return heuristic(newGrid(b, g), g, e.me, e.rand)
    }
    idx, err := BestMove(b, e.me)
    if err != nil {
        // preconditions were checked by the caller
        panic(err)
    }
    return idx
}

func (e *Engine) smart(b domain.Board, g domain.Geometry) (int, string) {
    if e.rand.Float64() < SmartOptimalRate {
        return e.optimal(b, g), "optimal"
    }
    return pick(e.rand, b.EmptyCells()), "random"
}

func (e *Engine) soft(b domain.Board, g domain.Geometry) (int, string) {
    if e.rand.Float64() < SoftWinCheckRate {
        if i, ok := newGrid(b, g).winningCell(e.me); ok {
            return i, "win"
        }
    }
    return pick(e.rand, b.EmptyCells()), "random"
}
