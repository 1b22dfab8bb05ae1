package engine

import (
    "fmt"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
)

const winScore = 10

// BestMove returns the minimax-optimal cell for me on a classic board.
// Ties go to the lowest index.
func BestMove(b domain.Board, me domain.Cell) (int, error) {
    scores, err := Score(b, me)
    if err != nil {
        return -1, err
    }
    best, bestScore := -1, 0
    for _, s := range scores {
        if best == -1 || s.Score > bestScore {
            best, bestScore = s.Cell, s.Score
        }
    }
    return best, nil
}

// CellScore is the minimax value of placing a mark on Cell.
type CellScore struct {
    Cell  int `json:"cell"`
    Score int `json:"score"`
}

// Score evaluates every empty cell for me with full-depth search.
// Faster wins score higher, slower losses score less negative.
func Score(b domain.Board, me domain.Cell) ([]CellScore, error) {
    if err := b.Validate(domain.Classic); err != nil {
        return nil, err
    }
    if me != domain.X && me != domain.O {
        return nil, fmt.Errorf("%w: %v", ErrInvalidMark, me)
    }
    gr := newGrid(b, domain.Classic)
    empties := gr.empties()
    if len(empties) == 0 {
        return nil, ErrBoardFull
    }
    out := make([]CellScore, 0, len(empties))
    for _, i := range empties {
        trial := gr
        trial.cells[i] = me
        out = append(out, CellScore{Cell: i, Score: minimax(trial, 0, false, me)})
    }
    return out, nil
}

func minimax(gr grid, depth int, maximizing bool, me domain.Cell) int {
    if gr.won(me) {
        return winScore - depth
    }
    if gr.won(me.Opponent()) {
        return depth - winScore
    }
    empties := gr.empties()
    if len(empties) == 0 {
        return 0
    }

    mark, best := me, -winScore-1
    if !maximizing {
        mark, best = me.Opponent(), winScore+1
    }
    for _, i := range empties {
        trial := gr
        trial.cells[i] = mark
        s := minimax(trial, depth+1, !maximizing, me)
        if maximizing && s > best || !maximizing && s < best {
            best = s
        }
    }
    return best
}
