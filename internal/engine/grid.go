package engine

import "github.com/jaminalder/heart-tic-tac-toe/internal/domain"

// grid is a fixed-size copy of a board. Search passes it by value so trial
// placements never reach the caller's board.
type grid struct {
    cells [16]domain.Cell
    n     int
    lines [][]int
}

func newGrid(b domain.Board, g domain.Geometry) grid {
    gr := grid{n: len(b), lines: g.Lines()}
    copy(gr.cells[:], b)
    return gr
}

func (gr *grid) won(mark domain.Cell) bool {
    for _, ln := range gr.lines {
        hit := true
        for _, i := range ln {
            if gr.cells[i] != mark {
                hit = false
                break
            }
        }
        if hit {
            return true
        }
    }
    return false
}

func (gr *grid) empties() []int {
    out := make([]int, 0, gr.n)
    for i := 0; i < gr.n; i++ {
        if gr.cells[i] == domain.Empty {
            out = append(out, i)
        }
    }
    return out
}

// winningCell returns the first empty cell, in ascending order, that
// completes a line for mark.
func (gr grid) winningCell(mark domain.Cell) (int, bool) {
    for _, i := range gr.empties() {
        gr.cells[i] = mark
        won := gr.won(mark)
        gr.cells[i] = domain.Empty
        if won {
            return i, true
        }
    }
    return -1, false
}
