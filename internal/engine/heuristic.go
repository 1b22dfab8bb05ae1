package engine

import "github.com/jaminalder/heart-tic-tac-toe/internal/domain"

// HeuristicMove picks a move with one ply of lookahead: win if possible,
// otherwise block the opponent, otherwise prefer a random empty center cell,
// otherwise any random empty cell.
func HeuristicMove(b domain.Board, g domain.Geometry, me domain.Cell, src Source) (int, error) {
    if err := checkBoard(b, g); err != nil {
        return -1, err
    }
    return heuristic(newGrid(b, g), g, me, src), nil
}

func heuristic(gr grid, g domain.Geometry, me domain.Cell, src Source) int {
    if i, ok := gr.winningCell(me); ok {
        return i
    }
    if i, ok := gr.winningCell(me.Opponent()); ok {
        return i
    }
    var center []int
    for _, i := range g.Center() {
        if gr.cells[i] == domain.Empty {
            center = append(center, i)
        }
    }
    if len(center) > 0 {
        return pick(src, center)
    }
    return pick(src, gr.empties())
}
