package engine

import (
    "errors"
    "fmt"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
)

// Errors returned when the caller breaks a precondition.
var (
    ErrBoardFull   = errors.New("no empty cells")
    ErrInvalidMark = errors.New("mark must be X or O")
    ErrNotOurTurn  = errors.New("not the engine's turn")
)

func checkBoard(b domain.Board, g domain.Geometry) error {
    if err := b.Validate(g); err != nil {
        return err
    }
    if b.IsFull() {
        return fmt.Errorf("%w: %s board", ErrBoardFull, g)
    }
    return nil
}
