package engine

import (
    "errors"
    "testing"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/stretchr/testify/require"
)

func TestBestMove(t *testing.T) {
    t.Run("empty board picks an optimal corner", func(t *testing.T) {
        scores, err := Score(domain.NewBoard(domain.Classic), B)
        require.NoError(t, err)
        max := scores[0].Score
        for _, s := range scores {
            if s.Score > max {
                max = s.Score
            }
        }
        require.Equal(t, 0, max, "tic-tac-toe is a draw under optimal play")

        idx, err := BestMove(domain.NewBoard(domain.Classic), B)
        require.NoError(t, err)
        require.Contains(t, []int{0, 2, 6, 8}, idx)
        for _, s := range scores {
            if s.Cell == idx {
                require.Equal(t, max, s.Score)
            }
        }
    })

    t.Run("completes its own row", func(t *testing.T) {
        b := board(A, A, E, E, B, E, E, E, E)
        idx, err := BestMove(b, A)
        require.NoError(t, err)
        require.Equal(t, 2, idx)
    })

    t.Run("blocks the only threat", func(t *testing.T) {
        b := board(E, E, B, E, E, B, E, E, E)
        idx, err := BestMove(b, A)
        require.NoError(t, err)
        require.Equal(t, 8, idx)
    })

    t.Run("prefers the faster win", func(t *testing.T) {
        // O can win now at 2 or set up a later win elsewhere.
        b := board(B, B, E, A, A, E, E, E, A)
        scores, err := Score(b, B)
        require.NoError(t, err)
        idx, err := BestMove(b, B)
        require.NoError(t, err)
        require.Equal(t, 2, idx)
        for _, s := range scores {
            if s.Cell == 2 {
                require.Equal(t, winScore, s.Score)
            }
        }
    })

    t.Run("does not mutate the board", func(t *testing.T) {
        b := board(A, E, E, E, B, E, E, E, A)
        before := b.Clone()
        _, err := BestMove(b, B)
        require.NoError(t, err)
        require.Equal(t, before, b)
    })

    t.Run("rejects full and relax boards", func(t *testing.T) {
        full := board(A, B, A, A, B, B, B, A, A)
        _, err := BestMove(full, B)
        require.True(t, errors.Is(err, ErrBoardFull))

        _, err = BestMove(domain.NewBoard(domain.Relax), B)
        require.True(t, errors.Is(err, domain.ErrGeometryMismatch))
    })
}

// The engine must never lose from any reachable position, whichever side
// opens and whatever the opponent plays.
func TestUnbeatableNeverLoses(t *testing.T) {
    if testing.Short() {
        t.Skip("exhaustive game tree")
    }
    e := New(WithSource(NewSource(1)))

    var explore func(g domain.Game)
    explore = func(g domain.Game) {
        if g.Over {
            require.NotEqual(t, domain.X, g.Winner, "opponent won: %v", g.Board)
            return
        }
        if g.Turn == e.Mark() {
            idx, err := e.SelectMove(g.Board, g.Geometry, domain.Unbeatable)
            require.NoError(t, err)
            next := g.Clone()
            require.NoError(t, next.Play(idx))
            explore(next)
            return
        }
        for _, idx := range g.Board.EmptyCells() {
            next := g.Clone()
            require.NoError(t, next.Play(idx))
            explore(next)
        }
    }

    t.Run("engine responds second", func(t *testing.T) {
        explore(domain.New(domain.ModeClassic))
    })

    t.Run("engine opens", func(t *testing.T) {
        g := domain.New(domain.ModeClassic)
        g.Turn = e.Mark()
        explore(g)
    })
}
