package engine

import (
    "testing"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/stretchr/testify/require"
)

func TestSelectMoveUnbeatable(t *testing.T) {
    t.Run("classic is a pure function of the board", func(t *testing.T) {
        b := board(A, E, E, E, E, E, E, E, E)
        first, err := New().SelectMove(b, domain.Classic, domain.Unbeatable)
        require.NoError(t, err)
        for n := 0; n < 3; n++ {
            again, err := New().SelectMove(b, domain.Classic, domain.Unbeatable)
            require.NoError(t, err)
            require.Equal(t, first, again)
        }
        require.Equal(t, 4, first, "only the center draws against a corner opening")
    })

    t.Run("relax falls back to the heuristic without error", func(t *testing.T) {
        b := domain.NewBoard(domain.Relax)
        for _, i := range []int{0, 1, 2} {
            b[i] = A
        }
        b[5], b[6] = B, B
        idx, err := New().SelectMove(b, domain.Relax, domain.Unbeatable)
        require.NoError(t, err)
        require.Equal(t, 3, idx)
    })
}

func TestSelectMoveSmart(t *testing.T) {
    b := board(A, A, E, E, B, E, E, E, E)

    t.Run("optimal branch", func(t *testing.T) {
        e := New(WithSource(&scripted{floats: []float64{0.69}}))
        idx, err := e.SelectMove(b, domain.Classic, domain.Smart)
        require.NoError(t, err)
        require.Equal(t, 2, idx, "blocks the open row")
    })

    t.Run("random branch", func(t *testing.T) {
        e := New(WithSource(&scripted{floats: []float64{0.7}, ints: []int{4}}))
        idx, err := e.SelectMove(b, domain.Classic, domain.Smart)
        require.NoError(t, err)
        require.Equal(t, b.EmptyCells()[4], idx)
    })
}

func TestSelectMoveSoft(t *testing.T) {
    t.Run("takes an immediate win when it looks", func(t *testing.T) {
        b := board(B, B, E, A, A, E, E, E, A)
        e := New(WithSource(&scripted{floats: []float64{0.1}, ints: []int{0}}))
        idx, err := e.SelectMove(b, domain.Classic, domain.Soft)
        require.NoError(t, err)
        require.Equal(t, 2, idx)
    })

    t.Run("never blocks", func(t *testing.T) {
        // X threatens 8; O has no win. Soft picks the random cell.
        b := board(E, E, A, E, B, A, E, E, E)
        e := New(WithSource(&scripted{floats: []float64{0.1}, ints: []int{0}}))
        idx, err := e.SelectMove(b, domain.Classic, domain.Soft)
        require.NoError(t, err)
        require.Equal(t, 0, idx)
    })

    t.Run("skips the win check most of the time", func(t *testing.T) {
        b := board(B, B, E, A, A, E, E, E, A)
        e := New(WithSource(&scripted{floats: []float64{0.4}, ints: []int{1}}))
        idx, err := e.SelectMove(b, domain.Classic, domain.Soft)
        require.NoError(t, err)
        require.Equal(t, 5, idx)
    })

    t.Run("works on the relax board", func(t *testing.T) {
        e := New(WithSource(NewSource(3)))
        b := domain.NewBoard(domain.Relax)
        idx, err := e.SelectMove(b, domain.Relax, domain.Soft)
        require.NoError(t, err)
        require.True(t, idx >= 0 && idx < 16)
    })
}

func TestSelectMovePreconditions(t *testing.T) {
    e := New()
    _, err := e.SelectMove(board(A, B, A, A, B, B, B, A, A), domain.Classic, domain.Smart)
    require.ErrorIs(t, err, ErrBoardFull)

    _, err = e.SelectMove(domain.NewBoard(domain.Classic), domain.Relax, domain.Soft)
    require.ErrorIs(t, err, domain.ErrGeometryMismatch)

    _, err = e.SelectMove(domain.NewBoard(domain.Classic), domain.Classic, domain.Difficulty(9))
    require.ErrorIs(t, err, domain.ErrUnknownDifficulty)
}

func TestReply(t *testing.T) {
    e := New(WithClock(fixedClock(2025, 6, 1)))

    g := domain.New(domain.ModeClassic)
    _, err := e.Reply(g, domain.Unbeatable)
    require.ErrorIs(t, err, ErrNotOurTurn)

    require.NoError(t, g.Play(0))
    idx, err := e.Reply(g, domain.Unbeatable)
    require.NoError(t, err)
    require.Equal(t, 4, idx)

    daily := domain.New(domain.ModeDaily)
    require.NoError(t, daily.Play(4))
    want, err := DailyMoveAt(daily.Board, domain.Classic, fixedClock(2025, 6, 1)(), 1)
    require.NoError(t, err)
    got, err := e.Reply(daily, domain.Unbeatable)
    require.NoError(t, err)
    require.Equal(t, want, got)
}
