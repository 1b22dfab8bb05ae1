package engine

import (
    "encoding/binary"
    "time"

    "github.com/cespare/xxhash/v2"
    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
)

// DailySeed encodes the calendar date of t as yyyymmdd.
func DailySeed(t time.Time) int {
    y, m, d := t.Date()
    return y*10000 + int(m)*100 + d
}

// DailyValue maps seed to a reproducible value in [0, 1).
func DailyValue(seed int) float64 {
    var buf [8]byte
    binary.LittleEndian.PutUint64(buf[:], uint64(int64(seed)))
    return float64(xxhash.Sum64(buf[:])>>11) / (1 << 53)
}

// DailyMoveAt picks the daily opponent's cell for the given date and the
// number of moves already played in the game.
func DailyMoveAt(b domain.Board, g domain.Geometry, day time.Time, moveCount int) (int, error) {
    if err := checkBoard(b, g); err != nil {
        return -1, err
    }
    empties := b.EmptyCells()
    v := DailyValue(DailySeed(day) + moveCount)
    return empties[int(v*float64(len(empties)))], nil
}

// SelectDailyMove is DailyMoveAt for the engine clock's current date.
// A game crossing midnight switches seeds mid-game.
func (e *Engine) SelectDailyMove(b domain.Board, g domain.Geometry, moveCount int) (int, error) {
    now := e.now()
    idx, err := DailyMoveAt(b, g, now, moveCount)
    if err != nil {
        return -1, err
    }
    e.log.Debug().
        Int("seed", DailySeed(now)).
        Int("moves", moveCount).
        Int("cell", idx).
        Msg("daily move")
    return idx, nil
}
