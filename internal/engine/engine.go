// Package engine chooses moves for the computer player.
//
// The engine keeps no per-game state. Every call is a function of the board,
// the policy and, for daily play, the date and move count.
package engine

import (
    "fmt"
    "time"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/rs/zerolog"
)

// Engine plays the O mark unless configured otherwise.
type Engine struct {
    me   domain.Cell
    rand Source
    now  func() time.Time
    log  zerolog.Logger
}

type Option func(*Engine)

// WithSource replaces the random source used by soft and smart play.
func WithSource(src Source) Option {
    return func(e *Engine) {
        if src != nil {
            e.rand = src
        }
    }
}

// WithClock sets the clock the daily selector reads.
func WithClock(now func() time.Time) Option {
    return func(e *Engine) {
        if now != nil {
            e.now = now
        }
    }
}

func WithLogger(l zerolog.Logger) Option {
    return func(e *Engine) { e.log = l }
}

// WithMark sets which mark the engine plays.
func WithMark(mark domain.Cell) Option {
    return func(e *Engine) {
        if mark == domain.X || mark == domain.O {
            e.me = mark
        }
    }
}

func New(opts ...Option) *Engine {
    e := &Engine{
        me:  domain.O,
        now: time.Now,
        log: zerolog.Nop(),
    }
    for _, opt := range opts {
        opt(e)
    }
    if e.rand == nil {
        e.rand = newClockSource()
    }
    return e
}

// Mark returns the mark the engine plays.
func (e *Engine) Mark() domain.Cell { return e.me }

// Now reads the engine clock.
func (e *Engine) Now() time.Time { return e.now() }

// Evaluate classifies b after mark moved.
func (e *Engine) Evaluate(b domain.Board, mark domain.Cell, g domain.Geometry) (domain.Outcome, error) {
    return domain.Evaluate(b, mark, g)
}

// Reply picks the computer's move for an ongoing game. Daily games ignore d.
func (e *Engine) Reply(g domain.Game, d domain.Difficulty) (int, error) {
    if g.Over {
        return -1, domain.ErrGameOver
    }
    if g.Turn != e.me {
        return -1, fmt.Errorf("%w: engine plays %v, %v to move", ErrNotOurTurn, e.me, g.Turn)
    }
    if g.Mode == domain.ModeDaily {
        return e.SelectDailyMove(g.Board, g.Geometry, g.Moves)
    }
    return e.SelectMove(g.Board, g.Geometry, d)
}
