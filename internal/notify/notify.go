// Package notify reports finished games to external endpoints.
package notify

import (
    "context"
    "strconv"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
)

// Kind is the result from the human player's side.
type Kind string

const (
    KindWin  Kind = "win"
    KindLose Kind = "lose"
    KindDraw Kind = "draw"
)

// Result describes a finished game.
type Result struct {
    GameID    string
    Kind      Kind
    Mode      domain.Mode
    PromoCode string
}

// Notifier is told about every finished game. Implementations must not block
// the game on network failures.
type Notifier interface {
    Notify(ctx context.Context, r Result) error
}

// Nop drops every result.
type Nop struct{}

func (Nop) Notify(context.Context, Result) error { return nil }

// Intn is the part of a random source PromoCode needs.
type Intn interface {
    Intn(n int) int
}

// PromoCode returns a five digit code in 10000..99999.
func PromoCode(src Intn) string {
    return strconv.Itoa(10000 + src.Intn(90000))
}
