package domain

import (
    "errors"
    "fmt"
    "strings"
)

// Mode selects the board and how the computer chooses its moves.
type Mode uint8

const (
    ModeClassic Mode = iota
    ModeRelax
    // ModeDaily plays on the classic board with a date-seeded opponent
    // that ignores difficulty.
    ModeDaily
)

// Difficulty is the computer's skill level outside daily mode.
type Difficulty uint8

const (
    Soft Difficulty = iota
    Smart
    Unbeatable
)

var (
    ErrUnknownMode       = errors.New("unknown game mode")
    ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Geometry returns the board used by the mode.
func (m Mode) Geometry() Geometry {
    if m == ModeRelax {
        return Relax
    }
    return Classic
}

func (m Mode) String() string {
    switch m {
    case ModeClassic:
        return "classic"
    case ModeRelax:
        return "relax"
    case ModeDaily:
        return "daily"
    default:
        return fmt.Sprintf("mode(%d)", uint8(m))
    }
}

func ParseMode(s string) (Mode, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "classic":
        return ModeClassic, nil
    case "relax":
        return ModeRelax, nil
    case "daily":
        return ModeDaily, nil
    }
    return ModeClassic, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Valid reports whether d is a defined difficulty.
func (d Difficulty) Valid() bool { return d <= Unbeatable }

func (d Difficulty) String() string {
    switch d {
    case Soft:
        return "soft"
    case Smart:
        return "smart"
    case Unbeatable:
        return "unbeatable"
    default:
        return fmt.Sprintf("difficulty(%d)", uint8(d))
    }
}

func ParseDifficulty(s string) (Difficulty, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "soft":
        return Soft, nil
    case "smart":
        return Smart, nil
    case "unbeatable":
        return Unbeatable, nil
    }
    return Soft, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
