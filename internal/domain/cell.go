package domain

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

// Opponent returns the other mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
    switch c {
    case X:
        return O
    case O:
        return X
    default:
        return Empty
    }
}

func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return ""
    }
}
