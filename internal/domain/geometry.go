package domain

import (
    "errors"
    "fmt"
    "strings"
)

// Geometry is a board size together with its win length.
type Geometry uint8

const (
    Classic Geometry = iota // 3x3, three in a row
    Relax                   // 4x4, four in a row
)

// ErrUnknownGeometry is returned when parsing an unsupported geometry name.
var ErrUnknownGeometry = errors.New("unknown geometry")

// Win patterns in definition order: rows, columns, main diagonal, anti-diagonal.
// WinningLine relies on this order for highlighting.
var (
    classicLines = [][]int{
        {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
        {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
        {0, 4, 8}, {2, 4, 6},
    }
    relaxLines = [][]int{
        {0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15},
        {0, 4, 8, 12}, {1, 5, 9, 13}, {2, 6, 10, 14}, {3, 7, 11, 15},
        {0, 5, 10, 15}, {3, 6, 9, 12},
    }

    classicCenter = []int{4}
    relaxCenter   = []int{5, 6, 9, 10}
)

// Width is the number of columns (and rows).
func (g Geometry) Width() int {
    if g == Relax {
        return 4
    }
    return 3
}

// Size is the number of cells on the board.
func (g Geometry) Size() int { return g.Width() * g.Width() }

// WinLength is how many marks in a line end the game.
func (g Geometry) WinLength() int { return g.Width() }

// Lines returns the winning lines. The returned slices must not be modified.
func (g Geometry) Lines() [][]int {
    if g == Relax {
        return relaxLines
    }
    return classicLines
}

// Center returns the innermost cells in ascending order.
func (g Geometry) Center() []int {
    if g == Relax {
        return relaxCenter
    }
    return classicCenter
}

// Valid reports whether g is one of the defined geometries.
func (g Geometry) Valid() bool { return g == Classic || g == Relax }

func (g Geometry) String() string {
    switch g {
    case Classic:
        return "classic"
    case Relax:
        return "relax"
    default:
        return fmt.Sprintf("geometry(%d)", uint8(g))
    }
}

// ParseGeometry accepts "classic"/"3x3" and "relax"/"4x4".
func ParseGeometry(s string) (Geometry, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "classic", "3x3":
        return Classic, nil
    case "relax", "4x4":
        return Relax, nil
    }
    return Classic, fmt.Errorf("%w: %q", ErrUnknownGeometry, s)
}

// GeometryForSize maps a board length back to its geometry.
func GeometryForSize(n int) (Geometry, bool) {
    switch n {
    case 9:
        return Classic, true
    case 16:
        return Relax, true
    }
    return Classic, false
}
