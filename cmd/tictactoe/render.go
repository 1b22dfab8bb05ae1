package main

import (
    "strconv"
    "strings"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/logrusorgru/aurora"
)

// renderBoard draws the board with row and column numbers. Cells on the
// winning line are bold.
func renderBoard(g domain.Game, au aurora.Aurora) string {
    w := g.Geometry.Width()
    onLine := make(map[int]bool, len(g.Line))
    for _, i := range g.Line {
        onLine[i] = true
    }

    var sb strings.Builder
    sb.WriteString("   ")
    for c := 0; c < w; c++ {
        sb.WriteString(" " + strconv.Itoa(c) + "  ")
    }
    sb.WriteString("\n")
    for r := 0; r < w; r++ {
        sb.WriteString(strconv.Itoa(r) + "  ")
        for c := 0; c < w; c++ {
            i := r*w + c
            var cell aurora.Value
            switch g.Board[i] {
            case domain.X:
                cell = au.Magenta("X")
            case domain.O:
                cell = au.Yellow("O")
            default:
                cell = au.Gray(8, ".")
            }
            if onLine[i] {
                cell = au.Bold(cell)
            }
            sb.WriteString(" " + cell.String() + " ")
            if c < w-1 {
                sb.WriteString("|")
            }
        }
        sb.WriteString("\n")
    }
    return sb.String()
}
