package main

import (
    "bufio"
    "context"
    "errors"
    "fmt"
    "io"
    "os"
    "strconv"
    "strings"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
    "github.com/logrusorgru/aurora"
    "github.com/urfave/cli/v3"
)

var errQuit = errors.New("quit")

func playCommand() *cli.Command {
    return &cli.Command{
        Name:  "play",
        Usage: "play a game in the terminal",
        Flags: append(settingsFlags(),
            &cli.BoolFlag{Name: "no-color", Usage: "disable colours"},
        ),
        Action: func(ctx context.Context, cmd *cli.Command) error {
            cfg, logger, err := loadConfig(cmd)
            if err != nil {
                return err
            }
            mode, diff, err := settingsFrom(cmd, cfg)
            if err != nil {
                return err
            }
            eng := engine.New(engine.WithLogger(logger))
            au := aurora.NewAurora(!cmd.Bool("no-color"))
            _, err = playGame(ctx, os.Stdin, os.Stdout, eng, mode, diff, au)
            if errors.Is(err, errQuit) {
                return nil
            }
            return err
        },
    }
}

// playGame runs one game reading "row col" lines from in.
func playGame(ctx context.Context, in io.Reader, out io.Writer, eng *engine.Engine, mode domain.Mode, diff domain.Difficulty, au aurora.Aurora) (domain.Game, error) {
    g := domain.New(mode)
    sc := bufio.NewScanner(in)
    fmt.Fprintf(out, "%s board, %s. Enter moves as \"row col\", q to quit.\n", mode, levelName(mode, diff))
    for !g.Over {
        if err := ctx.Err(); err != nil {
            return g, err
        }
        fmt.Fprint(out, renderBoard(g, au))
        fmt.Fprint(out, "> ")
        if !sc.Scan() {
            if err := sc.Err(); err != nil {
                return g, err
            }
            return g, errQuit
        }
        line := strings.TrimSpace(sc.Text())
        if line == "q" || line == "quit" {
            return g, errQuit
        }
        r, c, err := parseMove(line)
        if err == nil {
            err = g.PlayAt(r, c)
        }
        if err != nil {
            fmt.Fprintln(out, au.Red(err.Error()))
            continue
        }
        if g.Over {
            break
        }
        idx, err := eng.Reply(g, diff)
        if err != nil {
            return g, err
        }
        if err := g.Play(idx); err != nil {
            return g, err
        }
        row, col := g.Geometry.RowCol(idx)
        fmt.Fprintf(out, "computer plays %d %d\n", row, col)
    }
    fmt.Fprint(out, renderBoard(g, au))
    switch g.Winner {
    case domain.X:
        fmt.Fprintln(out, au.Green("You win!"))
    case domain.O:
        fmt.Fprintln(out, au.Red("Computer wins."))
    default:
        fmt.Fprintln(out, "Draw.")
    }
    return g, nil
}

func levelName(mode domain.Mode, diff domain.Difficulty) string {
    if mode == domain.ModeDaily {
        return "daily challenge"
    }
    return diff.String()
}

func parseMove(s string) (int, int, error) {
    parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
    if len(parts) != 2 {
        return 0, 0, fmt.Errorf("want \"row col\", got %q", s)
    }
    r, err := strconv.Atoi(parts[0])
    if err != nil {
        return 0, 0, fmt.Errorf("row: %w", err)
    }
    c, err := strconv.Atoi(parts[1])
    if err != nil {
        return 0, 0, fmt.Errorf("col: %w", err)
    }
    return r, c, nil
}
