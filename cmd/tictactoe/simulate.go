package main

import (
    "context"
    "fmt"
    "io"
    "os"
    "time"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
    "github.com/logrusorgru/aurora"
    "github.com/schollz/progressbar/v3"
    "github.com/urfave/cli/v3"
)

// tally counts results from the computer's side.
type tally struct {
    Wins   int
    Draws  int
    Losses int
}

func (t tally) games() int { return t.Wins + t.Draws + t.Losses }

func simulateCommand() *cli.Command {
    return &cli.Command{
        Name:  "simulate",
        Usage: "play the engine against a random opponent",
        Flags: append(settingsFlags(),
            &cli.IntFlag{Name: "games", Usage: "games per difficulty", Value: 200},
            &cli.IntFlag{Name: "seed", Usage: "random seed, 0 for the clock"},
            &cli.BoolFlag{Name: "all", Usage: "simulate every difficulty"},
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
            levels := []domain.Difficulty{diff}
            if cmd.Bool("all") {
                levels = []domain.Difficulty{domain.Soft, domain.Smart, domain.Unbeatable}
            }
            n := int(cmd.Int("games"))
            seed := uint64(cmd.Int("seed"))
            results := make(map[domain.Difficulty]tally, len(levels))
            for _, d := range levels {
                bar := newBar(n, fmt.Sprintf("%-10s", d))
                eng := engine.New(engine.WithLogger(logger), engine.WithSource(newSeededSource(seed, 1)))
                t, err := simulate(ctx, eng, newSeededSource(seed, 2), mode, d, n, func() { _ = bar.Add(1) })
                _ = bar.Finish()
                if err != nil {
                    return err
                }
                results[d] = t
            }
            printTallies(os.Stdout, aurora.NewAurora(true), mode, levels, results)
            return nil
        },
    }
}

func newBar(n int, description string) *progressbar.ProgressBar {
    return progressbar.NewOptions(n,
        progressbar.OptionSetWriter(os.Stderr),
        progressbar.OptionSetDescription(description),
        progressbar.OptionSetWidth(50),
        progressbar.OptionClearOnFinish(),
        progressbar.OptionSetTheme(progressbar.Theme{
            Saucer:        aurora.Yellow("█").String(),
            SaucerHead:    aurora.Yellow("█").String(),
            SaucerPadding: " ",
            BarStart:      "|",
            BarEnd:        "|",
        }),
    )
}

func newSeededSource(seed, stream uint64) engine.Source {
    if seed == 0 {
        return engine.NewSource(uint64(os.Getpid())<<32 ^ stream ^ uint64(time.Now().UnixNano()))
    }
    return engine.NewSource(seed*31 + stream)
}

// simulate plays n games with a uniformly random X against the engine.
func simulate(ctx context.Context, eng *engine.Engine, opponent engine.Source, mode domain.Mode, d domain.Difficulty, n int, step func()) (tally, error) {
    var t tally
    for i := 0; i < n; i++ {
        if err := ctx.Err(); err != nil {
            return t, err
        }
        g := domain.New(mode)
        for !g.Over {
            var idx int
            if g.Turn == eng.Mark() {
                var err error
                if idx, err = eng.Reply(g, d); err != nil {
                    return t, err
                }
            } else {
                empties := g.Board.EmptyCells()
                idx = empties[opponent.Intn(len(empties))]
            }
            if err := g.Play(idx); err != nil {
                return t, err
            }
        }
        switch g.Winner {
        case eng.Mark():
            t.Wins++
        case domain.Empty:
            t.Draws++
        default:
            t.Losses++
        }
        if step != nil {
            step()
        }
    }
    return t, nil
}

func printTallies(w io.Writer, au aurora.Aurora, mode domain.Mode, levels []domain.Difficulty, results map[domain.Difficulty]tally) {
    fmt.Fprintf(w, "mode %s\n", mode)
    fmt.Fprintf(w, "%-10s %6s %6s %6s\n", "level", "wins", "draws", "losses")
    for _, d := range levels {
        t := results[d]
        losses := fmt.Sprintf("%6d", t.Losses)
        if t.Losses > 0 {
            losses = au.Red(losses).String()
        }
        fmt.Fprintf(w, "%-10s %6d %6d %s\n", d, t.Wins, t.Draws, losses)
    }
}
