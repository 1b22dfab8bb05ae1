// Command tictactoe serves the game over HTTP, plays it in the terminal, or
// simulates engine games to compare difficulty levels.
package main

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"

    "github.com/jaminalder/heart-tic-tac-toe/internal/config"
    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    "github.com/urfave/cli/v3"
)

const appName = "tictactoe"

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    if err := newApp().Run(ctx, os.Args); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

func newApp() *cli.Command {
    return &cli.Command{
        Name:  appName,
        Usage: "tic-tac-toe against a computer opponent",
        Flags: []cli.Flag{
            &cli.StringFlag{Name: "env-file", Usage: "optional .env file", Value: ".env"},
            &cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error", Sources: cli.EnvVars(config.EnvLogLevel)},
            &cli.BoolFlag{Name: "log-json", Usage: "log JSON lines instead of console output", Sources: cli.EnvVars(config.EnvLogJSON)},
        },
        Commands: []*cli.Command{
            serveCommand(),
            playCommand(),
            simulateCommand(),
        },
    }
}

// loadConfig merges the environment with the global flags and sets the
// process logger.
func loadConfig(cmd *cli.Command) (config.Config, zerolog.Logger, error) {
    cfg, err := config.FromEnv(cmd.String("env-file"))
    if err != nil {
        return config.Config{}, zerolog.Nop(), err
    }
    if v := cmd.String("log-level"); v != "" {
        cfg.LogLevel = v
    }
    if cmd.IsSet("log-json") {
        cfg.LogJSON = cmd.Bool("log-json")
    }
    if err := cfg.Validate(); err != nil {
        return config.Config{}, zerolog.Nop(), err
    }
    logger := cfg.Logger(os.Stderr)
    log.Logger = logger
    return cfg, logger, nil
}

// settingsFlags are shared by play and simulate.
func settingsFlags() []cli.Flag {
    return []cli.Flag{
        &cli.StringFlag{Name: "mode", Usage: "classic, relax or daily", Sources: cli.EnvVars(config.EnvMode)},
        &cli.StringFlag{Name: "difficulty", Usage: "soft, smart or unbeatable", Sources: cli.EnvVars(config.EnvDifficulty)},
    }
}

func settingsFrom(cmd *cli.Command, cfg config.Config) (domain.Mode, domain.Difficulty, error) {
    mode, diff := cfg.DefaultMode, cfg.DefaultDifficulty
    var err error
    if v := cmd.String("mode"); v != "" {
        if mode, err = domain.ParseMode(v); err != nil {
            return mode, diff, err
        }
    }
    if v := cmd.String("difficulty"); v != "" {
        if diff, err = domain.ParseDifficulty(v); err != nil {
            return mode, diff, err
        }
    }
    return mode, diff, nil
}
