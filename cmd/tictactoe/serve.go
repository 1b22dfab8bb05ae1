package main

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
    "github.com/jaminalder/heart-tic-tac-toe/internal/config"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
    "github.com/jaminalder/heart-tic-tac-toe/internal/notify"
    "github.com/jaminalder/heart-tic-tac-toe/internal/web"
    "github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
    return &cli.Command{
        Name:  "serve",
        Usage: "run the web server",
        Flags: append(settingsFlags(),
            &cli.StringFlag{Name: "addr", Usage: "listen address", Sources: cli.EnvVars(config.EnvAddr)},
            &cli.DurationFlag{Name: "think-delay", Usage: "pause before computer moves", Sources: cli.EnvVars(config.EnvThinkDelay)},
            &cli.StringFlag{Name: "win-url", Usage: "GET on player wins, with ?code=", Sources: cli.EnvVars(config.EnvWinURL)},
            &cli.StringFlag{Name: "lose-url", Usage: "GET on computer wins", Sources: cli.EnvVars(config.EnvLoseURL)},
        ),
        Action: runServe,
    }
}

func runServe(ctx context.Context, cmd *cli.Command) error {
    cfg, logger, err := loadConfig(cmd)
    if err != nil {
        return err
    }
    if v := cmd.String("addr"); v != "" {
        cfg.Addr = v
    }
    if cmd.IsSet("think-delay") {
        cfg.ThinkDelay = cmd.Duration("think-delay")
    }
    if v := cmd.String("win-url"); v != "" {
        cfg.WinURL = v
    }
    if v := cmd.String("lose-url"); v != "" {
        cfg.LoseURL = v
    }
    mode, diff, err := settingsFrom(cmd, cfg)
    if err != nil {
        return err
    }
    cfg.DefaultMode, cfg.DefaultDifficulty = mode, diff
    if err := cfg.Validate(); err != nil {
        return err
    }

    var notifier notify.Notifier = notify.Nop{}
    if cfg.WinURL != "" || cfg.LoseURL != "" {
        wh := notify.NewWebhook(cfg.WinURL, cfg.LoseURL, notify.WithLogger(logger.With().Str("component", "notify").Logger()))
        defer wh.Close()
        notifier = wh
    }

    eng := engine.New(engine.WithLogger(logger.With().Str("component", "engine").Logger()))
    svc := app.NewService(
        app.WithEngine(eng),
        app.WithNotifier(notifier),
        app.WithThinkDelay(cfg.ThinkDelay),
        app.WithDefaults(app.Settings{Mode: cfg.DefaultMode, Difficulty: cfg.DefaultDifficulty}),
        app.WithLogger(logger.With().Str("component", "app").Logger()),
    )
    srv := &http.Server{
        Addr:              cfg.Addr,
        Handler:           web.NewServer(svc, web.WithEngine(eng), web.WithLogger(logger)),
        ReadHeaderTimeout: 5 * time.Second,
    }

    errc := make(chan error, 1)
    go func() {
        logger.Info().Str("addr", cfg.Addr).Msg("listening")
        errc <- srv.ListenAndServe()
    }()
    select {
    case err := <-errc:
        if !errors.Is(err, http.ErrServerClosed) {
            return err
        }
        return nil
    case <-ctx.Done():
    }
    logger.Info().Msg("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    return srv.Shutdown(shutdownCtx)
}
