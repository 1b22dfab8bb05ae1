// Package config loads server and engine settings from defaults, an optional
// .env file and TTT_* environment variables.
package config

import (
    "errors"
    "fmt"
    "os"
    "strconv"
    "time"

    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
)

// Environment variables read by FromEnv.
const (
    EnvAddr       = "TTT_ADDR"
    EnvMode       = "TTT_MODE"
    EnvDifficulty = "TTT_DIFFICULTY"
    EnvThinkDelay = "TTT_THINK_DELAY"
    EnvWinURL     = "TTT_WIN_URL"
    EnvLoseURL    = "TTT_LOSE_URL"
    EnvLogLevel   = "TTT_LOG_LEVEL"
    EnvLogJSON    = "TTT_LOG_JSON"
)

type Config struct {
    Addr              string
    DefaultMode       domain.Mode
    DefaultDifficulty domain.Difficulty
    // ThinkDelay pauses before the computer replies. Presentation only.
    ThinkDelay time.Duration
    WinURL     string
    LoseURL    string
    LogLevel   string
    LogJSON    bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
    return Config{
        Addr:              ":8080",
        DefaultMode:       domain.ModeClassic,
        DefaultDifficulty: domain.Soft,
        LogLevel:          "info",
    }
}

// FromEnv loads .env files (missing files are ignored) and applies TTT_*
// variables on top of Default.
func FromEnv(files ...string) (Config, error) {
    if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
        return Config{}, fmt.Errorf("load env file: %w", err)
    }
    return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
    c := Default()
    var err error
    if v, ok := lookup(EnvAddr); ok && v != "" {
        c.Addr = v
    }
    if v, ok := lookup(EnvMode); ok && v != "" {
        if c.DefaultMode, err = domain.ParseMode(v); err != nil {
            return Config{}, fmt.Errorf("%s: %w", EnvMode, err)
        }
    }
    if v, ok := lookup(EnvDifficulty); ok && v != "" {
        if c.DefaultDifficulty, err = domain.ParseDifficulty(v); err != nil {
            return Config{}, fmt.Errorf("%s: %w", EnvDifficulty, err)
        }
    }
    if v, ok := lookup(EnvThinkDelay); ok && v != "" {
        if c.ThinkDelay, err = time.ParseDuration(v); err != nil {
            return Config{}, fmt.Errorf("%s: %w", EnvThinkDelay, err)
        }
    }
    if v, ok := lookup(EnvWinURL); ok {
        c.WinURL = v
    }
    if v, ok := lookup(EnvLoseURL); ok {
        c.LoseURL = v
    }
    if v, ok := lookup(EnvLogLevel); ok && v != "" {
        c.LogLevel = v
    }
    if v, ok := lookup(EnvLogJSON); ok && v != "" {
        if c.LogJSON, err = strconv.ParseBool(v); err != nil {
            return Config{}, fmt.Errorf("%s: %w", EnvLogJSON, err)
        }
    }
    return c, c.Validate()
}

// Validate checks ranges that parsing alone cannot catch.
func (c Config) Validate() error {
    if c.Addr == "" {
        return errors.New("addr must not be empty")
    }
    if c.ThinkDelay < 0 || c.ThinkDelay > 5*time.Second {
        return fmt.Errorf("think delay %s out of range [0, 5s]", c.ThinkDelay)
    }
    if !c.DefaultDifficulty.Valid() {
        return fmt.Errorf("%w: %v", domain.ErrUnknownDifficulty, c.DefaultDifficulty)
    }
    if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
        return fmt.Errorf("log level: %w", err)
    }
    return nil
}
