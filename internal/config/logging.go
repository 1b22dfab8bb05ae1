package config

import (
    "io"
    "os"
    "time"

    "github.com/rs/zerolog"
)

// Logger builds the process logger: JSON lines when LogJSON is set,
// a console writer otherwise.
func (c Config) Logger(w io.Writer) zerolog.Logger {
    if w == nil {
        w = os.Stderr
    }
    level, err := zerolog.ParseLevel(c.LogLevel)
    if err != nil || level == zerolog.NoLevel {
        level = zerolog.InfoLevel
    }
    if !c.LogJSON {
        w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
    }
    return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
