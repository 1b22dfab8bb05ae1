package web

import (
    "bytes"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
    "github.com/rs/zerolog"
)

type Option func(*handlers)

// WithEngine sets the engine behind the JSON API. The service keeps its own.
func WithEngine(e *engine.Engine) Option {
    return func(h *handlers) {
        if e != nil {
            h.engine = e
        }
    }
}

func WithLogger(l zerolog.Logger) Option {
    return func(h *handlers) { h.log = l }
}

// NewServer wires routes and returns an http.Handler. It installs the board
// fragment as the service's broadcast renderer for SSE clients.
func NewServer(s *app.Service, opts ...Option) http.Handler {
    h := &handlers{svc: s, tpl: loadTemplates(), log: zerolog.Nop()}
    for _, opt := range opts {
        opt(h)
    }
    if h.engine == nil {
        h.engine = engine.New(engine.WithLogger(h.log))
    }
    s.SetRenderer(func(gs app.GameState) []byte {
        // SSE data lines must not contain newlines
        return bytes.ReplaceAll(h.renderBoard(gs, ""), []byte("\n"), nil)
    })

    r := chi.NewRouter()
    r.Use(middleware.Recoverer)
    r.Use(requestLogger(h.log))
    r.Get("/", h.index)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/join", h.join)
        r.Post("/play", h.play)
        r.Post("/restart", h.restart)
        r.Post("/settings", h.configure)
        r.Get("/events", h.events)
        r.Get("/ws", h.ws)
    })
    r.Route("/api", func(r chi.Router) {
        r.Post("/evaluate", h.apiEvaluate)
        r.Post("/move", h.apiMove)
        r.Post("/daily", h.apiDaily)
        r.Post("/analyze", h.apiAnalyze)
    })
    return r
}

func requestLogger(l zerolog.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            next.ServeHTTP(ww, r)
            l.Debug().
                Str("method", r.Method).
                Str("path", r.URL.Path).
                Int("status", ww.Status()).
                Dur("took", time.Since(start)).
                Msg("request")
        })
    }
}
