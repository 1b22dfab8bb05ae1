package web

import (
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
    "github.com/rs/zerolog"
)

type handlers struct {
    svc    *app.Service
    engine *engine.Engine
    tpl    *templates
    log    zerolog.Logger
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
    return renderTemplate(h.log, h.tpl.board, "", newBoardData(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    st := preferences(r, h.svc.Defaults())
    data := struct {
        Modes        []string
        Difficulties []string
        Mode         string
        Difficulty   string
    }{
        Modes:        []string{domain.ModeClassic.String(), domain.ModeRelax.String(), domain.ModeDaily.String()},
        Difficulties: []string{domain.Soft.String(), domain.Smart.String(), domain.Unbeatable.String()},
        Mode:         st.Mode.String(),
        Difficulty:   st.Difficulty.String(),
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.log, h.tpl.index, "", data))
}

// settingsFromForm reads mode and difficulty, falling back to the saved
// preferences for anything missing.
func (h *handlers) settingsFromForm(r *http.Request) (app.Settings, error) {
    st := preferences(r, h.svc.Defaults())
    _ = r.ParseForm()
    if v := r.Form.Get("mode"); v != "" {
        m, err := domain.ParseMode(v)
        if err != nil {
            return st, err
        }
        st.Mode = m
    }
    if v := r.Form.Get("difficulty"); v != "" {
        d, err := domain.ParseDifficulty(v)
        if err != nil {
            return st, err
        }
        st.Difficulty = d
    }
    return st, nil
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    st, err := h.settingsFromForm(r)
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    gs, err := h.svc.CreateGame(st)
    if err != nil {
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    savePreferences(w, st)
    http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    // ensure cookie and auto-claim seat
    pid := ensurePlayerCookie(w, r)
    _, _, _ = h.svc.Join(id, pid)

    gs, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.log, h.tpl.game, "", newBoardData(*gs, "")))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    _, gs, err := h.svc.Join(id, pid)
    if err != nil || gs == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderBoard(*gs, ""))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    _ = r.ParseForm()
    ri, errR := strconv.Atoi(r.Form.Get("r"))
    ci, errC := strconv.Atoi(r.Form.Get("c"))
    var (
        gs  *app.GameState
        err error
    )
    if errR != nil || errC != nil {
        err = domain.ErrOutOfBounds
    } else {
        gs, err = h.svc.Play(r.Context(), id, pid, ri, ci)
    }
    h.writeBoard(w, r, id, gs, err)
}

func (h *handlers) restart(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    gs, err := h.svc.Restart(id, pid)
    if err == nil && r.Header.Get("HX-Request") == "" {
        http.Redirect(w, r, "/game/"+id, http.StatusSeeOther)
        return
    }
    h.writeBoard(w, r, id, gs, err)
}

func (h *handlers) configure(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    st, err := h.settingsFromForm(r)
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    gs, err := h.svc.Configure(id, pid, st)
    if err == nil {
        savePreferences(w, st)
    }
    h.writeBoard(w, r, id, gs, err)
}

// writeBoard renders the board fragment, with a message for a rejected move.
func (h *handlers) writeBoard(w http.ResponseWriter, r *http.Request, id string, gs *app.GameState, err error) {
    var errMsg string
    if err != nil {
        if gs == nil {
            if g, ok := h.svc.Get(id); ok { gs = g }
        }
        errMsg = userMessage(err)
        h.log.Debug().Err(err).Str("game", id).Msg("move rejected")
    }
    if gs == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderBoard(*gs, errMsg))
}

func userMessage(err error) string {
    switch {
    case errors.Is(err, app.ErrNotYourTurn):
        return "Not your turn"
    case errors.Is(err, app.ErrNotAPlayer):
        return "You are a spectator"
    case errors.Is(err, domain.ErrOccupied):
        return "Cell is occupied"
    case errors.Is(err, domain.ErrOutOfBounds):
        return "Out of bounds"
    case errors.Is(err, domain.ErrGameOver):
        return "Game is over"
    case errors.Is(err, app.ErrStale):
        return "Game was restarted before the computer replied"
    default:
        return "Invalid move"
    }
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        http.NotFound(w, r)
        return
    }
    defer unsub()
    // heartbeat ticker
    ticker := time.NewTicker(heartbeatInterval)
    defer ticker.Stop()
    // Initial flush of headers
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok { return }
            // Emit board event
            _, _ = fmt.Fprintf(w, "event: board\n")
            _, _ = fmt.Fprintf(w, "data: %s\n\n", b)
            flusher.Flush()
        }
    }
}
