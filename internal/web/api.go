package web

import (
    "errors"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"

    "github.com/bytedance/sonic"
    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
)

const maxBodySize = 1 << 16

var errBadRequest = errors.New("bad request")

// engineRequest is the body shared by the engine endpoints. Geometry may be
// omitted and is then inferred from the board length.
type engineRequest struct {
    Board      []string `json:"board"`
    Geometry   string   `json:"geometry,omitempty"`
    Mark       string   `json:"mark,omitempty"`
    Difficulty string   `json:"difficulty,omitempty"`
    Moves      int      `json:"moves,omitempty"`
    Date       string   `json:"date,omitempty"`
}

type outcomeResponse struct {
    Status string `json:"status"`
    Winner string `json:"winner,omitempty"`
    Line   []int  `json:"line,omitempty"`
}

type moveResponse struct {
    Cell int `json:"cell"`
    Row  int `json:"row"`
    Col  int `json:"col"`
    Seed int `json:"seed,omitempty"`
}

type analyzeResponse struct {
    Best   int                `json:"best"`
    Scores []engine.CellScore `json:"scores"`
}

type errorResponse struct {
    Error string `json:"error"`
}

// gameJSON is the snapshot pushed over the websocket.
type gameJSON struct {
    Event      string     `json:"event"`
    ID         string     `json:"id"`
    Mode       string     `json:"mode"`
    Difficulty string     `json:"difficulty"`
    Board      []string   `json:"board"`
    Turn       string     `json:"turn"`
    Status     string     `json:"status"`
    Winner     string     `json:"winner,omitempty"`
    Line       []int      `json:"line,omitempty"`
    Moves      int        `json:"moves"`
    Scores     app.Scores `json:"scores"`
    PromoCode  string     `json:"promo_code,omitempty"`
}

func newGameJSON(gs app.GameState) gameJSON {
    out := gs.Game.Outcome()
    return gameJSON{
        Event:      "state",
        ID:         gs.ID,
        Mode:       gs.Settings.Mode.String(),
        Difficulty: gs.Settings.Difficulty.String(),
        Board:      encodeBoard(gs.Game.Board),
        Turn:       gs.Game.Turn.String(),
        Status:     out.Status.String(),
        Winner:     out.Winner.String(),
        Line:       out.Line,
        Moves:      gs.Game.Moves,
        Scores:     gs.Scores,
        PromoCode:  gs.PromoCode,
    }
}

func encodeBoard(b domain.Board) []string {
    out := make([]string, len(b))
    for i, c := range b {
        out[i] = c.String()
    }
    return out
}

func parseCell(s string) (domain.Cell, error) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case "X":
        return domain.X, nil
    case "O":
        return domain.O, nil
    case "", ".", "-", "_":
        return domain.Empty, nil
    }
    return domain.Empty, fmt.Errorf("%w: cell %q", errBadRequest, s)
}

func (req engineRequest) board() (domain.Board, domain.Geometry, error) {
    b := make(domain.Board, len(req.Board))
    for i, s := range req.Board {
        c, err := parseCell(s)
        if err != nil {
            return nil, 0, err
        }
        b[i] = c
    }
    if req.Geometry != "" {
        g, err := domain.ParseGeometry(req.Geometry)
        if err != nil {
            return nil, 0, fmt.Errorf("%w: %v", errBadRequest, err)
        }
        return b, g, nil
    }
    g, ok := domain.GeometryForSize(len(b))
    if !ok {
        return nil, 0, fmt.Errorf("%w: %d cells for %s", domain.ErrGeometryMismatch, len(b), domain.Classic)
    }
    return b, g, nil
}

func decode(r *http.Request, v any) error {
    body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
    if err != nil {
        return fmt.Errorf("%w: %v", errBadRequest, err)
    }
    if err := sonic.Unmarshal(body, v); err != nil {
        return fmt.Errorf("%w: %v", errBadRequest, err)
    }
    return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    body, err := sonic.Marshal(v)
    if err != nil {
        http.Error(w, "encode failed", http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _, _ = w.Write(body)
}

func (h *handlers) writeAPIError(w http.ResponseWriter, err error) {
    status := http.StatusInternalServerError
    switch {
    case errors.Is(err, errBadRequest),
        errors.Is(err, domain.ErrUnknownGeometry),
        errors.Is(err, domain.ErrUnknownDifficulty):
        status = http.StatusBadRequest
    case errors.Is(err, engine.ErrBoardFull),
        errors.Is(err, domain.ErrGeometryMismatch):
        status = http.StatusUnprocessableEntity
    }
    if status == http.StatusInternalServerError {
        h.log.Error().Err(err).Msg("engine api")
    }
    writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *handlers) apiEvaluate(w http.ResponseWriter, r *http.Request) {
    var req engineRequest
    if err := decode(r, &req); err != nil {
        h.writeAPIError(w, err)
        return
    }
    b, g, err := req.board()
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    mark, err := parseCell(req.Mark)
    if err == nil && mark == domain.Empty {
        err = fmt.Errorf("%w: mark is required", errBadRequest)
    }
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    out, err := h.engine.Evaluate(b, mark, g)
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, outcomeResponse{Status: out.Status.String(), Winner: out.Winner.String(), Line: out.Line})
}

func (h *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
    var req engineRequest
    if err := decode(r, &req); err != nil {
        h.writeAPIError(w, err)
        return
    }
    b, g, err := req.board()
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    d := domain.Unbeatable
    if req.Difficulty != "" {
        if d, err = domain.ParseDifficulty(req.Difficulty); err != nil {
            h.writeAPIError(w, err)
            return
        }
    }
    idx, err := h.engine.SelectMove(b, g, d)
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    row, col := g.RowCol(idx)
    writeJSON(w, http.StatusOK, moveResponse{Cell: idx, Row: row, Col: col})
}

func (h *handlers) apiDaily(w http.ResponseWriter, r *http.Request) {
    var req engineRequest
    if err := decode(r, &req); err != nil {
        h.writeAPIError(w, err)
        return
    }
    b, g, err := req.board()
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    day := h.engine.Now()
    if req.Date != "" {
        if day, err = time.Parse(time.DateOnly, req.Date); err != nil {
            h.writeAPIError(w, fmt.Errorf("%w: date: %v", errBadRequest, err))
            return
        }
    }
    idx, err := engine.DailyMoveAt(b, g, day, req.Moves)
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    row, col := g.RowCol(idx)
    writeJSON(w, http.StatusOK, moveResponse{Cell: idx, Row: row, Col: col, Seed: engine.DailySeed(day)})
}

func (h *handlers) apiAnalyze(w http.ResponseWriter, r *http.Request) {
    var req engineRequest
    if err := decode(r, &req); err != nil {
        h.writeAPIError(w, err)
        return
    }
    b, _, err := req.board()
    if err != nil {
        h.writeAPIError(w, err)
        return
    }
    mark := h.engine.Mark()
    if req.Mark != "" {
        if mark, err = parseCell(req.Mark); err != nil {
            h.writeAPIError(w, err)
            return
        }
    }
    scores, err := engine.Score(b, mark)
    if err != nil {
        if errors.Is(err, engine.ErrInvalidMark) {
            err = fmt.Errorf("%w: %v", errBadRequest, err)
        }
        h.writeAPIError(w, err)
        return
    }
    best, _ := engine.BestMove(b, mark)
    writeJSON(w, http.StatusOK, analyzeResponse{Best: best, Scores: scores})
}
