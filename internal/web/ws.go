package web

import (
    "context"
    "net/http"
    "time"

    "github.com/bytedance/sonic"
    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
)

const (
    // Time allowed to write a message to the peer.
    writeWait = 10 * time.Second

    // Time allowed to read the next pong message from the peer.
    pongWait = 60 * time.Second

    // Send pings to peer with this period. Must be less than pongWait.
    pingPeriod = (pongWait * 9) / 10

    // Maximum message size allowed from peer.
    maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
}

// wsMove is the only message a client sends: a move at row R, column C.
type wsMove struct {
    Type string `json:"type"`
    R    int    `json:"r"`
    C    int    `json:"c"`
}

type wsError struct {
    Event string `json:"event"`
    Error string `json:"error"`
}

// ws streams JSON snapshots of a game and accepts moves from the seated
// player. Each service broadcast triggers a fresh snapshot.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    gs, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    pid := ensurePlayerCookie(w, r)
    conn, err := upgrader.Upgrade(w, r, w.Header())
    if err != nil {
        h.log.Warn().Err(err).Str("game", id).Msg("websocket upgrade failed")
        return
    }

    ctx, cancel := context.WithCancel(context.Background())
    updates, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        cancel()
        _ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "game not found"))
        conn.Close()
        return
    }
    out := make(chan []byte, 8)
    send := func(v any) {
        b, err := sonic.Marshal(v)
        if err != nil {
            return
        }
        select {
        case out <- b:
        default:
        }
    }
    send(newGameJSON(*gs))

    go h.wsWrite(conn, updates, out, id, cancel)
    h.wsRead(ctx, conn, id, pid, send)
    cancel()
    unsub()
}

func (h *handlers) wsRead(ctx context.Context, conn *websocket.Conn, id, pid string, send func(any)) {
    defer conn.Close()
    conn.SetReadLimit(maxMessageSize)
    _ = conn.SetReadDeadline(time.Now().Add(pongWait))
    conn.SetPongHandler(func(string) error {
        return conn.SetReadDeadline(time.Now().Add(pongWait))
    })
    for {
        _, msg, err := conn.ReadMessage()
        if err != nil {
            if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
                h.log.Debug().Err(err).Str("game", id).Msg("websocket closed")
            }
            return
        }
        var m wsMove
        if err := sonic.Unmarshal(msg, &m); err != nil || m.Type != "move" {
            send(wsError{Event: "error", Error: "expected {\"type\":\"move\",\"r\":0,\"c\":0}"})
            continue
        }
        if _, err := h.svc.Play(ctx, id, pid, m.R, m.C); err != nil {
            send(wsError{Event: "error", Error: userMessage(err)})
        }
    }
}

func (h *handlers) wsWrite(conn *websocket.Conn, updates <-chan []byte, out <-chan []byte, id string, cancel context.CancelFunc) {
    ticker := time.NewTicker(pingPeriod)
    defer func() {
        ticker.Stop()
        cancel()
        conn.Close()
    }()
    write := func(b []byte) bool {
        _ = conn.SetWriteDeadline(time.Now().Add(writeWait))
        return conn.WriteMessage(websocket.TextMessage, b) == nil
    }
    for {
        select {
        case _, ok := <-updates:
            if !ok {
                _ = conn.WriteMessage(websocket.CloseMessage, []byte{})
                return
            }
            gs, found := h.svc.Get(id)
            if !found {
                return
            }
            b, err := snapshot(*gs)
            if err != nil || !write(b) {
                return
            }
        case b := <-out:
            if !write(b) {
                return
            }
        case <-ticker.C:
            _ = conn.SetWriteDeadline(time.Now().Add(writeWait))
            if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
                return
            }
        }
    }
}

func snapshot(gs app.GameState) ([]byte, error) {
    return sonic.Marshal(newGameJSON(gs))
}
