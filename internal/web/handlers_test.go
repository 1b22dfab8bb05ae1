package web

import (
    "context"
    "io"
    "net/http"
    "net/http/httptest"
    "net/url"
    "strings"
    "testing"

    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
)

func newTestServer(t *testing.T) (*app.Service, http.Handler) {
    t.Helper()
    s := app.NewService()
    h := NewServer(s)
    return s, h
}

func TestIndexPage(t *testing.T) {
    _, h := newTestServer(t)
    req := httptest.NewRequest("GET", "/", nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    body := rr.Body.String()
    if !strings.Contains(body, "<form") || !strings.Contains(body, "action=\"/game\"") {
        t.Fatalf("index should contain create form; got body: %q", body)
    }
}

func TestCreateRedirectsToGame(t *testing.T) {
    _, h := newTestServer(t)
    req := httptest.NewRequest("POST", "/game", nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusSeeOther && rr.Code != http.StatusFound {
        t.Fatalf("expected redirect, got %d", rr.Code)
    }
    loc := rr.Result().Header.Get("Location")
    if !strings.HasPrefix(loc, "/game/") {
        t.Fatalf("expected redirect to /game/{id}, got %q", loc)
    }
}

func TestGamePageSetsCookieAndAutoClaims(t *testing.T) {
    svc, h := newTestServer(t)
    // Create a game via service to know ID
    gs, _ := svc.CreateGame(app.Settings{})

    req := httptest.NewRequest("GET", "/game/"+url.PathEscape(gs.ID), nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    // Cookie set
    cookies := rr.Result().Cookies()
    var playerID string
    for _, c := range cookies {
        if c.Name == "player_id" {
            playerID = c.Value
            break
        }
    }
    if playerID == "" {
        t.Fatalf("expected player_id cookie to be set")
    }
    // Auto-claimed seat
    latest, ok := svc.Get(gs.ID)
    if !ok || latest.Player != playerID {
        t.Fatalf("expected auto-claim of the seat; have player=%q pid=%q", latest.Player, playerID)
    }
    // SSE wiring present
    body := rr.Body.String()
    if !strings.Contains(body, "hx-ext=\"sse\"") || !strings.Contains(body, "/game/"+gs.ID+"/events") {
        t.Fatalf("expected SSE wiring in page; got body: %q", body)
    }
}

func TestJoinEndpointReturnsBoardFragment(t *testing.T) {
    svc, h := newTestServer(t)
    gs, _ := svc.CreateGame(app.Settings{})
    // First GET to auto-claim X for p1
    req1 := httptest.NewRequest("GET", "/game/"+gs.ID, nil)
    rr1 := httptest.NewRecorder()
    h.ServeHTTP(rr1, req1)
    // Extract cookie for second player
    p2 := &http.Cookie{Name: "player_id", Value: "p2"}
    form := url.Values{}
    req := httptest.NewRequest("POST", "/game/"+gs.ID+"/join", strings.NewReader(form.Encode()))
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    req.AddCookie(p2)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    if !strings.Contains(rr.Body.String(), "id=\"board\"") {
        t.Fatalf("expected board fragment, got %q", rr.Body.String())
    }
    latest, _ := svc.Get(gs.ID)
    if latest.Player == "p2" {
        t.Fatalf("p2 should spectate, seat taken by %q", latest.Player)
    }
}

func TestPlayEndpointUpdatesStateAndReturnsFragment(t *testing.T) {
    svc, h := newTestServer(t)
    gs, _ := svc.CreateGame(app.Settings{})
    svc.Join(gs.ID, "p1")

    form := url.Values{"r": {"0"}, "c": {"0"}}
    req := httptest.NewRequest("POST", "/game/"+gs.ID+"/play", strings.NewReader(form.Encode()))
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    req.AddCookie(&http.Cookie{Name: "player_id", Value: "p1"})
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    if !strings.Contains(rr.Body.String(), "id=\"board\"") {
        t.Fatalf("expected board fragment, got %q", rr.Body.String())
    }
    latest, _ := svc.Get(gs.ID)
    if latest.Game.Moves != 2 {
        t.Fatalf("expected move and computer reply, moves=%d", latest.Game.Moves)
    }
}

func TestEventsEndpointSSEHeaders(t *testing.T) {
    _, h := newTestServer(t)
    // create a game via POST
    reqCreate := httptest.NewRequest("POST", "/game", nil)
    rrCreate := httptest.NewRecorder()
    h.ServeHTTP(rrCreate, reqCreate)
    loc := rrCreate.Result().Header.Get("Location")
    if loc == "" {
        t.Fatalf("missing redirect location")
    }
    // Request SSE
    req := httptest.NewRequest("GET", loc+"/events", nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rr.Code)
    }
    ct := rr.Result().Header.Get("Content-Type")
    if !strings.HasPrefix(ct, "text/event-stream") {
        io.Copy(io.Discard, rr.Result().Body)
        t.Fatalf("expected text/event-stream, got %q", ct)
    }
}

func TestEventsUnknownGameIsNotFound(t *testing.T) {
    s, h := newTestServer(t)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    req := httptest.NewRequest("GET", "/game/nope/events", nil).WithContext(ctx)
    req.Header.Set("Accept", "text/event-stream")
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusNotFound {
        t.Fatalf("expected 404, got %d", rr.Code)
    }
    if _, ok := s.Get("nope"); ok {
        t.Fatalf("events request registered a game")
    }
}

func TestUserMessageForRestartDuringReply(t *testing.T) {
    if got := userMessage(app.ErrStale); got == "Invalid move" || !strings.Contains(got, "restarted") {
        t.Fatalf("unexpected message %q", got)
    }
}

func TestCreateSavesPreferences(t *testing.T) {
    svc, h := newTestServer(t)
    form := url.Values{"mode": {"relax"}, "difficulty": {"smart"}}
    req := httptest.NewRequest("POST", "/game", strings.NewReader(form.Encode()))
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusSeeOther {
        t.Fatalf("expected redirect, got %d", rr.Code)
    }
    saved := map[string]string{}
    for _, c := range rr.Result().Cookies() {
        saved[c.Name] = c.Value
    }
    if saved["ttt_mode"] != "relax" || saved["ttt_difficulty"] != "smart" {
        t.Fatalf("expected preference cookies, got %v", saved)
    }
    id := strings.TrimPrefix(rr.Result().Header.Get("Location"), "/game/")
    gs, ok := svc.Get(id)
    if !ok || gs.Settings.Mode.String() != "relax" || len(gs.Game.Board) != 16 {
        t.Fatalf("expected relax game, got %+v", gs)
    }

    // Index preselects the saved preferences.
    req = httptest.NewRequest("GET", "/", nil)
    req.AddCookie(&http.Cookie{Name: "ttt_mode", Value: "daily"})
    rr = httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if !strings.Contains(rr.Body.String(), `value="daily" checked`) {
        t.Fatalf("expected daily preselected, got %q", rr.Body.String())
    }
}

func TestCreateRejectsUnknownMode(t *testing.T) {
    _, h := newTestServer(t)
    form := url.Values{"mode": {"blitz"}}
    req := httptest.NewRequest("POST", "/game", strings.NewReader(form.Encode()))
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rr.Code)
    }
}

func TestPlayEndpointReportsOccupiedCell(t *testing.T) {
    svc, h := newTestServer(t)
    gs, _ := svc.CreateGame(app.Settings{})
    svc.Join(gs.ID, "p1")

    post := func(r, c string) *httptest.ResponseRecorder {
        form := url.Values{"r": {r}, "c": {c}}
        req := httptest.NewRequest("POST", "/game/"+gs.ID+"/play", strings.NewReader(form.Encode()))
        req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
        req.AddCookie(&http.Cookie{Name: "player_id", Value: "p1"})
        rr := httptest.NewRecorder()
        h.ServeHTTP(rr, req)
        return rr
    }
    post("1", "1")
    rr := post("1", "1")
    if !strings.Contains(rr.Body.String(), "Cell is occupied") {
        t.Fatalf("expected occupied message, got %q", rr.Body.String())
    }
    rr = post("x", "1")
    if !strings.Contains(rr.Body.String(), "Out of bounds") {
        t.Fatalf("expected out of bounds message, got %q", rr.Body.String())
    }
}

func TestRestartRedirectsAndClearsBoard(t *testing.T) {
    svc, h := newTestServer(t)
    gs, _ := svc.CreateGame(app.Settings{})
    svc.Join(gs.ID, "p1")
    if _, err := svc.Play(context.Background(), gs.ID, "p1", 0, 0); err != nil {
        t.Fatalf("play: %v", err)
    }

    req := httptest.NewRequest("POST", "/game/"+gs.ID+"/restart", nil)
    req.AddCookie(&http.Cookie{Name: "player_id", Value: "p1"})
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusSeeOther {
        t.Fatalf("expected redirect, got %d", rr.Code)
    }
    latest, _ := svc.Get(gs.ID)
    if latest.Game.Moves != 0 {
        t.Fatalf("expected cleared board, moves=%d", latest.Game.Moves)
    }
}
