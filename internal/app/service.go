package app

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/jaminalder/heart-tic-tac-toe/internal/engine"
    "github.com/jaminalder/heart-tic-tac-toe/internal/notify"
    "github.com/rs/zerolog"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrNotYourTurn = errors.New("not your turn")
    ErrNotAPlayer  = errors.New("not a player")
    ErrStale       = errors.New("game changed while the computer was thinking")
)

// Settings choose the board and the computer's play. Difficulty is ignored
// in daily mode.
type Settings struct {
    Mode       domain.Mode
    Difficulty domain.Difficulty
}

// Scores are kept per session across restarts.
type Scores struct {
    Player   int
    Computer int
    Draws    int
}

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID        string
    Game      domain.Game
    Settings  Settings
    Player    string
    Scores    Scores
    PromoCode string
    Created   time.Time
    Updated   time.Time
}

func (gs *GameState) snapshot() GameState {
    cp := *gs
    cp.Game = gs.Game.Clone()
    return cp
}

// subscriberBuffer holds a human move and the computer's reply.
const subscriberBuffer = 2

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games against the computer and their subscribers.
type Service struct {
    mu     sync.Mutex
    games  map[string]*GameState
    subs   map[string]map[*subscriber]struct{}
    render func(GameState) []byte

    engine   *engine.Engine
    notifier notify.Notifier
    promo    notify.Intn
    think    time.Duration
    defaults Settings
    log      zerolog.Logger
}

type Option func(*Service)

func WithEngine(e *engine.Engine) Option {
    return func(s *Service) {
        if e != nil {
            s.engine = e
        }
    }
}

func WithNotifier(n notify.Notifier) Option {
    return func(s *Service) {
        if n != nil {
            s.notifier = n
        }
    }
}

// WithThinkDelay pauses before each computer move.
func WithThinkDelay(d time.Duration) Option {
    return func(s *Service) {
        if d > 0 {
            s.think = d
        }
    }
}

// WithDefaults sets the settings used by games created without any.
func WithDefaults(st Settings) Option {
    return func(s *Service) { s.defaults = st }
}

// WithPromoSource sets the randomness behind promo codes.
func WithPromoSource(src notify.Intn) Option {
    return func(s *Service) {
        if src != nil {
            s.promo = src
        }
    }
}

func WithLogger(l zerolog.Logger) Option {
    return func(s *Service) { s.log = l }
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService(opts ...Option) *Service {
    return NewServiceWithRenderer(func(gs GameState) []byte { return nil }, opts...)
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte, opts ...Option) *Service {
    if renderer == nil {
        renderer = func(gs GameState) []byte { return nil }
    }
    s := &Service{
        games:    make(map[string]*GameState),
        subs:     make(map[string]map[*subscriber]struct{}),
        render:   renderer,
        notifier: notify.Nop{},
        log:      zerolog.Nop(),
    }
    for _, opt := range opts {
        opt(s)
    }
    if s.engine == nil {
        s.engine = engine.New(engine.WithLogger(s.log))
    }
    if s.promo == nil {
        s.promo = engine.NewSource(uint64(time.Now().UnixNano()))
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// Defaults returns the settings for games created without explicit ones.
func (s *Service) Defaults() Settings { return s.defaults }

// CreateGame creates and registers a new game.
func (s *Service) CreateGame(st Settings) (*GameState, error) {
    if !st.Difficulty.Valid() {
        return nil, fmt.Errorf("%w: %v", domain.ErrUnknownDifficulty, st.Difficulty)
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    id := uuid.NewString()
    now := time.Now()
    gs := &GameState{ID: id, Game: domain.New(st.Mode), Settings: st, Created: now, Updated: now}
    s.games[id] = gs
    s.log.Info().Str("game", id).Stringer("mode", st.Mode).Stringer("difficulty", st.Difficulty).Msg("game created")
    cp := gs.snapshot()
    return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    cp := gs.snapshot()
    return &cp, true
}

// Join seats the first player as X; everybody else spectates and gets Empty.
func (s *Service) Join(id, playerID string) (domain.Cell, *GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return domain.Empty, nil, ErrNotFound
    }
    side := domain.Empty
    if gs.Player == "" || gs.Player == playerID {
        gs.Player = playerID
        side = domain.X
    }
    gs.Updated = time.Now()
    cp := gs.snapshot()
    return side, &cp, nil
}

// Play applies the human move at row r, column c and, if the game goes on,
// the computer's reply. Both moves are broadcast.
func (s *Service) Play(ctx context.Context, id, playerID string, r, c int) (*GameState, error) {
    st, err := s.update(id, func(gs *GameState) error {
        if gs.Player != playerID {
            return ErrNotAPlayer
        }
        if gs.Game.Over {
            return domain.ErrGameOver
        }
        if gs.Game.Turn != domain.X {
            return ErrNotYourTurn
        }
        return gs.Game.PlayAt(r, c)
    })
    if err != nil {
        return nil, err
    }
    if st.Game.Over {
        return st, nil
    }

    if s.think > 0 {
        t := time.NewTimer(s.think)
        select {
        case <-t.C:
        case <-ctx.Done():
            // the reply is still owed; skip only the pause
            t.Stop()
        }
    }

    moves := st.Game.Moves
    return s.update(id, func(gs *GameState) error {
        if gs.Game.Moves != moves {
            return ErrStale
        }
        idx, err := s.engine.Reply(gs.Game, gs.Settings.Difficulty)
        if err != nil {
            return err
        }
        return gs.Game.Play(idx)
    })
}

// Restart clears the board and keeps settings, seat and scores.
func (s *Service) Restart(id, playerID string) (*GameState, error) {
    return s.update(id, func(gs *GameState) error {
        if gs.Player != playerID {
            return ErrNotAPlayer
        }
        gs.Game = domain.New(gs.Settings.Mode)
        gs.PromoCode = ""
        return nil
    })
}

// Configure changes mode and difficulty and restarts the game.
func (s *Service) Configure(id, playerID string, st Settings) (*GameState, error) {
    if !st.Difficulty.Valid() {
        return nil, fmt.Errorf("%w: %v", domain.ErrUnknownDifficulty, st.Difficulty)
    }
    return s.update(id, func(gs *GameState) error {
        if gs.Player != playerID {
            return ErrNotAPlayer
        }
        gs.Settings = st
        gs.Game = domain.New(st.Mode)
        gs.PromoCode = ""
        return nil
    })
}

// update runs fn under the lock, records finished games, then broadcasts
// and notifies outside the lock.
func (s *Service) update(id string, fn func(gs *GameState) error) (*GameState, error) {
    var toDrop []*subscriber

    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    wasOver := gs.Game.Over
    if err := fn(gs); err != nil {
        s.mu.Unlock()
        return nil, err
    }
    gs.Updated = time.Now()
    var result *notify.Result
    if gs.Game.Over && !wasOver {
        result = s.finishLocked(gs)
    }

    // Snapshot state and subscribers
    cp := gs.snapshot()
    subs := s.copySubsLocked(id)
    payload := s.render(cp)
    s.mu.Unlock()

    // Fan-out; drop slow subscribers by closing and marking for deletion
    for sub := range subs {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            toDrop = append(toDrop, sub)
        }
    }
    if len(toDrop) > 0 {
        s.mu.Lock()
        for _, sub := range toDrop {
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
        }
        s.mu.Unlock()
    }

    if result != nil {
        if err := s.notifier.Notify(context.Background(), *result); err != nil {
            s.log.Warn().Err(err).Str("game", id).Msg("notify")
        }
    }
    return &cp, nil
}

func (s *Service) finishLocked(gs *GameState) *notify.Result {
    r := notify.Result{GameID: gs.ID, Mode: gs.Settings.Mode}
    switch gs.Game.Winner {
    case domain.X:
        gs.Scores.Player++
        gs.PromoCode = notify.PromoCode(s.promo)
        r.Kind, r.PromoCode = notify.KindWin, gs.PromoCode
    case domain.O:
        gs.Scores.Computer++
        r.Kind = notify.KindLose
    default:
        gs.Scores.Draws++
        r.Kind = notify.KindDraw
    }
    s.log.Info().
        Str("game", gs.ID).
        Str("result", string(r.Kind)).
        Int("moves", gs.Game.Moves).
        Msg("game finished")
    return &r
}

// Subscribe registers a subscriber for an existing game. Returns a channel
// and an unsubscribe func, or ErrNotFound for an unknown id.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.games[id]; !ok {
        return nil, nil, ErrNotFound
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, subscriberBuffer)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            s.mu.Unlock()
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub, nil
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
    out := make(map[*subscriber]struct{})
    if set, ok := s.subs[id]; ok {
        for k := range set {
            out[k] = struct{}{}
        }
    }
    return out
}
