package notify

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "sync"
    "time"

    "github.com/rs/zerolog"
)

// ErrClosed is returned by Notify after Close.
var ErrClosed = errors.New("notifier closed")

// Webhook sends GET requests to WinURL (with ?code=) and LoseURL from a
// background worker. Draws are not reported.
type Webhook struct {
    WinURL  string
    LoseURL string

    client *http.Client
    log    zerolog.Logger
    queue  chan Result

    mu     sync.Mutex
    closed bool
    done   chan struct{}
}

type WebhookOption func(*Webhook)

func WithHTTPClient(c *http.Client) WebhookOption {
    return func(w *Webhook) {
        if c != nil {
            w.client = c
        }
    }
}

func WithLogger(l zerolog.Logger) WebhookOption {
    return func(w *Webhook) { w.log = l }
}

// WithQueueSize sets how many results may wait for delivery.
func WithQueueSize(n int) WebhookOption {
    return func(w *Webhook) {
        if n > 0 {
            w.queue = make(chan Result, n)
        }
    }
}

// NewWebhook starts the delivery worker. Call Close to stop it.
func NewWebhook(winURL, loseURL string, opts ...WebhookOption) *Webhook {
    w := &Webhook{
        WinURL:  winURL,
        LoseURL: loseURL,
        client:  &http.Client{Timeout: 5 * time.Second},
        log:     zerolog.Nop(),
        queue:   make(chan Result, 64),
        done:    make(chan struct{}),
    }
    for _, opt := range opts {
        opt(w)
    }
    go w.run()
    return w
}

// Notify queues r. When the queue is full the result is dropped and logged.
func (w *Webhook) Notify(ctx context.Context, r Result) error {
    if r.Kind == KindDraw {
        return nil
    }
    w.mu.Lock()
    defer w.mu.Unlock()
    if w.closed {
        return ErrClosed
    }
    if err := ctx.Err(); err != nil {
        return err
    }
    select {
    case w.queue <- r:
    default:
        w.log.Warn().Str("game", r.GameID).Str("kind", string(r.Kind)).Msg("notification queue full, dropping")
    }
    return nil
}

// Close stops accepting results and waits for queued ones to be sent.
func (w *Webhook) Close() {
    w.mu.Lock()
    if !w.closed {
        w.closed = true
        close(w.queue)
    }
    w.mu.Unlock()
    <-w.done
}

func (w *Webhook) run() {
    defer close(w.done)
    for r := range w.queue {
        if err := w.send(context.Background(), r); err != nil {
            w.log.Error().Err(err).Str("game", r.GameID).Str("kind", string(r.Kind)).Msg("notification failed")
            continue
        }
        w.log.Debug().Str("game", r.GameID).Str("kind", string(r.Kind)).Msg("notification sent")
    }
}

func (w *Webhook) send(ctx context.Context, r Result) error {
    target, err := w.target(r)
    if err != nil || target == "" {
        return err
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
    if err != nil {
        return fmt.Errorf("build request: %w", err)
    }
    resp, err := w.client.Do(req)
    if err != nil {
        return fmt.Errorf("send %s: %w", r.Kind, err)
    }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        return fmt.Errorf("send %s: unexpected status %d", r.Kind, resp.StatusCode)
    }
    return nil
}

func (w *Webhook) target(r Result) (string, error) {
    switch r.Kind {
    case KindWin:
        if w.WinURL == "" {
            return "", nil
        }
        u, err := url.Parse(w.WinURL)
        if err != nil {
            return "", fmt.Errorf("parse win url: %w", err)
        }
        q := u.Query()
        q.Set("code", r.PromoCode)
        u.RawQuery = q.Encode()
        return u.String(), nil
    case KindLose:
        return w.LoseURL, nil
    }
    return "", nil
}
