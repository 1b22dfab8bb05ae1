package web

import (
    "bytes"
    "html/template"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/jaminalder/heart-tic-tac-toe/internal/app"
    "github.com/jaminalder/heart-tic-tac-toe/internal/domain"
    "github.com/rs/zerolog"
)

type templates struct {
    base  *template.Template
    game  *template.Template
    board *template.Template
    index *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "iter": func(n int) []int { a := make([]int, n); for i := range a { a[i] = i }; return a },
        "cellSymbol": func(c domain.Cell) string {
            switch c { case domain.X: return "❤️"; case domain.O: return "⭐️"; default: return "" }
        },
        "eq":  func(a, b any) bool { return a == b },
        "add": func(a, b int) int { return a + b },
        "mul": func(a, b int) int { return a * b },
        "inLine": func(line []int, i int) bool {
            for _, v := range line {
                if v == i {
                    return true
                }
            }
            return false
        },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic Tac Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    // Define the board template within the same set so game can include it
    template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board" hx-sse="swap:board">{{template "board" .}}</div>
</div>
<form action="/game/{{.ID}}/restart" method="post"><button>Play again</button></form>
<a href="/">New game</a>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(l zerolog.Logger, t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    var err error
    if name == "" {
        err = t.Execute(&buf, data)
    } else {
        err = t.ExecuteTemplate(&buf, name, data)
    }
    if err != nil {
        l.Error().Err(err).Str("template", t.Name()).Msg("render")
    }
    return buf.Bytes()
}

const indexTemplate = `<h1>Tic Tac Toe</h1>
<form action="/game" method="post">
  <fieldset><legend>Mode</legend>
  {{range .Modes}}<label><input type="radio" name="mode" value="{{.}}"{{if eq . $.Mode}} checked{{end}}> {{.}}</label>{{end}}
  </fieldset>
  <fieldset><legend>Level</legend>
  {{range .Difficulties}}<label><input type="radio" name="difficulty" value="{{.}}"{{if eq . $.Difficulty}} checked{{end}}> {{.}}</label>{{end}}
  </fieldset>
  <button>Start</button>
</form>`

const boardTemplate = `
<div id="board" data-mode="{{.Mode}}">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="score">You {{.Scores.Player}} : {{.Scores.Computer}} Computer ({{.Scores.Draws}} draws)</div>
  {{if .Status}}<div class="status">{{.Status}}</div>{{end}}
  {{if .PromoCode}}<div class="promo">Promo code: {{.PromoCode}}</div>{{end}}
  {{range $r := iter .Width}}
  <div class="row">
    {{range $c := iter $.Width}}
      {{$i := add (mul $r $.Width) $c}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="r" value="{{$r}}">
        <input type="hidden" name="c" value="{{$c}}">
        <button type="submit"{{if inLine $.Line $i}} class="line"{{end}}>{{cellSymbol (index $.Board $i)}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
</div>
`

// boardData is what the board fragment renders.
type boardData struct {
    ID        string
    Mode      string
    Width     int
    Board     domain.Board
    Line      []int
    Scores    app.Scores
    Status    string
    PromoCode string
    Error     string
}

func newBoardData(gs app.GameState, errMsg string) boardData {
    d := boardData{
        ID:        gs.ID,
        Mode:      gs.Settings.Mode.String(),
        Width:     gs.Game.Geometry.Width(),
        Board:     gs.Game.Board,
        Line:      gs.Game.Line,
        Scores:    gs.Scores,
        PromoCode: gs.PromoCode,
        Error:     errMsg,
    }
    switch gs.Game.Outcome().Status {
    case domain.Win:
        if gs.Game.Winner == domain.X {
            d.Status = "You win!"
        } else {
            d.Status = "Computer wins"
        }
    case domain.Draw:
        d.Status = "Draw"
    }
    return d
}

// Cookies holding the player id and the remembered preferences.
const (
    playerCookie     = "player_id"
    modeCookie       = "ttt_mode"
    difficultyCookie = "ttt_difficulty"
)

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
    if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
        return c.Value
    }
    // Generate UUIDv4 for player ID
    v := uuid.NewString()
    http.SetCookie(w, &http.Cookie{Name: playerCookie, Value: v, Path: "/"})
    return v
}

// preferences returns the saved settings, falling back to def.
func preferences(r *http.Request, def app.Settings) app.Settings {
    st := def
    if c, err := r.Cookie(modeCookie); err == nil {
        if m, err := domain.ParseMode(c.Value); err == nil {
            st.Mode = m
        }
    }
    if c, err := r.Cookie(difficultyCookie); err == nil {
        if d, err := domain.ParseDifficulty(c.Value); err == nil {
            st.Difficulty = d
        }
    }
    return st
}

func savePreferences(w http.ResponseWriter, st app.Settings) {
    exp := time.Now().AddDate(1, 0, 0)
    http.SetCookie(w, &http.Cookie{Name: modeCookie, Value: st.Mode.String(), Path: "/", Expires: exp})
    http.SetCookie(w, &http.Cookie{Name: difficultyCookie, Value: st.Difficulty.String(), Path: "/", Expires: exp})
}
