package web

import (
    "bytes"
    "html/template"
    "strings"
    "testing"

    "github.com/rs/zerolog"
)

func TestRenderTemplateLogsToGivenLogger(t *testing.T) {
    var buf bytes.Buffer
    tpl := template.Must(template.New("broken").Parse("{{.Missing}}"))
    renderTemplate(zerolog.New(&buf), tpl, "", struct{}{})
    if !strings.Contains(buf.String(), `"template":"broken"`) {
        t.Fatalf("expected render error on the handler logger, got %q", buf.String())
    }
}
