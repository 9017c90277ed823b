package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestTemplatesExecute(t *testing.T) {
	tmpl := Templates()
	var buf bytes.Buffer
	data := map[string]any{"Boards": []map[string]any{{"ID": "demo", "Name": "", "Format": "html", "Columns": 8, "Rows": 10}}}
	if err := tmpl.ExecuteTemplate(&buf, "index.tmpl", data); err != nil {
		t.Fatalf("index.tmpl: %v", err)
	}
	if !strings.Contains(buf.String(), "8×10") || !strings.Contains(buf.String(), `href="/boards/demo"`) {
		t.Fatalf("index missing board entry:\n%s", buf.String())
	}
}

func TestStaticFS(t *testing.T) {
	f, err := StaticFS().Open("app.css")
	if err != nil {
		t.Fatalf("open app.css: %v", err)
	}
	f.Close()
}
