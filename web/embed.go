package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var Assets embed.FS

// StaticFS returns a file system for serving /static assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		// In practice this should not fail; fall back to empty FS.
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

var funcs = template.FuncMap{
	// grid renders a board size as "8×10".
	"grid": func(columns, rows int) string { return fmt.Sprintf("%d×%d", columns, rows) },
}

// Templates parses the embedded pages: index.tmpl and board.tmpl.
func Templates() *template.Template {
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(Assets, "templates/*.tmpl"))
}
