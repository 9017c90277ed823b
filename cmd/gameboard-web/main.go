package main

import (
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "github.com/manufosela/game-board/internal/adapters/http"
	"github.com/manufosela/game-board/internal/ctxlog"
	"github.com/manufosela/game-board/internal/generator"
	"github.com/manufosela/game-board/internal/hint"
	"github.com/manufosela/game-board/internal/infrastructure/storage"
	"github.com/manufosela/game-board/internal/placement"
	"github.com/manufosela/game-board/internal/raster"
	"github.com/manufosela/game-board/internal/usecase"
	"github.com/manufosela/game-board/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger hands the logger to handlers through the request context and
// logs method, path, status, bytes and duration once the request is served.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		reqLogger := logger.With("path", r.URL.Path)
		next.ServeHTTP(sw, r.WithContext(ctxlog.WithLogger(r.Context(), reqLogger)))
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	boardsDir := flag.String("boards", "./boards", "directory of .html and .hcl board files")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	formatStr := flag.String("log-format", "text", "text|json")
	sanitize := flag.Bool("sanitize", false, "sanitize posted markup before rendering")
	flag.Parse()

	switch strings.ToLower(*formatStr) {
	case "text", "json":
	default:
		fmt.Fprintln(os.Stderr, "invalid -log-format: must be 'text' or 'json'")
		os.Exit(2)
	}
	logger := ctxlog.New(os.Stdout, *levelStr, *formatStr)
	slog.SetDefault(logger)

	// Wire providers → use cases → HTTP adapter
	uc := usecase.NewService(
		placement.New(),
		hint.NewExplainer(),
		generator.NewRandom(),
		raster.New(),
		storage.NewFS(*boardsDir),
	)
	h := httpadapter.New(uc)
	h.Pages = web.Templates()
	if *sanitize {
		h.Sanitizer = httpadapter.NewSanitizer()
	}

	tmpl := h.Pages

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		boards, err := uc.List(r.Context())
		if err != nil {
			ctxlog.FromContext(r.Context()).Error("list boards", "err", err)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{"Boards": boards}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "boards", *boardsDir, "sanitize", *sanitize)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
