// Command boardlint checks board files and reports every child that would be
// left off the rendered grid.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/manufosela/game-board/internal/ctxlog"
	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/hint"
	"github.com/manufosela/game-board/internal/infrastructure/storage"
	"github.com/manufosela/game-board/internal/placement"
	"github.com/manufosela/game-board/internal/termview"
	"github.com/manufosela/game-board/internal/usecase"
)

// ExitError carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// errRejected signals a clean run that found rejected children.
var errRejected = &ExitError{Code: 1, Message: "some children were rejected"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	rejectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr != errRejected {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(outW, errW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("boardlint", flag.ContinueOnError)
	flagSet.SetOutput(errW)
	flagSet.Usage = func() {
		fmt.Fprint(errW, `boardlint - check game-board files for misplaced children.

Usage:
  boardlint [options] PATH...

PATH is a .html/.htm/.hcl file or a directory holding them.

Options:
`)
		flagSet.PrintDefaults()
	}
	preview := flagSet.Bool("preview", true, "draw each board in the terminal")
	logLevel := flagSet.String("log-level", "error", "debug|info|warn|error")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return &ExitError{Code: 2, Message: "no paths given"}
	}

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(errW, *logLevel, "text"))
	svc := usecase.NewService(placement.New(), hint.NewExplainer(), nil, nil, nil)

	files, err := collect(flagSet.Args())
	if err != nil {
		return err
	}
	rejected := 0
	for _, path := range files {
		boards, err := storage.LoadFile(path)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		for _, b := range boards {
			n, err := lint(ctx, outW, svc, path, b, *preview)
			if err != nil {
				return err
			}
			rejected += n
		}
	}
	if rejected > 0 {
		return errRejected
	}
	return nil
}

// collect expands directories into the board files below them.
func collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && storage.IsBoardFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func lint(ctx context.Context, w io.Writer, svc *usecase.Service, path string, b *domain.Board, preview bool) (int, error) {
	l, err := svc.Layout(ctx, b)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "%s %s (%dx%d)\n", titleStyle.Render(path+":"+b.ID), b.Name, b.Config.Columns, b.Config.Rows)
	if preview {
		fmt.Fprintln(w, termview.Render(l))
	}
	rejected := l.Rejected()
	if len(rejected) == 0 {
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("  %d children placed", len(l.Results))))
		return 0, nil
	}
	for i, res := range l.Results {
		if res.Accepted() {
			continue
		}
		fmt.Fprintf(w, "  %s child %d: %s\n", rejectStyle.Render("✗"), i+1, svc.Hint(l.Config, res).Message)
		fmt.Fprintf(w, "      reason=%s pos=%q size=%q\n", res.Reason, deref(res.Descriptor.Pos), deref(res.Descriptor.Size))
	}
	return len(rejected), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
