package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manufosela/game-board/internal/ctxlog"
	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/hclboard"
	"github.com/manufosela/game-board/internal/markup"
)

// FS serves boards declared in .html/.htm and .hcl files of one directory.
// Files are re-read on every call so edits show up without a restart.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

// IsBoardFile reports whether path has an extension boards can be read from.
func IsBoardFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".hcl":
		return true
	}
	return false
}

// LoadFile reads every board declared in path. HTML boards without an id
// attribute are named after the file: "demo", "demo-2", ...
func LoadFile(path string) ([]*domain.Board, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hclboard.NewLoader().LoadFile(path)
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		boards, err := markup.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i, b := range boards {
			if b.ID != "" {
				continue
			}
			b.ID = stem
			if i > 0 {
				b.ID = fmt.Sprintf("%s-%d", stem, i+1)
			}
		}
		return boards, nil
	}
	return nil, fmt.Errorf("%s: unsupported board file", path)
}

// scan loads every board in the directory. Files that fail to parse are
// skipped with a warning; the first board to claim an ID keeps it.
func (s *FS) scan(ctx context.Context) ([]*domain.Board, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	seen := make(map[string]struct{})
	var out []*domain.Board
	for _, e := range ents {
		if e.IsDir() || !IsBoardFile(e.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, e.Name())
		boards, err := LoadFile(path)
		if err != nil {
			logger.Warn("skipping board file", "path", path, "err", err)
			continue
		}
		for _, b := range boards {
			if _, dup := seen[b.ID]; dup {
				logger.Warn("duplicate board id", "id", b.ID, "path", path)
				continue
			}
			seen[b.ID] = struct{}{}
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Board, error) {
	id = strings.TrimSpace(id)
	boards, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.BoardMeta, error) {
	boards, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BoardMeta, 0, len(boards))
	for _, b := range boards {
		out = append(out, b.Meta())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
