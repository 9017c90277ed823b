package usecase

import (
	"context"
	"errors"
	"image"
	"io"

	"github.com/manufosela/game-board/internal/ctxlog"
	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/markup"
	"github.com/manufosela/game-board/internal/ports"
)

type Service struct {
	Placer     ports.Placer
	Hinter     ports.Hinter
	Generator  ports.Generator
	Rasterizer ports.Rasterizer
	Source     ports.Source
}

func NewService(p ports.Placer, h ports.Hinter, g ports.Generator, r ports.Rasterizer, s ports.Source) *Service {
	return &Service{Placer: p, Hinter: h, Generator: g, Rasterizer: r, Source: s}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Layout runs one placement pass over the board's children in declaration
// order. Rejections are logged through the context logger and otherwise
// only reported in the returned layout.
func (u *Service) Layout(ctx context.Context, b *domain.Board) (domain.Layout, error) {
	if u.Placer == nil {
		return domain.Layout{}, errNotConfigured
	}
	b.Config.Normalize()
	logger := ctxlog.FromContext(ctx)
	l := domain.Layout{Config: b.Config, Results: make([]domain.PlacementResult, 0, len(b.Children))}
	for i, c := range b.Children {
		if c.IsStyle() {
			continue
		}
		res := u.Placer.Place(b.Config, c.Descriptor)
		if !res.Accepted() {
			logger.Warn("child rejected",
				"board", b.ID,
				"child", i,
				"pos", deref(c.Descriptor.Pos),
				"size", deref(c.Descriptor.Size),
				"bgcolor", c.Descriptor.Color,
				"reason", res.Reason.String(),
				"hint", u.Hint(b.Config, res).Message,
			)
		}
		l.Results = append(l.Results, res)
	}
	logger.Debug("layout computed", "board", b.ID, "accepted", len(l.Accepted()), "rejected", len(l.Rejected()))
	return l, nil
}

// Resize changes the grid and re-evaluates every child against it.
func (u *Service) Resize(ctx context.Context, b *domain.Board, columns, rows string) (domain.Layout, error) {
	b.Resize(columns, rows)
	return u.Layout(ctx, b)
}

// Place evaluates bare descriptors that have no markup behind them.
func (u *Service) Place(ctx context.Context, cfg domain.GridConfig, ds []domain.ChildDescriptor) (domain.Layout, error) {
	b := domain.NewBoard("")
	b.Config = cfg
	for _, d := range ds {
		b.Children = append(b.Children, domain.Child{Descriptor: d})
	}
	return u.Layout(ctx, b)
}

// Hint explains res, or returns the zero hint when no Hinter is wired or res was accepted.
func (u *Service) Hint(cfg domain.GridConfig, res domain.PlacementResult) domain.Hint {
	if u.Hinter == nil {
		return domain.Hint{}
	}
	h, _ := u.Hinter.Hint(cfg, res)
	return h
}

// Render lays b out and writes it with its accepted children mirrored into the shadow root.
func (u *Service) Render(ctx context.Context, w io.Writer, b *domain.Board) error {
	l, err := u.Layout(ctx, b)
	if err != nil {
		return err
	}
	return markup.Render(w, b, l)
}

// Preview lays b out and rasterizes it at width x height pixels.
func (u *Service) Preview(ctx context.Context, b *domain.Board, width, height int) (image.Image, error) {
	if u.Rasterizer == nil {
		return nil, errNotConfigured
	}
	l, err := u.Layout(ctx, b)
	if err != nil {
		return nil, err
	}
	return u.Rasterizer.Preview(l, width, height), nil
}

// Generate builds a seeded board of n pieces that all fit cfg.
func (u *Service) Generate(ctx context.Context, seed int64, cfg domain.GridConfig, n int) (*domain.Board, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, cfg, n)
}

// Load returns the board stored under id.
func (u *Service) Load(ctx context.Context, id string) (*domain.Board, error) {
	if u.Source == nil {
		return nil, errNotConfigured
	}
	return u.Source.Load(ctx, id)
}

// List returns every stored board, sorted by ID.
func (u *Service) List(ctx context.Context) ([]domain.BoardMeta, error) {
	if u.Source == nil {
		return nil, errNotConfigured
	}
	return u.Source.List(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
