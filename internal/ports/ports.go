package ports

import (
	"context"
	"image"

	"github.com/manufosela/game-board/internal/domain"
)

// Placer decides where one child goes on a grid. Implementations must be pure.
type Placer interface {
	Place(cfg domain.GridConfig, d domain.ChildDescriptor) domain.PlacementResult
}

// Hinter explains rejections.
type Hinter interface {
	Hint(cfg domain.GridConfig, res domain.PlacementResult) (domain.Hint, bool)
}

// Generator builds sample boards that always fit their grid.
type Generator interface {
	Generate(ctx context.Context, seed int64, cfg domain.GridConfig, n int) (*domain.Board, error)
}

// Rasterizer draws a layout as an image.
type Rasterizer interface {
	Preview(l domain.Layout, width, height int) image.Image
}

// Source lists and loads declared boards. It is read only.
type Source interface {
	Load(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context) ([]domain.BoardMeta, error)
}
