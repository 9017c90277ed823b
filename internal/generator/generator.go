package generator

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/manufosela/game-board/internal/domain"
)

// MaxPieces bounds a single generated board.
const MaxPieces = 256

var palette = []string{"tomato", "gold", "seagreen", "steelblue", "orchid", "#f0d9b5", "#b58863", "slategray"}

// Random builds seeded boards whose children always fit the grid.
type Random struct{}

func NewRandom() *Random { return &Random{} }

// Generate returns a board of n pieces on cfg. The same seed and inputs
// always produce the same board.
func (g *Random) Generate(ctx context.Context, seed int64, cfg domain.GridConfig, n int) (*domain.Board, error) {
	cfg.Normalize()
	if n < 0 {
		n = 0
	}
	if n > MaxPieces {
		n = MaxPieces
	}
	rng := rand.New(rand.NewSource(seed))

	b := domain.NewBoard(fmt.Sprintf("random-%d", seed))
	b.Name = fmt.Sprintf("Random board %d", seed)
	b.Config = cfg
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := 1 + rng.Intn(cfg.Columns)
		y := 1 + rng.Intn(cfg.Rows)
		w := 1 + rng.Intn(maxSpan(cfg.Columns-x+1))
		h := 1 + rng.Intn(maxSpan(cfg.Rows-y+1))
		color := palette[rng.Intn(len(palette))]
		b.Children = append(b.Children, piece(i+1, x, y, w, h, color))
	}
	return b, nil
}

// maxSpan keeps pieces small enough that a board does not collapse into a
// few giant blocks.
func maxSpan(room int) int {
	if room > 4 {
		return 4
	}
	return room
}

func piece(i, x, y, w, h int, color string) domain.Child {
	pos := fmt.Sprintf("%d,%d", x, y)
	size := fmt.Sprintf("%d,%d", w, h)
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr: []html.Attribute{
			{Key: "data-pos", Val: pos},
			{Key: "data-size", Val: size},
			{Key: "data-bgcolor", Val: color},
		},
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprint(i)})
	return domain.Child{
		Descriptor: domain.ChildDescriptor{Pos: &pos, Size: &size, Color: color},
		Node:       n,
	}
}
