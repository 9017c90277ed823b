package hint

import (
	"fmt"

	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/placement"
)

// Explainer turns a rejection into a message for whoever wrote the markup.
// It never changes a verdict.
type Explainer struct{}

func NewExplainer() *Explainer { return &Explainer{} }

// Hint returns an explanation for a rejected result; ok is false for accepted ones.
func (h *Explainer) Hint(cfg domain.GridConfig, res domain.PlacementResult) (domain.Hint, bool) {
	d := res.Descriptor
	switch res.Reason {
	case domain.Accepted:
		return domain.Hint{}, false
	case domain.MissingFields:
		switch {
		case d.Pos == nil && d.Size == nil:
			return domain.Hint{Message: "data-pos and data-size are required"}, true
		case d.Pos == nil:
			return domain.Hint{Message: "data-pos is required"}, true
		default:
			return domain.Hint{Message: "data-size is required"}, true
		}
	case domain.NonNumeric:
		return domain.Hint{Message: fmt.Sprintf("pos %q and size %q must each be two comma-separated integers", deref(d.Pos), deref(d.Size))}, true
	case domain.NonPositive:
		return domain.Hint{Message: "position and size components start at 1"}, true
	}

	s, ok := placement.ParseSpan(d)
	if !ok {
		return domain.Hint{Message: res.Reason.String()}, true
	}
	switch res.Reason {
	case domain.OriginOutOfBounds:
		return domain.Hint{Message: fmt.Sprintf("origin %d,%d is outside the %dx%d grid", s.X, s.Y, cfg.Columns, cfg.Rows)}, true
	case domain.ExtentOutOfBounds:
		maxW, maxH := cfg.Columns-s.X+1, cfg.Rows-s.Y+1
		return domain.Hint{
			Message: fmt.Sprintf("size %d,%d from %d,%d runs past the %dx%d grid; at most %d,%d fits",
				s.Width, s.Height, s.X, s.Y, cfg.Columns, cfg.Rows, maxW, maxH),
			MaxSize: fmt.Sprintf("%d,%d", maxW, maxH),
		}, true
	}
	return domain.Hint{Message: res.Reason.String()}, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
