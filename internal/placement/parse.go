package placement

import (
	"strings"

	"github.com/manufosela/game-board/internal/domain"
)

// Span is a parsed, not yet bounds-checked child: 1-based origin plus extent in cells.
type Span struct {
	X, Y          int
	Width, Height int
}

// parsePair splits "a,b" and reads both halves. Components past the second are ignored.
func parsePair(raw string) (a, b int, ok bool) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	a, okA := domain.ParseInt(parts[0])
	b, okB := domain.ParseInt(parts[1])
	return a, b, okA && okB
}

// parse converts raw pos/size strings into a Span. The returned reason is
// Accepted when parsing succeeded; bounds are not looked at here.
func parse(d domain.ChildDescriptor) (Span, domain.Reason) {
	if d.Pos == nil || d.Size == nil {
		return Span{}, domain.MissingFields
	}
	x, y, ok := parsePair(*d.Pos)
	if !ok {
		return Span{}, domain.NonNumeric
	}
	w, h, ok := parsePair(*d.Size)
	if !ok {
		return Span{}, domain.NonNumeric
	}
	return Span{X: x, Y: y, Width: w, Height: h}, domain.Accepted
}
