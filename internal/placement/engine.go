// Package placement validates child descriptors against a grid and maps the
// accepted ones onto CSS grid lines.
package placement

import "github.com/manufosela/game-board/internal/domain"

// Engine is stateless; the zero value is ready to use.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Place returns the verdict for d on cfg. It never fails: malformed input is
// reported as a rejection reason.
func (e *Engine) Place(cfg domain.GridConfig, d domain.ChildDescriptor) domain.PlacementResult {
	res := domain.PlacementResult{Descriptor: d}
	s, reason := parse(d)
	if reason == domain.Accepted {
		reason = Check(cfg, s)
	}
	res.Reason = reason
	if reason == domain.Accepted {
		res.Placement = Lines(s, d.Color)
	}
	return res
}

// ParseSpan exposes the string boundary for callers that want the raw numbers
// of a descriptor (diagnostics) without a verdict.
func ParseSpan(d domain.ChildDescriptor) (Span, bool) {
	s, reason := parse(d)
	return s, reason == domain.Accepted
}
