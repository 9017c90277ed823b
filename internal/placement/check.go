package placement

import "github.com/manufosela/game-board/internal/domain"

// Check validates s against the grid. End lines are exclusive, so the last
// legal end line is columns+1 (rows+1). The extent is compared as remaining
// room from the origin so huge sizes cannot wrap around.
func Check(cfg domain.GridConfig, s Span) domain.Reason {
	switch {
	case s.X < 1 || s.Y < 1 || s.Width < 1 || s.Height < 1:
		return domain.NonPositive
	case s.X > cfg.Columns || s.Y > cfg.Rows:
		return domain.OriginOutOfBounds
	case s.Width > cfg.Columns-s.X+1 || s.Height > cfg.Rows-s.Y+1:
		return domain.ExtentOutOfBounds
	}
	return domain.Accepted
}

// Lines maps an in-bounds span onto CSS grid lines.
func Lines(s Span, color string) domain.Placement {
	return domain.Placement{
		ColStart: s.X,
		ColEnd:   s.X + s.Width,
		RowStart: s.Y,
		RowEnd:   s.Y + s.Height,
		Color:    color,
	}
}
