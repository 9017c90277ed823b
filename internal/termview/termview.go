// Package termview renders a layout as colored terminal cells.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manufosela/game-board/internal/colors"
	"github.com/manufosela/game-board/internal/domain"
)

// cellWidth keeps cells roughly square in a terminal.
const cellWidth = 2

// MaxCells is the largest grid, in cells, that is painted.
const MaxCells = 128 * 128

var (
	emptyCell = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	frame     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("243"))
)

// Paint returns, for every cell, the color of the last accepted placement
// covering it ("" for an uncovered cell). Grids above MaxCells yield nil.
func Paint(l domain.Layout) [][]string {
	cfg := l.Config
	cfg.Normalize()
	if !paintable(cfg) {
		return nil
	}
	cells := make([][]string, cfg.Rows)
	for r := range cells {
		cells[r] = make([]string, cfg.Columns)
	}
	for _, res := range l.Accepted() {
		p := res.Placement
		hex := colors.Hex(colors.OrFallback(p.Color))
		for r := max(p.RowStart, 1); r < p.RowEnd && r <= cfg.Rows; r++ {
			for c := max(p.ColStart, 1); c < p.ColEnd && c <= cfg.Columns; c++ {
				cells[r-1][c-1] = hex
			}
		}
	}
	return cells
}

func paintable(cfg domain.GridConfig) bool {
	return cfg.Columns <= MaxCells/cfg.Rows
}

// Render draws the grid inside a rounded frame, or a one-line notice when the
// grid is too large to paint.
func Render(l domain.Layout) string {
	cfg := l.Config
	cfg.Normalize()
	if !paintable(cfg) {
		return frame.Render(fmt.Sprintf("%dx%d grid is too large to preview", cfg.Columns, cfg.Rows))
	}
	var b strings.Builder
	for r, row := range Paint(l) {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, hex := range row {
			if hex == "" {
				b.WriteString(emptyCell.Render(strings.Repeat("·", cellWidth)))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", cellWidth)))
		}
	}
	return frame.Render(b.String())
}
