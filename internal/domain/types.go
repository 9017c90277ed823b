package domain

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Board width/height used when a board does not declare them.
const (
	DefaultWidth  = "100vw"
	DefaultHeight = "100vh"
)

// ChildDescriptor is the raw declarative input for one child.
// A nil Pos or Size means the attribute was not declared at all.
type ChildDescriptor struct {
	Pos   *string `json:"pos,omitempty"`
	Size  *string `json:"size,omitempty"`
	Color string  `json:"bgcolor,omitempty"`
}

// Placement is an accepted child expressed in CSS grid lines; ends are exclusive.
type Placement struct {
	ColStart int    `json:"colStart"`
	ColEnd   int    `json:"colEnd"`
	RowStart int    `json:"rowStart"`
	RowEnd   int    `json:"rowEnd"`
	Color    string `json:"color,omitempty"`
}

// PlacementResult is the verdict for one descriptor. Placement is only
// meaningful when Reason is Accepted.
type PlacementResult struct {
	Descriptor ChildDescriptor `json:"descriptor"`
	Placement  Placement       `json:"placement"`
	Reason     Reason          `json:"reason"`
}

func (r PlacementResult) Accepted() bool { return r.Reason == Accepted }

// Child pairs a descriptor with the element it was read from.
type Child struct {
	Descriptor ChildDescriptor
	Node       *html.Node
}

// IsStyle reports a <style> child; those skip placement and move into the
// isolated scope as they are.
func (c Child) IsStyle() bool {
	return c.Node != nil && c.Node.Type == html.ElementNode &&
		(c.Node.DataAtom == atom.Style || strings.EqualFold(c.Node.Data, "style"))
}

// Board is one declared grid with its children in declaration order.
type Board struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	Format   Format     `json:"format,omitempty"`
	Config   GridConfig `json:"config"`
	Width    string     `json:"width"`
	Height   string     `json:"height"`
	Children []Child    `json:"-"`
}

// NewBoard returns an empty board with the default dimensions.
func NewBoard(id string) *Board {
	return &Board{
		ID:     id,
		Config: NewGridConfig(),
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Resize re-normalizes the grid. Any layout computed before is stale afterwards.
func (b *Board) Resize(columns, rows string) {
	b.Config.SetColumns(columns)
	b.Config.SetRows(rows)
}

// Meta returns the listing entry for b.
func (b *Board) Meta() BoardMeta {
	return BoardMeta{
		ID:      b.ID,
		Name:    b.Name,
		Format:  b.Format,
		Columns: b.Config.Columns,
		Rows:    b.Config.Rows,
	}
}

// Layout is the outcome of one placement pass over a board.
type Layout struct {
	Config  GridConfig        `json:"config"`
	// Results follow the board's non-style children in declaration order.
	Results []PlacementResult `json:"results"`
}

// Accepted returns the accepted results in declaration order.
func (l Layout) Accepted() []PlacementResult {
	out := make([]PlacementResult, 0, len(l.Results))
	for _, r := range l.Results {
		if r.Accepted() {
			out = append(out, r)
		}
	}
	return out
}

// Rejected returns the rejected results in declaration order.
func (l Layout) Rejected() []PlacementResult {
	out := make([]PlacementResult, 0, len(l.Results))
	for _, r := range l.Results {
		if !r.Accepted() {
			out = append(out, r)
		}
	}
	return out
}

// Hint is a human-readable explanation attached to a rejection.
type Hint struct {
	Message string `json:"message,omitempty"`
	// MaxSize is the largest "width,height" that fits from the declared origin, when one exists.
	MaxSize string `json:"maxSize,omitempty"`
}

// BoardMeta is a lightweight listing entry.
type BoardMeta struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Format  Format `json:"format"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// StringPtr is a convenience for building descriptors by hand.
func StringPtr(s string) *string { return &s }
