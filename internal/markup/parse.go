// Package markup reads <game-board> elements out of HTML and writes them back
// with their accepted children mirrored into a declarative shadow root.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/manufosela/game-board/internal/domain"
)

// Host element and the attributes it is configured with.
const (
	TagName     = "game-board"
	AttrColumns = "grid-cells-x"
	AttrRows    = "grid-cells-y"
	AttrWidth   = "grid-width"
	AttrHeight  = "grid-height"

	AttrPos   = "data-pos"
	AttrSize  = "data-size"
	AttrColor = "data-bgcolor"
)

var ErrNoBoard = errors.New("markup: no <game-board> element found")

// Parse returns every board declared in the document, in document order.
func Parse(r io.Reader) ([]*domain.Board, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	hosts, err := htmlquery.QueryAll(doc, "//"+TagName)
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, ErrNoBoard
	}
	boards := make([]*domain.Board, 0, len(hosts))
	for _, host := range hosts {
		b, err := boardFromHost(host)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(s string) ([]*domain.Board, error) {
	return Parse(strings.NewReader(s))
}

func boardFromHost(host *html.Node) (*domain.Board, error) {
	b := domain.NewBoard(htmlquery.SelectAttr(host, "id"))
	b.Format = domain.FormatHTML
	b.Name = htmlquery.SelectAttr(host, "title")
	// Absent attributes normalize to the default, same as garbage.
	b.Resize(htmlquery.SelectAttr(host, AttrColumns), htmlquery.SelectAttr(host, AttrRows))
	if v := strings.TrimSpace(htmlquery.SelectAttr(host, AttrWidth)); v != "" {
		b.Width = v
	}
	if v := strings.TrimSpace(htmlquery.SelectAttr(host, AttrHeight)); v != "" {
		b.Height = v
	}

	kids, err := htmlquery.QueryAll(host, "./*")
	if err != nil {
		return nil, err
	}
	for _, n := range kids {
		b.Children = append(b.Children, domain.Child{Descriptor: Descriptor(n), Node: n})
	}
	return b, nil
}

// Descriptor reads the placement attributes of n. Missing attributes stay nil
// so the engine can tell "absent" from "empty".
func Descriptor(n *html.Node) domain.ChildDescriptor {
	var d domain.ChildDescriptor
	if htmlquery.ExistsAttr(n, AttrPos) {
		d.Pos = domain.StringPtr(htmlquery.SelectAttr(n, AttrPos))
	}
	if htmlquery.ExistsAttr(n, AttrSize) {
		d.Size = domain.StringPtr(htmlquery.SelectAttr(n, AttrSize))
	}
	d.Color = htmlquery.SelectAttr(n, AttrColor)
	return d
}
