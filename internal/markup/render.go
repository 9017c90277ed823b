package markup

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/shadow"
)

const baseStyle = `:host { display: grid; grid-gap: 0; margin: 0; padding: 0; overflow: hidden; }`

// HostStyle is the per-board grid template applied to the host element.
func HostStyle(b *domain.Board) string {
	return fmt.Sprintf(":host { grid-template-columns: repeat(%d, 1fr); grid-template-rows: repeat(%d, 1fr); width: %s; height: %s; }",
		b.Config.Columns, b.Config.Rows, cssValue(b.Width), cssValue(b.Height))
}

// Render writes b as a custom element whose shadow root holds the host style,
// the board's <style> children and a placed clone of every accepted child.
// l must come from a placement pass over b. Rejected children appear only in
// the light DOM, which the shadow root does not slot.
func Render(w io.Writer, b *domain.Board, l domain.Layout) error {
	root := shadow.New()
	root.Style(baseStyle)
	root.Style(HostStyle(b))

	var light []*nethtml.Node
	k := 0
	for _, c := range b.Children {
		if c.IsStyle() {
			root.Adopt(c.Node)
			continue
		}
		if c.Node != nil {
			light = append(light, c.Node)
		}
		if k >= len(l.Results) {
			return fmt.Errorf("markup: layout has %d results, board %q has more children", len(l.Results), b.ID)
		}
		res := l.Results[k]
		k++
		if res.Accepted() && c.Node != nil {
			root.Mirror(c.Node, res.Placement)
		}
	}

	if _, err := io.WriteString(w, openTag(b)); err != nil {
		return err
	}
	if err := root.Render(w); err != nil {
		return err
	}
	for _, n := range light {
		if err := nethtml.Render(w, n); err != nil {
			return fmt.Errorf("render light child: %w", err)
		}
	}
	_, err := io.WriteString(w, "</"+TagName+">")
	return err
}

func openTag(b *domain.Board) string {
	var sb strings.Builder
	sb.WriteString("<" + TagName)
	if b.ID != "" {
		writeAttr(&sb, "id", b.ID)
	}
	if b.Name != "" {
		writeAttr(&sb, "title", b.Name)
	}
	writeAttr(&sb, AttrColumns, strconv.Itoa(b.Config.Columns))
	writeAttr(&sb, AttrRows, strconv.Itoa(b.Config.Rows))
	writeAttr(&sb, AttrWidth, b.Width)
	writeAttr(&sb, AttrHeight, b.Height)
	sb.WriteString(">")
	return sb.String()
}

func writeAttr(sb *strings.Builder, key, val string) {
	fmt.Fprintf(sb, ` %s="%s"`, key, html.EscapeString(val))
}

// cssValue keeps a length from breaking out of its declaration.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, v)
}
