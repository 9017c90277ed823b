// Package shadow is the isolated rendering scope accepted children are
// mirrored into. It is serialized as a declarative shadow root so the
// browser keeps the mirrored tree apart from the host document.
package shadow

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/manufosela/game-board/internal/domain"
)

// Root is a detached fragment. Nodes handed to it are cloned; the originals
// stay untouched in the light DOM.
type Root struct {
	frag *html.Node
}

func New() *Root {
	return &Root{frag: &html.Node{Type: html.DocumentNode}}
}

// Style appends a <style> element with the given CSS text.
func (r *Root) Style(css string) {
	st := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	st.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	r.frag.AppendChild(st)
}

// Adopt appends a deep clone of n unchanged.
func (r *Root) Adopt(n *html.Node) {
	r.frag.AppendChild(Clone(n))
}

// Mirror appends a deep clone of n with the placement applied to its inline style.
func (r *Root) Mirror(n *html.Node, p domain.Placement) {
	c := Clone(n)
	setAttr(c, "style", appendDecls(attr(c, "style"), Declarations(p)))
	r.frag.AppendChild(c)
}

// Len is the number of top-level nodes in the scope.
func (r *Root) Len() int {
	n := 0
	for c := r.frag.FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	return n
}

// Render writes the scope as <template shadowrootmode="open">.
func (r *Root) Render(w io.Writer) error {
	if _, err := io.WriteString(w, `<template shadowrootmode="open">`); err != nil {
		return err
	}
	for c := r.frag.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("render shadow node: %w", err)
		}
	}
	_, err := io.WriteString(w, `</template>`)
	return err
}

// Declarations is the inline CSS for a placement, in the order the widget has
// always emitted it. background-color is left out when no color was given or
// when the color would reach past its own declaration.
func Declarations(p domain.Placement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "grid-column-start: %d; grid-column-end: %d; grid-row-start: %d; grid-row-end: %d;",
		p.ColStart, p.ColEnd, p.RowStart, p.RowEnd)
	if color := strings.TrimSpace(p.Color); color != "" && !strings.ContainsAny(color, unsafeColorChars) {
		fmt.Fprintf(&b, " background-color: %s;", color)
	}
	return b.String()
}

// unsafeColorChars end a declaration or the attribute holding it.
const unsafeColorChars = ";{}<>\"\\"

// Clone deep-copies n without its parent or siblings.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(Clone(ch))
	}
	return c
}

func appendDecls(existing, decls string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return decls
	}
	if !strings.HasSuffix(existing, ";") {
		existing += ";"
	}
	return existing + " " + decls
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
