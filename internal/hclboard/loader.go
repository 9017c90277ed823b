// Package hclboard decodes boards declared in HCL files.
package hclboard

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/markup"
)

// fileRoot decodes all top-level blocks of a file. Unknown content is left in Remain.
type fileRoot struct {
	Boards []*boardBlock `hcl:"board,block"`
	Remain hcl.Body      `hcl:",remain"`
}

type boardBlock struct {
	ID      string         `hcl:"id,label"`
	Name    *string        `hcl:"name,optional"`
	Columns hcl.Expression `hcl:"columns,optional"`
	Rows    hcl.Expression `hcl:"rows,optional"`
	Width   *string        `hcl:"width,optional"`
	Height  *string        `hcl:"height,optional"`
	Style   *string        `hcl:"style,optional"`
	Pieces  []*pieceBlock  `hcl:"piece,block"`
}

type pieceBlock struct {
	Tag     string         `hcl:"tag,label"`
	Pos     hcl.Expression `hcl:"pos,optional"`
	Size    hcl.Expression `hcl:"size,optional"`
	BgColor *string        `hcl:"bgcolor,optional"`
	Class   *string        `hcl:"class,optional"`
	ID      *string        `hcl:"id,optional"`
	Text    *string        `hcl:"text,optional"`
}

// Loader parses HCL board files. It keeps one parser so repeated loads of the
// same file are served from the parser's cache.
type Loader struct {
	parser *hclparse.Parser
}

func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadFile parses every board block in the file at path.
func (l *Loader) LoadFile(path string) ([]*domain.Board, error) {
	f, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(f, path)
}

// LoadBytes parses src as if it were read from filename.
func (l *Loader) LoadBytes(src []byte, filename string) ([]*domain.Board, error) {
	f, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(f, filename)
}

func decode(f *hcl.File, filename string) ([]*domain.Board, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	boards := make([]*domain.Board, 0, len(root.Boards))
	for _, bb := range root.Boards {
		b, err := translateBoard(bb)
		if err != nil {
			return nil, fmt.Errorf("%s: board %q: %w", filename, bb.ID, err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}

func translateBoard(bb *boardBlock) (*domain.Board, error) {
	b := domain.NewBoard(bb.ID)
	b.Format = domain.FormatHCL
	if bb.Name != nil {
		b.Name = *bb.Name
	}
	cols, _, err := exprString(bb.Columns)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	rows, _, err := exprString(bb.Rows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	b.Resize(cols, rows)
	if bb.Width != nil && strings.TrimSpace(*bb.Width) != "" {
		b.Width = strings.TrimSpace(*bb.Width)
	}
	if bb.Height != nil && strings.TrimSpace(*bb.Height) != "" {
		b.Height = strings.TrimSpace(*bb.Height)
	}
	if bb.Style != nil {
		st := element("style")
		st.AppendChild(&html.Node{Type: html.TextNode, Data: *bb.Style})
		b.Children = append(b.Children, domain.Child{Node: st})
	}
	for i, pb := range bb.Pieces {
		c, err := translatePiece(pb)
		if err != nil {
			return nil, fmt.Errorf("piece %d (%s): %w", i+1, pb.Tag, err)
		}
		b.Children = append(b.Children, c)
	}
	return b, nil
}

func translatePiece(pb *pieceBlock) (domain.Child, error) {
	var d domain.ChildDescriptor
	n := element(pb.Tag)

	pos, ok, err := exprString(pb.Pos)
	if err != nil {
		return domain.Child{}, fmt.Errorf("pos: %w", err)
	}
	if ok {
		d.Pos = domain.StringPtr(pos)
		n.Attr = append(n.Attr, html.Attribute{Key: markup.AttrPos, Val: pos})
	}
	size, ok, err := exprString(pb.Size)
	if err != nil {
		return domain.Child{}, fmt.Errorf("size: %w", err)
	}
	if ok {
		d.Size = domain.StringPtr(size)
		n.Attr = append(n.Attr, html.Attribute{Key: markup.AttrSize, Val: size})
	}
	if pb.BgColor != nil {
		d.Color = *pb.BgColor
		n.Attr = append(n.Attr, html.Attribute{Key: markup.AttrColor, Val: *pb.BgColor})
	}
	if pb.ID != nil {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: *pb.ID})
	}
	if pb.Class != nil {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: *pb.Class})
	}
	if pb.Text != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: *pb.Text})
	}
	return domain.Child{Descriptor: d, Node: n}, nil
}

func element(tag string) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
}

// exprString evaluates a literal attribute to the string form the markup
// boundary expects. Numbers become their decimal text and tuples/lists are
// joined with commas, so `pos = [1, 2]` reads like `pos = "1,2"`. A missing
// attribute evaluates to null and reports ok=false.
func exprString(expr hcl.Expression) (s string, ok bool, err error) {
	if expr == nil {
		return "", false, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", false, diags
	}
	if v.IsNull() {
		return "", false, nil
	}
	if !v.IsWhollyKnown() {
		return "", false, fmt.Errorf("value is not known")
	}
	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() {
		parts := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			es, err := toString(ev)
			if err != nil {
				return "", false, err
			}
			parts = append(parts, es)
		}
		return strings.Join(parts, ","), true, nil
	}
	s, err = toString(v)
	return s, err == nil, err
}

func toString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("expected a string or number: %w", err)
	}
	return sv.AsString(), nil
}
