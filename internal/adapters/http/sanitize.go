package httpadapter

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/manufosela/game-board/internal/markup"
)

// NewSanitizer returns the policy applied to posted markup when sanitizing is
// enabled. It keeps user-generated-content elements, the board host and the
// placement data attributes. <style> children do not survive it.
func NewSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataAttributes()
	p.AllowElements(markup.TagName)
	p.AllowAttrs("id", "title", markup.AttrColumns, markup.AttrRows, markup.AttrWidth, markup.AttrHeight).
		OnElements(markup.TagName)
	p.AllowStyling()
	return p
}
