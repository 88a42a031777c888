// Package export turns a presentation into a paginated print document and
// renders it to PDF through a headless browser.
package export

import (
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/deck/render"
)

// Document is the paginated print form of a presentation, one rendered slide
// per page in the original slide order. Building a document never mutates the
// source presentation.
type Document struct {
	Title string
	Theme render.Theme
	Pages []render.Slide
}

// Build composes every slide of p with the given theme. Pass
// render.ThemePrint for the standard print output.
func Build(p *deck.Presentation, theme render.Theme) Document {
	doc := Document{
		Title: p.Title,
		Theme: theme,
		Pages: make([]render.Slide, 0, len(p.Slides)),
	}
	for _, slide := range p.Slides {
		doc.Pages = append(doc.Pages, render.Render(slide, theme))
	}
	return doc
}
