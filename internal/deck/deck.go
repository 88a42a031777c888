// Package deck holds the canonical presentation document model.
package deck

import (
	"fmt"
	"time"
)

// Layout is the closed set of structural slide templates.
type Layout string

const (
	LayoutTitle     Layout = "title"
	LayoutContent   Layout = "content"
	LayoutTwoColumn Layout = "two-column"
	LayoutImageText Layout = "image-text"
	LayoutQuote     Layout = "quote"
	LayoutStats     Layout = "stats"
	LayoutClosing   Layout = "closing"
)

// Layouts lists every known layout in display order.
func Layouts() []Layout {
	return []Layout{
		LayoutTitle, LayoutContent, LayoutTwoColumn, LayoutImageText,
		LayoutQuote, LayoutStats, LayoutClosing,
	}
}

// Known reports whether l is one of the closed layout set.
func (l Layout) Known() bool {
	switch l {
	case LayoutTitle, LayoutContent, LayoutTwoColumn, LayoutImageText,
		LayoutQuote, LayoutStats, LayoutClosing:
		return true
	default:
		return false
	}
}

// Label returns the Turkish display label for a layout.
func (l Layout) Label() string {
	switch l {
	case LayoutTitle:
		return "Kapak"
	case LayoutContent:
		return "İçerik"
	case LayoutTwoColumn:
		return "İki Sütun"
	case LayoutImageText:
		return "Görsel"
	case LayoutQuote:
		return "Alıntı"
	case LayoutStats:
		return "İstatistik"
	case LayoutClosing:
		return "Kapanış"
	default:
		return string(l)
	}
}

// Slide is one unit of a presentation.
type Slide struct {
	SlideNumber int      `json:"slideNumber"`
	Title       string   `json:"title"`
	Content     []string `json:"content"`
	Notes       string   `json:"notes,omitempty"`
	Layout      Layout   `json:"layout"`
	BgColor     string   `json:"bgColor,omitempty"`
}

// Validate checks the structural invariants of a single slide.
func (s *Slide) Validate() error {
	if s.SlideNumber <= 0 {
		return fmt.Errorf("slide number must be positive, got %d", s.SlideNumber)
	}
	if !s.Layout.Known() {
		return fmt.Errorf("unknown layout %q on slide %d", s.Layout, s.SlideNumber)
	}
	return nil
}

// Presentation is an owned, ordered deck of slides.
type Presentation struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Slides    []Slide   `json:"slides"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the structural invariants of the whole deck: at least one
// slide, every slide valid, slide numbers contiguous from 1.
func (p *Presentation) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("presentation title is empty")
	}
	if len(p.Slides) == 0 {
		return fmt.Errorf("presentation has no slides")
	}
	for i := range p.Slides {
		s := &p.Slides[i]
		if err := s.Validate(); err != nil {
			return err
		}
		if s.SlideNumber != i+1 {
			return fmt.Errorf("slide numbers not contiguous: position %d has number %d", i+1, s.SlideNumber)
		}
	}
	return nil
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	out := s
	out.Content = append([]string(nil), s.Content...)
	return out
}
