// Package viewer holds the per-user navigation, edit and feedback state of one
// open presentation.
package viewer

import (
	"strings"

	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/deck/render"
)

// Session is one user's view onto a presentation. Boundary conditions
// (out-of-range navigation, feedback toggles) are clamped no-ops, never
// errors. Not safe for concurrent use.
type Session struct {
	pres     *deck.Presentation
	theme    render.Theme
	current  int
	editing  int // -1 when no edit session is open
	liked    bool
	disliked bool
}

// Draft is the editable snapshot captured by OpenEdit. Content holds the
// slide's items joined by newlines.
type Draft struct {
	Title   string
	Content string
	Notes   string
}

// Open starts a session on the first slide of p.
func Open(p *deck.Presentation, theme render.Theme) *Session {
	return &Session{pres: p, theme: theme, editing: -1}
}

// Presentation returns the underlying deck.
func (s *Session) Presentation() *deck.Presentation { return s.pres }

// CurrentIndex returns the zero-based index of the current slide.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the current slide.
func (s *Session) Current() deck.Slide { return s.pres.Slides[s.current] }

// SetTheme switches the viewer theme.
func (s *Session) SetTheme(theme render.Theme) { s.theme = theme }

// Navigate moves the current slide pointer by delta. Moves that would leave
// the deck are ignored.
func (s *Session) Navigate(delta int) {
	next := s.current + delta
	if next < 0 || next >= len(s.pres.Slides) {
		return
	}
	s.current = next
}

// Goto jumps straight to a slide index, clamped like Navigate.
func (s *Session) Goto(index int) {
	if index < 0 || index >= len(s.pres.Slides) {
		return
	}
	s.current = index
}

// Render composes the current slide with the session theme.
func (s *Session) Render() render.Slide {
	return render.Render(s.Current(), s.theme)
}

// OpenEdit captures an editable snapshot of the slide at index. At most one
// edit session is open at a time; opening while open replaces the snapshot.
// ok is false for an out-of-range index.
func (s *Session) OpenEdit(index int) (Draft, bool) {
	if index < 0 || index >= len(s.pres.Slides) {
		return Draft{}, false
	}
	s.editing = index
	slide := s.pres.Slides[index]
	return Draft{
		Title:   slide.Title,
		Content: strings.Join(slide.Content, "\n"),
		Notes:   slide.Notes,
	}, true
}

// Editing returns the open edit index, or -1 when closed.
func (s *Session) Editing() int { return s.editing }

// CloseEdit abandons the open edit session.
func (s *Session) CloseEdit() { s.editing = -1 }

// SaveEdit commits the draft into the slide captured by OpenEdit, splitting
// content on newlines and dropping blank lines, then closes the edit session.
// ok is false when no edit session is open.
func (s *Session) SaveEdit(d Draft) bool {
	if s.editing < 0 {
		return false
	}
	slide := &s.pres.Slides[s.editing]
	slide.Title = d.Title
	slide.Content = splitContent(d.Content)
	slide.Notes = d.Notes
	s.editing = -1
	return true
}

func splitContent(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ReplaceSlide swaps the slide at index (used after a successful
// enhancement). Out-of-range indexes are ignored.
func (s *Session) ReplaceSlide(index int, slide deck.Slide) {
	if index < 0 || index >= len(s.pres.Slides) {
		return
	}
	slide.SlideNumber = index + 1
	s.pres.Slides[index] = slide
}

// ToggleLike flips the like flag; setting it clears dislike.
func (s *Session) ToggleLike() {
	s.liked = !s.liked
	if s.liked {
		s.disliked = false
	}
}

// ToggleDislike flips the dislike flag; setting it clears like.
func (s *Session) ToggleDislike() {
	s.disliked = !s.disliked
	if s.disliked {
		s.liked = false
	}
}

// Feedback reports the mutually exclusive like/dislike flags.
func (s *Session) Feedback() (liked, disliked bool) {
	return s.liked, s.disliked
}
