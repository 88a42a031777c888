package viewer

import (
	"reflect"
	"testing"

	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/deck/render"
)

func testPresentation() *deck.Presentation {
	return &deck.Presentation{
		ID:    "p1",
		Owner: "u1",
		Title: "Deneme",
		Slides: []deck.Slide{
			{SlideNumber: 1, Title: "Kapak", Content: []string{"alt"}, Layout: deck.LayoutTitle},
			{SlideNumber: 2, Title: "Orta", Content: []string{"a", "b"}, Layout: deck.LayoutContent, Notes: "not"},
			{SlideNumber: 3, Title: "Son", Content: []string{"bye"}, Layout: deck.LayoutClosing},
		},
	}
}

func TestNavigateClampsAtBoundaries(t *testing.T) {
	s := Open(testPresentation(), render.ThemeCrystal)

	s.Navigate(-1)
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index 0 after backing off the first slide, got %d", s.CurrentIndex())
	}

	s.Navigate(1)
	s.Navigate(1)
	if s.CurrentIndex() != 2 {
		t.Fatalf("expected index 2, got %d", s.CurrentIndex())
	}

	s.Navigate(1)
	if s.CurrentIndex() != 2 {
		t.Fatalf("expected index to stay at last slide, got %d", s.CurrentIndex())
	}

	s.Goto(10)
	if s.CurrentIndex() != 2 {
		t.Fatalf("out-of-range goto moved the index to %d", s.CurrentIndex())
	}
	s.Goto(0)
	if s.CurrentIndex() != 0 {
		t.Fatalf("goto 0 landed on %d", s.CurrentIndex())
	}
}

func TestOpenEditCapturesDraft(t *testing.T) {
	s := Open(testPresentation(), render.ThemeCrystal)

	d, ok := s.OpenEdit(1)
	if !ok {
		t.Fatal("expected edit session to open")
	}
	if d.Title != "Orta" || d.Content != "a\nb" || d.Notes != "not" {
		t.Fatalf("unexpected draft: %+v", d)
	}

	if _, ok := s.OpenEdit(7); ok {
		t.Fatal("expected out-of-range edit to be refused")
	}
}

func TestSaveEditSplitsAndDropsBlankLines(t *testing.T) {
	s := Open(testPresentation(), render.ThemeCrystal)

	if s.SaveEdit(Draft{Title: "x"}) {
		t.Fatal("save without an open edit session should be refused")
	}

	if _, ok := s.OpenEdit(1); !ok {
		t.Fatal("expected edit session to open")
	}
	if !s.SaveEdit(Draft{Title: "Yeni", Content: "A\n\nB", Notes: "n2"}) {
		t.Fatal("expected save to succeed")
	}

	slide := s.Presentation().Slides[1]
	if slide.Title != "Yeni" || slide.Notes != "n2" {
		t.Fatalf("unexpected slide after save: %+v", slide)
	}
	if !reflect.DeepEqual(slide.Content, []string{"A", "B"}) {
		t.Fatalf("expected blank lines dropped, got %q", slide.Content)
	}
	if s.Editing() != -1 {
		t.Fatal("expected edit session to close after save")
	}
}

func TestReplaceSlideKeepsNumbering(t *testing.T) {
	s := Open(testPresentation(), render.ThemeCrystal)

	s.ReplaceSlide(1, deck.Slide{SlideNumber: 42, Title: "Gelişmiş", Content: []string{"z"}, Layout: deck.LayoutQuote})
	if got := s.Presentation().Slides[1].SlideNumber; got != 2 {
		t.Fatalf("expected slide number 2 preserved, got %d", got)
	}
	if s.Presentation().Slides[1].Title != "Gelişmiş" {
		t.Fatalf("replacement did not apply: %+v", s.Presentation().Slides[1])
	}

	s.ReplaceSlide(9, deck.Slide{Title: "kayıp"})
	if len(s.Presentation().Slides) != 3 {
		t.Fatalf("out-of-range replace changed the deck: %d slides", len(s.Presentation().Slides))
	}
}

func TestFeedbackTogglesAreMutuallyExclusive(t *testing.T) {
	s := Open(testPresentation(), render.ThemeCrystal)

	s.ToggleLike()
	if liked, disliked := s.Feedback(); !liked || disliked {
		t.Fatalf("after like: liked=%v disliked=%v", liked, disliked)
	}

	s.ToggleLike()
	if liked, _ := s.Feedback(); liked {
		t.Fatal("expected second toggle to clear like")
	}

	s.ToggleLike()
	s.ToggleDislike()
	if liked, disliked := s.Feedback(); liked || !disliked {
		t.Fatalf("after dislike: liked=%v disliked=%v", liked, disliked)
	}
}

func TestRenderUsesSessionTheme(t *testing.T) {
	s := Open(testPresentation(), render.ThemeDark)

	out := s.Render()
	if out.Theme != render.ThemeDark.Name {
		t.Fatalf("expected dark theme, got %q", out.Theme)
	}
	s.SetTheme(render.ThemeNeon)
	if s.Render().Theme != render.ThemeNeon.Name {
		t.Fatal("theme switch not reflected in render output")
	}
}
