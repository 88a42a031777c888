package deck

import "testing"

func validDeck() Presentation {
	return Presentation{
		ID:    "p1",
		Owner: "u1",
		Title: "Yapay Zeka",
		Slides: []Slide{
			{SlideNumber: 1, Title: "Kapak", Layout: LayoutTitle},
			{SlideNumber: 2, Title: "Giriş", Content: []string{"a", "b"}, Layout: LayoutContent},
			{SlideNumber: 3, Title: "Kapanış", Layout: LayoutClosing},
		},
	}
}

func TestPresentationValidateAccepts(t *testing.T) {
	p := validDeck()
	if err := p.Validate(); err != nil {
		t.Fatalf("valid deck rejected: %v", err)
	}
}

func TestPresentationValidateRejectsGaps(t *testing.T) {
	p := validDeck()
	p.Slides[2].SlideNumber = 5
	if err := p.Validate(); err == nil {
		t.Fatalf("expected contiguity error")
	}
}

func TestPresentationValidateRejectsUnknownLayout(t *testing.T) {
	p := validDeck()
	p.Slides[1].Layout = "hologram"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected layout error")
	}
}

func TestSlideValidateRejectsNonPositiveNumber(t *testing.T) {
	s := Slide{SlideNumber: 0, Title: "t", Layout: LayoutContent}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected slide number error")
	}
}

func TestPresentationValidateRejectsEmpty(t *testing.T) {
	p := Presentation{Title: "t"}
	if err := p.Validate(); err == nil {
		t.Fatalf("expected empty deck error")
	}
}

func TestLayoutLabels(t *testing.T) {
	if LayoutStats.Label() != "İstatistik" {
		t.Fatalf("unexpected label: %s", LayoutStats.Label())
	}
	if Layout("custom").Label() != "custom" {
		t.Fatalf("unknown layout should echo its tag")
	}
}

func TestSlideCloneIsDeep(t *testing.T) {
	s := Slide{SlideNumber: 1, Title: "t", Content: []string{"a"}, Layout: LayoutContent}
	c := s.Clone()
	c.Content[0] = "z"
	if s.Content[0] != "a" {
		t.Fatalf("clone shares content slice")
	}
}
