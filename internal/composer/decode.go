package composer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/TolgaCulfa/sunum2/internal/deck"
)

// Providers are asked for bare JSON but regularly wrap it in markdown fences.
var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

func stripCodeFences(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

type generatedDeck struct {
	Title  string       `json:"title"`
	Slides []deck.Slide `json:"slides"`
}

// decodeDeck turns raw provider text into a generated deck, or a *ParseError.
func decodeDeck(raw string) (*generatedDeck, error) {
	payload := stripCodeFences(raw)
	if payload == "" {
		return nil, &ParseError{Err: fmt.Errorf("empty response")}
	}

	var doc generatedDeck
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Title == "" {
		return nil, &ParseError{Err: fmt.Errorf("document has no title")}
	}
	if len(doc.Slides) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("document has no slides")}
	}
	return &doc, nil
}

// slidePatch is the partial slide shape returned by Enhance. Pointer fields
// distinguish "absent" from "present but empty" so the merge stays
// non-destructive.
type slidePatch struct {
	SlideNumber *int         `json:"slideNumber"`
	Title       *string      `json:"title"`
	Content     *[]string    `json:"content"`
	Notes       *string      `json:"notes"`
	Layout      *deck.Layout `json:"layout"`
	BgColor     *string      `json:"bgColor"`
}

// decodePatch turns raw provider text into a slide patch, or a *ParseError.
func decodePatch(raw string) (*slidePatch, error) {
	payload := stripCodeFences(raw)
	if payload == "" {
		return nil, &ParseError{Err: fmt.Errorf("empty response")}
	}

	var patch slidePatch
	if err := json.Unmarshal([]byte(payload), &patch); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &patch, nil
}

// apply merges present fields of the patch over the slide, preserving the
// slide number regardless of what the provider returned.
func (p *slidePatch) apply(s deck.Slide) deck.Slide {
	out := s.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Content != nil {
		out.Content = append([]string(nil), (*p.Content)...)
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Layout != nil && p.Layout.Known() {
		out.Layout = *p.Layout
	}
	if p.BgColor != nil {
		out.BgColor = *p.BgColor
	}
	out.SlideNumber = s.SlideNumber
	return out
}
