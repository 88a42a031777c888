// Package render composes slides into structured content blocks.
//
// Render is a pure function: the same (slide, theme) input always produces the
// same block sequence, and rendering never touches the slide itself. Theme and
// layout are orthogonal axes; blocks carry structure only and leave visual
// tokens to the theme.
package render

import (
	"strings"

	"github.com/TolgaCulfa/sunum2/internal/deck"
)

// BlockKind discriminates the block union.
type BlockKind string

const (
	BlockHeading     BlockKind = "heading"
	BlockSubtitle    BlockKind = "subtitle"
	BlockQuote       BlockKind = "quote"
	BlockAttribution BlockKind = "attribution"
	BlockStatCard    BlockKind = "stat-card"
	BlockColumn      BlockKind = "column"
	BlockParagraph   BlockKind = "paragraph"
	BlockBulletList  BlockKind = "bullet-list"
)

// Block is one composed content region of a rendered slide.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Items []string  `json:"items,omitempty"`
	// Value and Desc are set for stat-card blocks only.
	Value string `json:"value,omitempty"`
	Desc  string `json:"desc"`
}

// Slide is the rendered form of one deck slide.
type Slide struct {
	Number  int         `json:"number"`
	Layout  deck.Layout `json:"layout"`
	Theme   string      `json:"theme"`
	BgColor string      `json:"bgColor,omitempty"`
	Blocks  []Block     `json:"blocks"`
}

// AttributionPrefix is prepended to a quote's attribution line.
const AttributionPrefix = "— "

// Render composes a slide into content blocks for the given theme.
func Render(s deck.Slide, th Theme) Slide {
	out := Slide{
		Number:  s.SlideNumber,
		Layout:  s.Layout,
		Theme:   th.Name,
		BgColor: s.BgColor,
	}

	switch s.Layout {
	case deck.LayoutTitle:
		out.Blocks = append(out.Blocks, Block{Kind: BlockHeading, Text: s.Title})
		if len(s.Content) > 0 {
			out.Blocks = append(out.Blocks, Block{Kind: BlockSubtitle, Text: s.Content[0]})
		}

	case deck.LayoutQuote:
		out.Blocks = append(out.Blocks, Block{Kind: BlockHeading, Text: s.Title})
		quote := ""
		if len(s.Content) > 0 {
			quote = s.Content[0]
		}
		out.Blocks = append(out.Blocks, Block{Kind: BlockQuote, Text: quote})
		if len(s.Content) > 1 && s.Content[1] != "" {
			out.Blocks = append(out.Blocks, Block{Kind: BlockAttribution, Text: AttributionPrefix + s.Content[1]})
		}

	case deck.LayoutStats:
		out.Blocks = append(out.Blocks, Block{Kind: BlockHeading, Text: s.Title})
		for _, item := range s.Content {
			value, desc, _ := strings.Cut(item, "|")
			out.Blocks = append(out.Blocks, Block{Kind: BlockStatCard, Value: value, Desc: desc})
		}

	case deck.LayoutTwoColumn:
		out.Blocks = append(out.Blocks, Block{Kind: BlockHeading, Text: s.Title})
		half := (len(s.Content) + 1) / 2
		left := append([]string(nil), s.Content[:half]...)
		right := append([]string(nil), s.Content[half:]...)
		out.Blocks = append(out.Blocks,
			Block{Kind: BlockColumn, Items: left},
			Block{Kind: BlockColumn, Items: right},
		)

	case deck.LayoutClosing:
		out.Blocks = append(out.Blocks, Block{Kind: BlockHeading, Text: s.Title})
		if len(s.Content) > 0 {
			out.Blocks = append(out.Blocks, Block{Kind: BlockParagraph, Text: strings.Join(s.Content, "\n")})
		}

	case deck.LayoutContent, deck.LayoutImageText:
		out.Blocks = bulleted(s)

	default:
		// Unknown layouts degrade to the content layout.
		out.Blocks = bulleted(s)
	}

	return out
}

func bulleted(s deck.Slide) []Block {
	return []Block{
		{Kind: BlockHeading, Text: s.Title},
		{Kind: BlockBulletList, Items: append([]string(nil), s.Content...)},
	}
}
