// Package composer orchestrates generation and enhancement against the
// content provider, the quota guard and the storage collaborator.
package composer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TolgaCulfa/sunum2/internal/ai"
	"github.com/TolgaCulfa/sunum2/internal/debug"
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/logger"
	"github.com/TolgaCulfa/sunum2/internal/quota"
)

// DefaultSlideCount is used when a request carries no usable count.
const DefaultSlideCount = 8

// Store is the storage collaborator consumed on successful generation.
type Store interface {
	SavePresentation(p *deck.Presentation, theme string) error
}

// Composer wires the provider, quota guard and store together.
type Composer struct {
	completer ai.Completer
	registry  *ai.Registry
	guard     *quota.Guard
	store     Store

	now func() time.Time
}

func New(completer ai.Completer, registry *ai.Registry, guard *quota.Guard, store Store) *Composer {
	return &Composer{
		completer: completer,
		registry:  registry,
		guard:     guard,
		store:     store,
		now:       time.Now,
	}
}

// GenerateRequest collects the intake parameters for one deck.
type GenerateRequest struct {
	Owner      string
	Topic      string
	SlideCount int
	Style      string
	Tier       string
	Audience   string
	Theme      string
}

// Generate runs the full generation flow: reserve quota, call the provider,
// decode and validate the deck, commit quota, persist. Quota is released
// untouched on every failure path.
func (c *Composer) Generate(ctx context.Context, req GenerateRequest) (*deck.Presentation, error) {
	count := req.SlideCount
	if count <= 0 {
		count = DefaultSlideCount
	}

	today := c.now().Format("2006-01-02")
	res, err := c.guard.Reserve(req.Owner, today, count)
	if err != nil {
		return nil, err
	}

	code := c.registry.ResolveCode(req.Tier)
	prompt := generationPrompt(req.Topic, count, req.Style, req.Audience)

	raw, err := c.completer.Complete(ctx, code, prompt)
	if err != nil {
		res.Release()
		return nil, &ProviderError{Tier: req.Tier, Err: err}
	}
	debug.Log("generate raw output (%s): %s", code, raw)

	doc, err := decodeDeck(raw)
	if err != nil {
		res.Release()
		return nil, err
	}

	p := &deck.Presentation{
		ID:        uuid.NewString(),
		Owner:     req.Owner,
		Title:     doc.Title,
		Slides:    doc.Slides,
		CreatedAt: c.now(),
	}
	// Providers occasionally misnumber slides; order is authoritative.
	for i := range p.Slides {
		p.Slides[i].SlideNumber = i + 1
	}
	if err := p.Validate(); err != nil {
		res.Release()
		return nil, &ParseError{Err: err}
	}

	if err := res.Commit(); err != nil {
		logger.Error("[Composer] usage commit failed for %s: %v", req.Owner, err)
	}

	if err := c.store.SavePresentation(p, req.Theme); err != nil {
		// Durability is not guaranteed here; the deck is still returned.
		logger.Warn("[Composer] failed to persist presentation %s: %v", p.ID, err)
	}

	logger.Info("[Composer] generated %q (%d slides) for %s", p.Title, len(p.Slides), req.Owner)
	return p, nil
}

// Enhance rewrites one slide per the instruction. The input slide is left
// unmodified on any failure; quota is not metered for enhancement.
func (c *Composer) Enhance(ctx context.Context, slide deck.Slide, instruction, tier string) (deck.Slide, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return deck.Slide{}, ErrEmptyInstruction
	}

	code := c.registry.ResolveCode(tier)
	raw, err := c.completer.Complete(ctx, code, enhancePrompt(slide, instruction))
	if err != nil {
		return deck.Slide{}, &ProviderError{Tier: tier, Err: err}
	}
	debug.Log("enhance raw output (%s): %s", code, raw)

	patch, err := decodePatch(raw)
	if err != nil {
		return deck.Slide{}, err
	}

	return patch.apply(slide), nil
}
