// Package dialogue implements the fixed 4-step intake sequence that collects
// generation parameters before a deck is generated.
package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TolgaCulfa/sunum2/internal/ai"
)

// Step identifies one stage of the intake sequence.
type Step int

const (
	StepTopic Step = iota + 1
	StepAudience
	StepFormat // combined "count - style" selection
	StepModel
	// stepDone marks a completed sequence awaiting generation or reset.
	stepDone
)

// ValidationError rejects malformed intake input; the dialogue state is left
// unchanged when it is returned.
type ValidationError struct {
	Step   Step
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Reason)
}

// Params are the collected generation parameters of a completed sequence.
type Params struct {
	Topic      string
	Audience   string
	SlideCount int
	Style      string
	Tier       string
}

// Prompt is the assistant message shown for the current step, with the
// original quick-reply choices.
type Prompt struct {
	Text    string
	Choices []string
}

// styleAliases maps the lowercased style half of the format selection to a
// canonical style. Anything else defaults to professional.
var styleAliases = map[string]string{
	"minimal":     "minimal",
	"profesyonel": "professional",
	"detaylı":     "educational",
	"kapsamlı":    "storytelling",
}

// formatDelimiter splits the combined "count - style" selection.
const formatDelimiter = " - "

// defaultSlideCount backs unparsable count selections.
const defaultSlideCount = 8

// State is one user's intake dialogue. Not safe for concurrent use; each
// session owns exactly one.
type State struct {
	step     Step
	registry *ai.Registry

	topic      string
	audience   string
	slideCount int
	style      string
	tier       string
}

// New starts a dialogue at the topic step.
func New(registry *ai.Registry) *State {
	return &State{step: StepTopic, registry: registry}
}

// Step returns the current step; Done reports a completed sequence.
func (s *State) Step() Step { return s.step }
func (s *State) Done() bool { return s.step == stepDone }

// Submit feeds one user answer into the sequence. An accepted answer advances
// exactly one step; rejected input performs no transition. done reports that
// the final step was just accepted and generation should be triggered.
func (s *State) Submit(input string) (done bool, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return false, &ValidationError{Step: s.step, Reason: "boş giriş kabul edilmez"}
	}

	switch s.step {
	case StepTopic:
		s.topic = input
		s.step = StepAudience
	case StepAudience:
		s.audience = input
		s.step = StepFormat
	case StepFormat:
		s.slideCount, s.style = parseFormat(input)
		s.step = StepModel
	case StepModel:
		s.tier = s.registry.MatchModel(input).Name
		s.step = stepDone
		return true, nil
	default:
		return false, &ValidationError{Step: s.step, Reason: "diyalog tamamlandı, yeni sunum için sıfırlayın"}
	}
	return false, nil
}

// parseFormat splits a "count - style" selection; unparsable halves fall back
// to the documented defaults (8 slides, professional).
func parseFormat(input string) (count int, style string) {
	count = defaultSlideCount
	style = "professional"

	first, second, _ := strings.Cut(input, formatDelimiter)
	if n := leadingInt(first); n > 0 {
		count = n
	}
	if mapped, ok := styleAliases[strings.ToLower(strings.TrimSpace(second))]; ok {
		style = mapped
	}
	return count, style
}

// leadingInt parses the integer prefix of s ("8 Slayt" -> 8), 0 when absent.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Params returns the collected parameters. Meaningful once Done.
func (s *State) Params() Params {
	return Params{
		Topic:      s.topic,
		Audience:   s.audience,
		SlideCount: s.slideCount,
		Style:      s.style,
		Tier:       s.tier,
	}
}

// Reset discards everything and returns to the topic step.
func (s *State) Reset() {
	*s = State{step: StepTopic, registry: s.registry}
}

// RewindToModel returns a completed or in-flight dialogue to the
// model-selection step so a failed generation can be retried without
// re-collecting earlier answers.
func (s *State) RewindToModel() {
	if s.step > StepModel {
		s.step = StepModel
	}
}

// Prompt returns the assistant message for the current step.
func (s *State) Prompt() Prompt {
	switch s.step {
	case StepTopic:
		return Prompt{
			Text:    "Merhaba! Muhteşem bir sunum oluşturmana yardımcı olacağım.\n\nSunumunun konusu ne olsun?",
			Choices: []string{"Yapay Zeka", "Teknoloji Trendleri", "İş Planı", "Eğitim"},
		}
	case StepAudience:
		return Prompt{
			Text:    fmt.Sprintf("%q harika bir konu!\n\nBu sunum kime hitap edecek?", s.topic),
			Choices: []string{"İş Dünyası", "Öğrenciler", "Genel Kitle", "Teknik Ekip"},
		}
	case StepFormat:
		return Prompt{
			Text:    fmt.Sprintf("%s için optimize edeceğim!\n\nKaç slayt olsun ve hangi stili tercih edersin?", s.audience),
			Choices: []string{"6 Slayt - Minimal", "8 Slayt - Profesyonel", "10 Slayt - Detaylı", "12 Slayt - Kapsamlı"},
		}
	case StepModel:
		choices := make([]string, 0, 3)
		for _, m := range s.registry.ListModels() {
			choices = append(choices, fmt.Sprintf("%s (%s)", m.Label, m.SpeedText()))
		}
		return Prompt{
			Text:    "Mükemmel! Hangi modeli kullanmak istersin?",
			Choices: choices,
		}
	default:
		return Prompt{Text: "Sunum oluşturuluyor... Bu biraz zaman alabilir."}
	}
}
