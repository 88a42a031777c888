package dialogue

import (
	"errors"
	"testing"

	"github.com/TolgaCulfa/sunum2/internal/ai"
)

func testRegistry() *ai.Registry {
	return ai.NewRegistry(
		&ai.ModelConfig{Name: "cry-5.2-kx3d", Label: "Cry 5.2 KX3D", Code: "mistral-large-2411", Speed: "slow", Match: []string{"5.2"}},
		&ai.ModelConfig{Name: "cry-4.6-kx1d", Label: "Cry 4.6 KX1D", Code: "mistral-medium", Speed: "medium", Match: []string{"4.6"}},
		&ai.ModelConfig{Name: "cry-2.3-ky1d", Label: "Cry 2.3 KY1D", Code: "mistral-small-2402", Speed: "fast", Match: []string{"2.3"}},
	)
}

func TestHappyPathAdvancesOneStepPerAnswer(t *testing.T) {
	s := New(testRegistry())

	answers := []string{"AI Trends", "Öğrenciler", "8 Slayt - Profesyonel"}
	for i, answer := range answers {
		if got := s.Step(); got != Step(i+1) {
			t.Fatalf("expected step %d before answer, got %d", i+1, got)
		}
		done, err := s.Submit(answer)
		if err != nil {
			t.Fatalf("answer %d rejected: %v", i+1, err)
		}
		if done {
			t.Fatalf("sequence finished early at answer %d", i+1)
		}
	}

	done, err := s.Submit("Cry 4.6 KX1D (Dengeli)")
	if err != nil {
		t.Fatalf("model answer rejected: %v", err)
	}
	if !done || !s.Done() {
		t.Fatalf("expected completed sequence")
	}

	p := s.Params()
	if p.Topic != "AI Trends" || p.Audience != "Öğrenciler" {
		t.Fatalf("unexpected params: %#v", p)
	}
	if p.SlideCount != 8 || p.Style != "professional" {
		t.Fatalf("format not parsed: %#v", p)
	}
	if p.Tier != "cry-4.6-kx1d" {
		t.Fatalf("model text containing 4.6 must resolve to the mid tier, got %s", p.Tier)
	}
}

func TestEmptyInputRejectedWithoutTransition(t *testing.T) {
	s := New(testRegistry())
	_, err := s.Submit("   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.Step() != StepTopic {
		t.Fatalf("rejected input must not transition, step=%d", s.Step())
	}
}

func TestFormatDefaults(t *testing.T) {
	cases := []struct {
		in        string
		wantCount int
		wantStyle string
	}{
		{"8 Slayt - Profesyonel", 8, "professional"},
		{"6 Slayt - Minimal", 6, "minimal"},
		{"10 Slayt - Detaylı", 10, "educational"},
		{"12 Slayt - Kapsamlı", 12, "storytelling"},
		{"uzun olsun", 8, "professional"},
		{"15 - bilinmeyen stil", 15, "professional"},
	}
	for _, tc := range cases {
		count, style := parseFormat(tc.in)
		if count != tc.wantCount || style != tc.wantStyle {
			t.Fatalf("parseFormat(%q) = (%d, %s), want (%d, %s)", tc.in, count, style, tc.wantCount, tc.wantStyle)
		}
	}
}

func TestModelDefaultsToFastest(t *testing.T) {
	s := New(testRegistry())
	for _, a := range []string{"t", "a", "8 Slayt - Profesyonel"} {
		if _, err := s.Submit(a); err != nil {
			t.Fatalf("submit %q: %v", a, err)
		}
	}
	if _, err := s.Submit("hangisi olursa"); err != nil {
		t.Fatalf("model submit: %v", err)
	}
	if got := s.Params().Tier; got != "cry-2.3-ky1d" {
		t.Fatalf("expected fastest tier fallback, got %s", got)
	}
}

func TestTerminalStateRejectsInputUntilReset(t *testing.T) {
	s := New(testRegistry())
	for _, a := range []string{"t", "a", "8 Slayt - Profesyonel", "5.2"} {
		if _, err := s.Submit(a); err != nil {
			t.Fatalf("submit %q: %v", a, err)
		}
	}
	if _, err := s.Submit("bir şey daha"); err == nil {
		t.Fatalf("terminal dialogue must reject input")
	}

	s.Reset()
	if s.Step() != StepTopic || s.Done() {
		t.Fatalf("reset must return to topic step")
	}
	if p := s.Params(); p.Topic != "" || p.Tier != "" {
		t.Fatalf("reset must discard collected fields: %#v", p)
	}
}

func TestRewindToModelKeepsEarlierAnswers(t *testing.T) {
	s := New(testRegistry())
	for _, a := range []string{"Konu", "Kitle", "8 Slayt - Profesyonel", "5.2"} {
		if _, err := s.Submit(a); err != nil {
			t.Fatalf("submit %q: %v", a, err)
		}
	}

	s.RewindToModel()
	if s.Step() != StepModel {
		t.Fatalf("expected model step after rewind, got %d", s.Step())
	}

	done, err := s.Submit("2.3")
	if err != nil || !done {
		t.Fatalf("retry should complete: done=%v err=%v", done, err)
	}
	p := s.Params()
	if p.Topic != "Konu" || p.Audience != "Kitle" || p.SlideCount != 8 {
		t.Fatalf("earlier answers must survive rewind: %#v", p)
	}
	if p.Tier != "cry-2.3-ky1d" {
		t.Fatalf("unexpected tier after retry: %s", p.Tier)
	}
}

func TestRewindBeforeCompletionIsNoOp(t *testing.T) {
	s := New(testRegistry())
	_, _ = s.Submit("Konu")
	s.RewindToModel()
	if s.Step() != StepAudience {
		t.Fatalf("rewind must not move an in-progress dialogue backwards, step=%d", s.Step())
	}
}

func TestPromptsFollowSteps(t *testing.T) {
	s := New(testRegistry())
	if got := s.Prompt(); len(got.Choices) != 4 {
		t.Fatalf("topic prompt should offer choices: %#v", got)
	}
	_, _ = s.Submit("Konu")
	_, _ = s.Submit("Kitle")
	_, _ = s.Submit("8 Slayt - Profesyonel")
	got := s.Prompt()
	if len(got.Choices) != 3 {
		t.Fatalf("model prompt should list the three tiers: %#v", got)
	}
}
