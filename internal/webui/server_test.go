package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TolgaCulfa/sunum2/internal/ai"
	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/identity"
	"github.com/TolgaCulfa/sunum2/internal/persist"
	"github.com/TolgaCulfa/sunum2/internal/quota"
)

type fakeGenerator struct {
	generateErr error
	lastReq     composer.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req composer.GenerateRequest) (*deck.Presentation, error) {
	f.lastReq = req
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &deck.Presentation{
		ID:    "p1",
		Owner: req.Owner,
		Title: req.Topic,
		Slides: []deck.Slide{
			{SlideNumber: 1, Title: req.Topic, Content: []string{"giriş"}, Layout: deck.LayoutTitle},
		},
	}, nil
}

func (f *fakeGenerator) Enhance(_ context.Context, slide deck.Slide, instruction, _ string) (deck.Slide, error) {
	if strings.TrimSpace(instruction) == "" {
		return deck.Slide{}, composer.ErrEmptyInstruction
	}
	slide.Title = "✨ " + slide.Title
	return slide, nil
}

type memUsage struct{ counts map[string]int }

func (m *memUsage) Usage(owner, date string) (int, error) { return m.counts[owner+"|"+date], nil }
func (m *memUsage) IncrementUsage(owner, date string, amount int) error {
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[owner+"|"+date] += amount
	return nil
}

type memLibrary struct {
	records map[string]*persist.PresentationRecord
}

func (m *memLibrary) ListPresentations(owner string) ([]persist.PresentationSummary, error) {
	var out []persist.PresentationSummary
	for _, rec := range m.records {
		if rec.Owner == owner {
			out = append(out, persist.PresentationSummary{ID: rec.ID, Title: rec.Title, Theme: rec.Theme})
		}
	}
	return out, nil
}

func (m *memLibrary) GetPresentation(owner, id string) (*persist.PresentationRecord, error) {
	rec, ok := m.records[id]
	if !ok || rec.Owner != owner {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func testServer(gen *fakeGenerator) *Server {
	registry := ai.NewRegistry(
		&ai.ModelConfig{Name: "cry-2.3-ky1d", Label: "Cry 2.3 KY1D", Code: "mistral-small-2402", Speed: "fast"},
	)
	guard := quota.NewGuard(&memUsage{}, 20)
	verifier := identity.NewStaticVerifier(map[string]string{"tok-1": "ayse"})
	library := &memLibrary{records: map[string]*persist.PresentationRecord{}}
	return NewServer(gen, registry, guard, library, verifier, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStatusEndpoint(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodGet, "/api/status", "tok-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "\"ok\":true") {
		t.Fatalf("unexpected status payload: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "\"limit\":20") {
		t.Fatalf("expected quota block in payload: %s", rr.Body.String())
	}
}

func TestStatusRequiresToken(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodGet, "/api/status", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	gen := &fakeGenerator{}
	handler := testServer(gen).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/generate", "tok-1", map[string]any{
		"topic":      "Uzay Madenciliği",
		"slideCount": 6,
		"style":      "creative",
		"model":      "cry-2.3-ky1d",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if gen.lastReq.Owner != "ayse" {
		t.Fatalf("expected owner from token, got %q", gen.lastReq.Owner)
	}
	if !strings.Contains(rr.Body.String(), "Uzay Madenciliği") {
		t.Fatalf("presentation missing from payload: %s", rr.Body.String())
	}
}

func TestGenerateRejectsEmptyTopic(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/generate", "tok-1", map[string]any{"topic": "  "})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGenerateQuotaExceededMapsTo429(t *testing.T) {
	gen := &fakeGenerator{generateErr: &quota.ExceededError{Owner: "ayse", Used: 18, Limit: 20, Remaining: 2, Requested: 8}}
	handler := testServer(gen).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/generate", "tok-1", map[string]any{"topic": "x"})
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload struct {
		Type      string `json:"type"`
		Used      int    `json:"used"`
		Remaining int    `json:"remaining"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Type != "quota_exceeded" || payload.Used != 18 || payload.Remaining != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestGenerateProviderErrorMapsTo502(t *testing.T) {
	gen := &fakeGenerator{generateErr: &composer.ProviderError{Tier: "cry-2.3-ky1d", Err: errors.New("timeout")}}
	handler := testServer(gen).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/generate", "tok-1", map[string]any{"topic": "x"})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "provider_error") {
		t.Fatalf("expected provider_error type: %s", rr.Body.String())
	}
}

func TestEnhanceEndpoint(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/enhance-slide", "tok-1", map[string]any{
		"slide":       deck.Slide{SlideNumber: 2, Title: "Başlık", Content: []string{"a"}, Layout: deck.LayoutContent},
		"instruction": "daha detaylı yap",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "✨ Başlık") {
		t.Fatalf("unexpected enhance payload: %s", rr.Body.String())
	}
}

func TestEnhanceRejectsEmptyInstruction(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/enhance-slide", "tok-1", map[string]any{
		"slide":       deck.Slide{SlideNumber: 1, Title: "x", Layout: deck.LayoutContent},
		"instruction": "   ",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPresentationEndpoints(t *testing.T) {
	gen := &fakeGenerator{}
	server := testServer(gen)
	data, _ := json.Marshal(&deck.Presentation{
		ID: "p9", Owner: "ayse", Title: "Eski Sunum",
		Slides: []deck.Slide{{SlideNumber: 1, Title: "Eski", Layout: deck.LayoutTitle}},
	})
	server.library.(*memLibrary).records["p9"] = &persist.PresentationRecord{
		ID: "p9", Owner: "ayse", Title: "Eski Sunum", Data: string(data), Theme: "dark",
	}
	handler := server.Handler()

	rr := doJSON(t, handler, http.MethodGet, "/api/presentations", "tok-1", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Eski Sunum") {
		t.Fatalf("list failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, handler, http.MethodGet, "/api/presentations/p9", "tok-1", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "\"theme\":\"dark\"") {
		t.Fatalf("get failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, handler, http.MethodGet, "/api/presentations/yok", "tok-1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestModelsEndpointIsPublic(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodGet, "/api/models", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Cry 2.3 KY1D") {
		t.Fatalf("models missing: %s", rr.Body.String())
	}
}

func TestExportWithoutPrinterIsUnavailable(t *testing.T) {
	handler := testServer(&fakeGenerator{}).Handler()

	rr := doJSON(t, handler, http.MethodPost, "/api/export/pdf", "tok-1", map[string]any{"id": "p9"})
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
