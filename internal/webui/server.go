package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/TolgaCulfa/sunum2/internal/ai"
	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/deck/export"
	"github.com/TolgaCulfa/sunum2/internal/deck/render"
	"github.com/TolgaCulfa/sunum2/internal/identity"
	"github.com/TolgaCulfa/sunum2/internal/logger"
	"github.com/TolgaCulfa/sunum2/internal/persist"
	"github.com/TolgaCulfa/sunum2/internal/quota"
)

// Generator is the slice of the composer the HTTP surface needs.
type Generator interface {
	Generate(ctx context.Context, req composer.GenerateRequest) (*deck.Presentation, error)
	Enhance(ctx context.Context, slide deck.Slide, instruction, tier string) (deck.Slide, error)
}

// Library lists and loads stored presentations.
type Library interface {
	ListPresentations(owner string) ([]persist.PresentationSummary, error)
	GetPresentation(owner, id string) (*persist.PresentationRecord, error)
}

// PDFPrinter renders print HTML to PDF bytes.
type PDFPrinter interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

type Server struct {
	generator Generator
	registry  *ai.Registry
	guard     *quota.Guard
	library   Library
	verifier  identity.Verifier
	printer   PDFPrinter
	startedAt time.Time
	upgrader  websocket.Upgrader
}

func NewServer(generator Generator, registry *ai.Registry, guard *quota.Guard, library Library, verifier identity.Verifier, printer PDFPrinter) *Server {
	if verifier == nil {
		verifier = identity.Anonymous{}
	}
	return &Server{
		generator: generator,
		registry:  registry,
		guard:     guard,
		library:   library,
		verifier:  verifier,
		printer:   printer,
		startedAt: time.Now().UTC(),
		upgrader:  websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/status", s.auth(s.handleStatus))
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("POST /api/generate", s.auth(s.handleGenerate))
	mux.HandleFunc("POST /api/enhance-slide", s.auth(s.handleEnhanceSlide))
	mux.HandleFunc("GET /api/presentations", s.auth(s.handleListPresentations))
	mux.HandleFunc("GET /api/presentations/{id}", s.auth(s.handleGetPresentation))
	mux.HandleFunc("POST /api/export/pdf", s.auth(s.handleExportPDF))
	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)
	return mux
}

type ownerHandler func(w http.ResponseWriter, r *http.Request, owner string)

// auth resolves the bearer token to an owner before the handler runs.
func (s *Server) auth(next ownerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := s.verifier.Verify(r.Context(), bearerToken(r))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "yetkisiz erişim"})
			return
		}
		next(w, r, owner)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(defaultIndexHTML))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, owner string) {
	used, limit, remaining, err := s.guard.Status(owner, persist.TodayDate())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	payload := map[string]any{
		"ok":         true,
		"started_at": s.startedAt.Format(time.RFC3339),
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
		"quota": map[string]int{
			"used":      used,
			"limit":     limit,
			"remaining": remaining,
		},
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		payload["mem_used_percent"] = vm.UsedPercent
	}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		payload["cpu_percent"] = pct[0]
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	type modelView struct {
		Name  string `json:"name"`
		Label string `json:"label"`
		Speed string `json:"speed"`
	}
	var models []modelView
	for _, m := range s.registry.ListModels() {
		models = append(models, modelView{Name: m.Name, Label: m.Label, Speed: m.SpeedText()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

type generateRequest struct {
	Topic      string `json:"topic"`
	SlideCount int    `json:"slideCount"`
	Style      string `json:"style"`
	Model      string `json:"model"`
	Audience   string `json:"audience"`
	Theme      string `json:"theme"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, owner string) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "geçersiz istek gövdesi"})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "konu boş olamaz"})
		return
	}

	p, err := s.generator.Generate(r.Context(), composer.GenerateRequest{
		Owner:      owner,
		Topic:      req.Topic,
		SlideCount: req.SlideCount,
		Style:      req.Style,
		Tier:       req.Model,
		Audience:   req.Audience,
		Theme:      req.Theme,
	})
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	used, limit, remaining, serr := s.guard.Status(owner, persist.TodayDate())
	if serr != nil {
		logger.Warn("webui: usage status after generate: %v", serr)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"presentation": p,
		"usage": map[string]int{
			"used":      used,
			"limit":     limit,
			"remaining": remaining,
		},
	})
}

func writeGenerateError(w http.ResponseWriter, err error) {
	var exceeded *quota.ExceededError
	if errors.As(err, &exceeded) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":     exceeded.Error(),
			"type":      "quota_exceeded",
			"used":      exceeded.Used,
			"limit":     exceeded.Limit,
			"remaining": exceeded.Remaining,
		})
		return
	}
	var parseErr *composer.ParseError
	if errors.As(err, &parseErr) {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "model çıktısı çözümlenemedi, lütfen tekrar deneyin",
			"type":  "parse_error",
		})
		return
	}
	var providerErr *composer.ProviderError
	if errors.As(err, &providerErr) {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "içerik sağlayıcıya ulaşılamadı, lütfen tekrar deneyin",
			"type":  "provider_error",
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

type enhanceRequest struct {
	Slide       deck.Slide `json:"slide"`
	Instruction string     `json:"instruction"`
	Model       string     `json:"model"`
}

func (s *Server) handleEnhanceSlide(w http.ResponseWriter, r *http.Request, _ string) {
	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "geçersiz istek gövdesi"})
		return
	}

	slide, err := s.generator.Enhance(r.Context(), req.Slide, req.Instruction, req.Model)
	if err != nil {
		if errors.Is(err, composer.ErrEmptyInstruction) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slide": slide})
}

func (s *Server) handleListPresentations(w http.ResponseWriter, _ *http.Request, owner string) {
	list, err := s.library.ListPresentations(owner)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if list == nil {
		list = []persist.PresentationSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presentations": list})
}

func (s *Server) handleGetPresentation(w http.ResponseWriter, r *http.Request, owner string) {
	rec, err := s.library.GetPresentation(owner, r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "sunum bulunamadı"})
		return
	}

	var p deck.Presentation
	if err := json.Unmarshal([]byte(rec.Data), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "kayıtlı sunum okunamadı"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"presentation": p, "theme": rec.Theme})
}

type exportRequest struct {
	ID           string             `json:"id"`
	Presentation *deck.Presentation `json:"presentation"`
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request, owner string) {
	if s.printer == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "pdf dışa aktarma yapılandırılmadı"})
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "geçersiz istek gövdesi"})
		return
	}

	p := req.Presentation
	if p == nil {
		if req.ID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id veya presentation gerekli"})
			return
		}
		rec, err := s.library.GetPresentation(owner, req.ID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "sunum bulunamadı"})
			return
		}
		p = new(deck.Presentation)
		if err := json.Unmarshal([]byte(rec.Data), p); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "kayıtlı sunum okunamadı"})
			return
		}
	}

	html, err := export.Build(p, render.ThemePrint).HTML()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	pdf, err := s.printer.Render(r.Context(), html)
	if err != nil {
		logger.Error("webui: pdf export: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "pdf oluşturulamadı"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Title+".pdf"))
	_, _ = w.Write(pdf)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
