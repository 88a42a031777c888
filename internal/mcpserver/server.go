// Package mcpserver exposes presentation generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/deck"
	"github.com/TolgaCulfa/sunum2/internal/persist"
	"github.com/TolgaCulfa/sunum2/internal/quota"
)

// Generator is the slice of the composer the tool surface needs.
type Generator interface {
	Generate(ctx context.Context, req composer.GenerateRequest) (*deck.Presentation, error)
	Enhance(ctx context.Context, slide deck.Slide, instruction, tier string) (deck.Slide, error)
}

// Server exposes generate, enhance and usage tools to MCP clients. Tool
// callers share one fixed owner because stdio has a single local user.
type Server struct {
	generator Generator
	guard     *quota.Guard
	owner     string
	mcpServer *server.MCPServer
}

func NewServer(generator Generator, guard *quota.Guard, owner string, version string) *Server {
	if owner == "" {
		owner = "mcp"
	}
	s := &Server{
		generator: generator,
		guard:     guard,
		owner:     owner,
		mcpServer: server.NewMCPServer("sunum2", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout and blocks until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("generate_presentation",
		mcp.WithDescription("Verilen konu için yapay zeka destekli bir sunum oluşturur."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("Sunum konusu")),
		mcp.WithNumber("slide_count", mcp.Description("Slayt sayısı (varsayılan 8)")),
		mcp.WithString("style", mcp.Description("Sunum stili: professional, creative, educational, minimal, storytelling")),
		mcp.WithString("model", mcp.Description("Model seviyesi, örn. cry-5.2-kx3d")),
		mcp.WithString("audience", mcp.Description("Hedef kitle")),
	), s.handleGenerate)

	s.mcpServer.AddTool(mcp.NewTool("enhance_slide",
		mcp.WithDescription("Var olan bir slaytı verilen talimata göre geliştirir."),
		mcp.WithString("slide_json", mcp.Required(), mcp.Description("Slaytın JSON hali")),
		mcp.WithString("instruction", mcp.Required(), mcp.Description("Geliştirme talimatı")),
		mcp.WithString("model", mcp.Description("Model seviyesi")),
	), s.handleEnhance)

	s.mcpServer.AddTool(mcp.NewTool("usage_status",
		mcp.WithDescription("Günlük slayt kotasının durumunu döndürür."),
	), s.handleUsage)
}

func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, ok := req.Params.Arguments["topic"].(string)
	if !ok || topic == "" {
		return mcp.NewToolResultError("topic is required"), nil
	}

	genReq := composer.GenerateRequest{Owner: s.owner, Topic: topic}
	if n, ok := req.Params.Arguments["slide_count"].(float64); ok && n > 0 {
		genReq.SlideCount = int(n)
	}
	if style, ok := req.Params.Arguments["style"].(string); ok {
		genReq.Style = style
	}
	if model, ok := req.Params.Arguments["model"].(string); ok {
		genReq.Tier = model
	}
	if audience, ok := req.Params.Arguments["audience"].(string); ok {
		genReq.Audience = audience
	}

	p, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sunum oluşturulamadı: %v", err)), nil
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sunum kodlanamadı: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleEnhance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slideJSON, ok := req.Params.Arguments["slide_json"].(string)
	if !ok || slideJSON == "" {
		return mcp.NewToolResultError("slide_json is required"), nil
	}
	instruction, ok := req.Params.Arguments["instruction"].(string)
	if !ok || instruction == "" {
		return mcp.NewToolResultError("instruction is required"), nil
	}
	model, _ := req.Params.Arguments["model"].(string)

	var slide deck.Slide
	if err := json.Unmarshal([]byte(slideJSON), &slide); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("slide_json çözümlenemedi: %v", err)), nil
	}

	enhanced, err := s.generator.Enhance(ctx, slide, instruction, model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("slayt geliştirilemedi: %v", err)), nil
	}

	data, err := json.MarshalIndent(enhanced, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("slayt kodlanamadı: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleUsage(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	used, limit, remaining, err := s.guard.Status(s.owner, persist.TodayDate())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("kota durumu okunamadı: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Bugün %d / %d slayt kullanıldı, %d slayt kaldı.", used, limit, remaining)), nil
}
