package internal

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the pipeline as Model Context Protocol tools so AI
// assistants can turn videos into articles.
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance.
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytblog-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()
	return s
}

func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("generate_article",
		mcp.WithDescription("Generate a written article (title and summary) from a YouTube video. Tries captions, subtitle scraping, and Whisper audio transcription in order, then synthesizes the article with the configured language model."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or ID"),
			mcp.Required(),
		),
	), s.handleGenerateArticle)

	s.mcpServer.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Get the transcript of a YouTube video without generating an article. Reports which source produced it (captions, subtitle_scrape, or audio_transcription)."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)
}

func (s *MCPServer) handleGenerateArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	outcome := s.app.Generate(ctx, url)
	if outcome.Status != StatusOK {
		return mcp.NewToolResultError(outcome.Message), nil
	}

	text := fmt.Sprintf("# %s\n\n%s\n", outcome.Article.Title, outcome.Article.Summary)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}, nil
}

func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	result := s.app.AcquireTranscript(ctx, url)
	if !result.OK {
		return mcp.NewToolResultError(MsgNoTranscript), nil
	}

	text := fmt.Sprintf("Source: %s\n\n%s", result.Source, result.Text)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}, nil
}

// Start starts the MCP server using the specified transport.
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}
