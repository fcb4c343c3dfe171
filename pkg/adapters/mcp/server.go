package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// ApplyArgs are the arguments of the apply tool.
type ApplyArgs struct {
	Automaton string `mapstructure:"automaton"`
	Word      string `mapstructure:"word"`
	Direction string `mapstructure:"direction"`
	Limit     int    `mapstructure:"limit"`
	Tokens    bool   `mapstructure:"tokens"`
}

// TokenizeArgs are the arguments of the tokenize tool.
type TokenizeArgs struct {
	Automaton string `mapstructure:"automaton"`
	Word      string `mapstructure:"word"`
}

// ApplyResponse is the structured result of the apply tool.
type ApplyResponse struct {
	Results   []domain.Result `json:"results" jsonschema_description:"Transductions, cheapest first"`
	Truncated bool            `json:"truncated" jsonschema_description:"True when the search budget stopped the lookup early"`
}

// TokenizeResponse is the structured result of the tokenize tool.
type TokenizeResponse struct {
	Tokens []string `json:"tokens" jsonschema_description:"Longest-match segmentation of the word"`
}

// ListResponse is the structured result of the list_automata tool.
type ListResponse struct {
	Automata []string `json:"automata" jsonschema_description:"Names accepted by the automaton argument"`
}

// Server wraps a Transducer and exposes it as an MCP Server.
type Server struct {
	engine    ports.Transducer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Transducer) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("attlookup-mcp", strings.TrimSpace(attlookup.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: apply
	applyTool := mcp.NewTool("apply",
		mcp.WithDescription("Apply a word to a finite-state transducer. Direction 'up' analyses a surface form, 'down' generates one."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name (see list_automata)")),
		mcp.WithString("word", mcp.Required(), mcp.Description("Input word")),
		mcp.WithString("direction", mcp.Enum("up", "down"), mcp.Description("Application direction (default down)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (0 for all)")),
		mcp.WithBoolean("tokens", mcp.Description("Include the emitted symbols of each result")),
		mcp.WithOutputSchema[ApplyResponse](),
	)
	s.mcpServer.AddTool(applyTool, mcp.NewStructuredToolHandler(s.handleApply))

	// TOOL: tokenize
	tokenizeTool := mcp.NewTool("tokenize",
		mcp.WithDescription("Split a word into the multi-character symbols of an automaton's alphabet."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("word", mcp.Required(), mcp.Description("Input word")),
		mcp.WithOutputSchema[TokenizeResponse](),
	)
	s.mcpServer.AddTool(tokenizeTool, mcp.NewStructuredToolHandler(s.handleTokenize))

	// TOOL: list_automata
	listTool := mcp.NewTool("list_automata",
		mcp.WithDescription("List the automata available to apply and tokenize."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))
}

func decodeArgs(args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ApplyResponse, error) {
	var in ApplyArgs
	if err := decodeArgs(args, &in); err != nil {
		return ApplyResponse{}, err
	}
	dir, err := domain.ParseDirection(in.Direction)
	if err != nil {
		return ApplyResponse{}, err
	}

	res, err := s.engine.Lookup(ctx, domain.LookupRequest{
		Automaton:  in.Automaton,
		Word:       in.Word,
		Direction:  dir,
		Limit:      in.Limit,
		KeepTokens: in.Tokens,
	})
	if err != nil {
		return ApplyResponse{}, fmt.Errorf("apply failed: %w", err)
	}
	return ApplyResponse{Results: res.Results, Truncated: res.Truncated}, nil
}

func (s *Server) handleTokenize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TokenizeResponse, error) {
	var in TokenizeArgs
	if err := decodeArgs(args, &in); err != nil {
		return TokenizeResponse{}, err
	}
	tokens, err := s.engine.Tokenize(ctx, in.Automaton, in.Word)
	if err != nil {
		return TokenizeResponse{}, fmt.Errorf("tokenize failed: %w", err)
	}
	if tokens == nil {
		tokens = []string{}
	}
	return TokenizeResponse{Tokens: tokens}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return ListResponse{Automata: names}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: attlookup://automata
	s.mcpServer.AddResource(mcp.NewResource("attlookup://automata", "Available automata",
		mcp.WithMIMEType("application/json"),
	), s.readAutomata)
}

func (s *Server) readAutomata(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	jsonBytes, _ := json.Marshal(ListResponse{Automata: names})

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "attlookup://automata",
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
