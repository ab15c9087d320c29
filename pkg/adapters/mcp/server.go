package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Anmol09876/abacus"
	"github.com/Anmol09876/abacus/internal/logging"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// EvaluateResponse is the structured output of the evaluate tool.
type EvaluateResponse struct {
	Expression string `json:"expression" jsonschema_description:"The evaluated expression"`
	Result     string `json:"result" jsonschema_description:"The formatted result"`
	Mode       string `json:"mode" jsonschema_description:"Angle mode used for evaluation"`
}

// StateResponse is the structured output of session-mutating tools.
type StateResponse struct {
	State *domain.State `json:"state" jsonschema_description:"The session state after the operation"`
}

// Server exposes calculator sessions as an MCP server.
type Server struct {
	calc      *abacus.Calculator
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP server instance.
func NewServer(calc *abacus.Calculator, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		calc:      calc,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("abacus-mcp", strings.TrimSpace(abacus.Version)),
	}
	for _, opt := range opts {
		opt(s)
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
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

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

// -- Tool argument structs, decoded via mapstructure --

type evaluateArgs struct {
	Expression string `mapstructure:"expression"`
	Mode       string `mapstructure:"mode"`
}

type pressKeysArgs struct {
	SessionID string   `mapstructure:"session_id"`
	Keys      []string `mapstructure:"keys"`
	Calculate bool     `mapstructure:"calculate"`
}

type memoryArgs struct {
	SessionID string `mapstructure:"session_id"`
	Slot      string `mapstructure:"slot"`
	Value     string `mapstructure:"value"`
}

type historyArgs struct {
	SessionID string `mapstructure:"session_id"`
	Limit     int    `mapstructure:"limit"`
}

func decodeArgs[T any](args map[string]interface{}) (T, error) {
	var out T
	if err := mapstructure.Decode(args, &out); err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}

func (s *Server) registerTools() {
	// TOOL: evaluate
	evaluateTool := mcp.NewTool("evaluate",
		mcp.WithDescription("Evaluate a mathematical expression without touching any session. Supports arithmetic, trig, logarithms, factorial, constants pi/e/tau."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The expression to evaluate, e.g. '2+3*4' or 'sin(30)'")),
		mcp.WithString("mode", mcp.Description("Angle mode: DEG, RAD or GRAD (default DEG)")),
		mcp.WithOutputSchema[EvaluateResponse](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	// TOOL: press_keys
	pressTool := mcp.NewTool("press_keys",
		mcp.WithDescription("Append keypad tokens to a session's input, optionally evaluating afterwards. Creates the session if it does not exist."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithArray("keys", mcp.Required(), mcp.Description("Keypad tokens in press order, e.g. [\"2\", \"+\", \"3\"]")),
		mcp.WithBoolean("calculate", mcp.Description("Evaluate the input after pressing the keys")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(pressTool, mcp.NewStructuredToolHandler(s.handlePressKeys))

	// TOOL: memory_store
	storeTool := mcp.NewTool("memory_store",
		mcp.WithDescription("Store into a memory slot. Without a value the session's current value is accumulated (M+ semantics); with a value the slot is overwritten."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("slot", mcp.Required(), mcp.Description("Single-letter slot name")),
		mcp.WithString("value", mcp.Description("Explicit decimal value to store")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(storeTool, mcp.NewStructuredToolHandler(s.handleMemoryStore))

	// TOOL: memory_recall
	recallTool := mcp.NewTool("memory_recall",
		mcp.WithDescription("Recall a memory slot into the session's input."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("slot", mcp.Required(), mcp.Description("Single-letter slot name")),
		mcp.WithOutputSchema[StateResponse](),
	)
	s.mcpServer.AddTool(recallTool, mcp.NewStructuredToolHandler(s.handleMemoryRecall))

	// TOOL: history
	s.mcpServer.AddTool(mcp.NewTool("history",
		mcp.WithDescription("Get a session's calculation history, newest first."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default all)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs[historyArgs](request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		state, err := s.sessions.Load(ctx, args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load session: %v", err)), nil
		}

		history := state.History
		if args.Limit > 0 && args.Limit < len(history) {
			history = history[:args.Limit]
		}
		jsonBytes, _ := json.Marshal(history)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, rawArgs map[string]interface{}) (EvaluateResponse, error) {
	args, err := decodeArgs[evaluateArgs](rawArgs)
	if err != nil {
		return EvaluateResponse{}, err
	}

	mode := domain.ModeDeg
	if args.Mode != "" {
		mode, err = domain.ParseTrigMode(args.Mode)
		if err != nil {
			return EvaluateResponse{}, err
		}
	}

	result, err := s.calc.Evaluate(args.Expression, mode)
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("evaluate failed: %w", err)
	}

	return EvaluateResponse{
		Expression: args.Expression,
		Result:     result,
		Mode:       string(mode),
	}, nil
}

func (s *Server) handlePressKeys(ctx context.Context, request mcp.CallToolRequest, rawArgs map[string]interface{}) (StateResponse, error) {
	args, err := decodeArgs[pressKeysArgs](rawArgs)
	if err != nil {
		return StateResponse{}, err
	}
	if args.SessionID == "" {
		return StateResponse{}, fmt.Errorf("session_id is required")
	}

	if _, err := s.sessions.LoadOrStart(ctx, args.SessionID); err != nil {
		return StateResponse{}, fmt.Errorf("start session: %w", err)
	}

	state, err := s.sessions.Update(ctx, args.SessionID, func(st *domain.State) error {
		for _, key := range args.Keys {
			s.calc.Press(st, key)
		}
		if args.Calculate {
			if err := s.calc.Calculate(st); err != nil {
				// The user-visible error lives in the state; keep
				// the session usable and report it there.
				s.logger.Warn("press_keys: calculation failed", "session_id", args.SessionID, "err", err)
			}
		}
		return nil
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("press keys: %w", err)
	}
	return StateResponse{State: state}, nil
}

func (s *Server) handleMemoryStore(ctx context.Context, request mcp.CallToolRequest, rawArgs map[string]interface{}) (StateResponse, error) {
	args, err := decodeArgs[memoryArgs](rawArgs)
	if err != nil {
		return StateResponse{}, err
	}

	state, err := s.sessions.Update(ctx, args.SessionID, func(st *domain.State) error {
		if args.Value != "" {
			return s.calc.MemoryStoreValue(st, args.Slot, args.Value)
		}
		return s.calc.MemoryStore(st, args.Slot)
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("memory store: %w", err)
	}
	return StateResponse{State: state}, nil
}

func (s *Server) handleMemoryRecall(ctx context.Context, request mcp.CallToolRequest, rawArgs map[string]interface{}) (StateResponse, error) {
	args, err := decodeArgs[memoryArgs](rawArgs)
	if err != nil {
		return StateResponse{}, err
	}

	state, err := s.sessions.Update(ctx, args.SessionID, func(st *domain.State) error {
		return s.calc.MemoryRecall(st, args.Slot)
	})
	if err != nil {
		return StateResponse{}, fmt.Errorf("memory recall: %w", err)
	}
	return StateResponse{State: state}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: abacus://sessions
	s.mcpServer.AddResource(mcp.NewResource("abacus://sessions", "Active Calculator Sessions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sessions.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "abacus://sessions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
