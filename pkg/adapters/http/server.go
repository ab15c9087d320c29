package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Anmol09876/abacus"
	"github.com/Anmol09876/abacus/internal/engine"
	"github.com/Anmol09876/abacus/internal/logging"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Server exposes calculator sessions over a REST API.
type Server struct {
	engine   *engine.Engine
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEngine overrides the calculation engine.
func WithEngine(eng *engine.Engine) Option {
	return func(s *Server) {
		s.engine = eng
	}
}

// NewServer creates a Server backed by the given session manager.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:   engine.New(),
		sessions: sessions,
		logger:   logging.NewNop(),
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.getHealth)
		r.Get("/info", s.getInfo)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Get("/", s.listSessions)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.deleteSession)

				r.Post("/input", s.pressInput)
				r.Post("/backspace", s.backspace)
				r.Post("/clear", s.clear)
				r.Post("/clear-all", s.clearAll)
				r.Post("/calculate", s.calculate)
				r.Post("/mode", s.setMode)

				r.Get("/history", s.getHistory)
				r.Delete("/history", s.clearHistory)

				r.Route("/memory", func(r chi.Router) {
					r.Get("/", s.getMemory)
					r.Delete("/", s.clearAllMemory)
					r.Get("/{slot}", s.getMemorySlot)
					r.Post("/{slot}", s.storeMemory)
					r.Post("/{slot}/recall", s.recallMemory)
					r.Delete("/{slot}", s.clearMemory)
				})
			})
		})
	})

	return enableCORS(r)
}

// observe records per-route request latency.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Abacus API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// -- Request/response bodies --

type createSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

type inputRequest struct {
	Keys string `json:"keys"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type storeMemoryRequest struct {
	// Value, when set, overwrites the slot. Otherwise the session's
	// current value is accumulated into it.
	Value string `json:"value,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// -- Handlers --

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.fail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sessionID := strings.TrimSpace(body.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state, err := s.sessions.LoadOrStart(r.Context(), sessionID)
	if err != nil {
		s.serverError(w, "create session", err)
		return
	}

	if body.Mode != "" {
		mode, err := domain.ParseTrigMode(body.Mode)
		if err != nil {
			s.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		state, err = s.update(r.Context(), sessionID, func(st *domain.State) error {
			s.engine.SetMode(st, mode)
			return nil
		})
		if err != nil {
			s.serverError(w, "create session", err)
			return
		}
	}

	s.respond(w, http.StatusCreated, state)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.serverError(w, "list sessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.metrics.ActiveSessionsSeen.Set(float64(len(ids)))
	s.respond(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.notFoundOr500(w, "get session", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.serverError(w, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pressInput(w http.ResponseWriter, r *http.Request) {
	var body inputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		s.engine.Press(st, body.Keys)
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "press input", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) backspace(w http.ResponseWriter, r *http.Request) {
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		s.engine.Backspace(st)
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "backspace", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		s.engine.Clear(st)
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "clear", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) clearAll(w http.ResponseWriter, r *http.Request) {
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		s.engine.ClearAll(st)
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "clear all", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		s.metrics.CalculationsTotal.Inc()
		if err := s.engine.Calculate(st); err != nil {
			s.metrics.CalculationErrors.Inc()
			// The user-facing error lives in the state; the session
			// itself is fine, so persist and report 200.
			if errors.Is(err, domain.ErrEvaluation) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "calculate", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	var body modeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := domain.ParseTrigMode(body.Mode)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		s.engine.SetMode(st, mode)
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "set mode", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.notFoundOr500(w, "get history", err)
		return
	}
	history := state.History
	if history == nil {
		history = domain.Ledger{}
	}
	s.respond(w, http.StatusOK, map[string]domain.Ledger{"history": history})
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		st.History.Clear()
		return nil
	})
	if err != nil {
		s.notFoundOr500(w, "clear history", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) getMemory(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.notFoundOr500(w, "get memory", err)
		return
	}
	s.respond(w, http.StatusOK, map[string]domain.Bank{"memory": state.Memory})
}

// getMemorySlot reads a slot without touching the input, unlike recall.
func (s *Server) getMemorySlot(w http.ResponseWriter, r *http.Request) {
	slot := strings.ToUpper(chi.URLParam(r, "slot"))
	if !domain.ValidSlot(slot) {
		s.fail(w, http.StatusBadRequest, fmt.Sprintf("invalid memory slot %q", slot))
		return
	}

	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.notFoundOr500(w, "get memory slot", err)
		return
	}

	value, ok := state.Memory.Recall(slot)
	if !ok {
		s.fail(w, http.StatusNotFound, fmt.Sprintf("memory slot %s is empty", slot))
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"slot": slot, "value": value})
}

func (s *Server) storeMemory(w http.ResponseWriter, r *http.Request) {
	var body storeMemoryRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.fail(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	slot := chi.URLParam(r, "slot")
	if body.Value != "" {
		if _, err := decimal.NewFromString(body.Value); err != nil {
			s.fail(w, http.StatusBadRequest, fmt.Sprintf("value %q is not a number", body.Value))
			return
		}
	}

	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		if body.Value != "" {
			return s.engine.MemoryStoreValue(st, slot, body.Value)
		}
		return s.engine.MemoryStore(st, slot)
	})
	if err != nil {
		s.memoryError(w, "store memory", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) recallMemory(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		return s.engine.MemoryRecall(st, slot)
	})
	if err != nil {
		s.memoryError(w, "recall memory", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) clearMemory(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		return s.engine.MemoryClear(st, slot)
	})
	if err != nil {
		s.memoryError(w, "clear memory", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) clearAllMemory(w http.ResponseWriter, r *http.Request) {
	state, err := s.update(r.Context(), chi.URLParam(r, "sessionID"), func(st *domain.State) error {
		return s.engine.MemoryClear(st, "")
	})
	if err != nil {
		s.notFoundOr500(w, "clear all memory", err)
		return
	}
	s.respond(w, http.StatusOK, state)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"app":     "abacus-http",
		"version": strings.TrimSpace(abacus.Version),
	})
}

// -- Helpers --

func (s *Server) update(ctx context.Context, sessionID string, fn func(*domain.State) error) (*domain.State, error) {
	return s.sessions.Update(ctx, sessionID, fn)
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, errorResponse{Error: msg})
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.logger.Error(op+" failed", "err", err)
	s.fail(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", op, err))
}

func (s *Server) notFoundOr500(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.fail(w, http.StatusNotFound, "session not found")
		return
	}
	s.serverError(w, op, err)
}

// memoryError maps memory slot failures to client errors.
func (s *Server) memoryError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.fail(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrInvalidSlot), errors.Is(err, domain.ErrEmptySlot):
		s.fail(w, http.StatusBadRequest, err.Error())
	default:
		s.serverError(w, op, err)
	}
}
