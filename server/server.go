// Package server exposes the orchestrator over a small JSON HTTP API:
// POST /chat processes one conversation turn, GET /agents returns the static
// agent roster. Responses carry permissive CORS headers so a browser frontend
// can talk to the API directly.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/logging"
	"github.com/promopro/chatmesh/orchestrator"
)

// ChatRequest is the POST /chat body. ConversationID is optional; absent or
// unknown ids start a fresh conversation.
type ChatRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

// Options configures a Server.
type Options struct {
	Logger logging.Logger
}

// Server handles the HTTP surface over an orchestrator and registry.
type Server struct {
	orch     *orchestrator.Orchestrator
	registry *agent.Registry
	logger   logging.Logger
}

// New constructs a Server.
func New(orch *orchestrator.Orchestrator, registry *agent.Registry, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{orch: orch, registry: registry, logger: opts.Logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/agents", s.handleAgents)
	return mux
}

// ListenAndServe serves the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("server.listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}

	resp, err := s.orch.HandleTurn(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		s.logger.Error("server.chat.failed", "conversation_id", req.ConversationID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": s.registry.Roster()})
}

func writeCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError reports failures as a JSON error object, keeping them distinct
// from chat messages.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
