// Package server exposes the classification pipeline over a thin HTTP
// surface: parse the request, invoke the pipeline, serialize the verdict.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"phishguard/pkg/pipeline"
)

// ClassifyService is the pipeline capability the server fronts.
type ClassifyService interface {
	Classify(ctx context.Context, rawURL string) (*pipeline.Result, error)
}

// Config wires the server's collaborators.
type Config struct {
	Pipeline ClassifyService
	Logger   *zap.Logger
}

// Server is an http.Handler serving the predict endpoint.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	srv := &Server{cfg: cfg, mux: http.NewServeMux()}
	srv.mux.HandleFunc("POST /predict", srv.handlePredict)
	srv.mux.HandleFunc("GET /healthz", srv.handleHealth)
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type predictRequest struct {
	URL string `json:"url"`
}

type predictResponse struct {
	Result  pipeline.Result `json:"result"`
	Verdict string          `json:"verdict"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := s.cfg.Pipeline.Classify(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyURL) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "URL is required"})
			return
		}
		s.cfg.Logger.Error("pipeline failure", zap.String("url", req.URL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.cfg.Logger.Info("classified",
		zap.String("url", result.URL),
		zap.String("verdict", string(result.Verdict)),
		zap.Bool("used_fallback", result.UsedFallback),
		zap.Int("collection_errors", len(result.CollectionErrors)),
	)
	writeJSON(w, http.StatusOK, predictResponse{Result: *result, Verdict: string(result.Verdict)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
