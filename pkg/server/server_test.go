package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"phishguard/pkg/classifier"
	"phishguard/pkg/pipeline"
)

type stubService struct {
	result *pipeline.Result
	err    error
}

func (s *stubService) Classify(_ context.Context, rawURL string) (*pipeline.Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, pipeline.ErrEmptyURL
	}
	return s.result, s.err
}

func newTestServer(svc ClassifyService) *Server {
	return New(Config{Pipeline: svc})
}

func TestPredictMissingURL(t *testing.T) {
	srv := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected an error message in the response")
	}
}

func TestPredictInvalidBody(t *testing.T) {
	srv := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPredictSuccess(t *testing.T) {
	srv := newTestServer(&stubService{result: &pipeline.Result{
		URL:     "http://example.com",
		Verdict: classifier.VerdictLegitimate,
	}})

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"url":"http://example.com"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Verdict != string(classifier.VerdictLegitimate) {
		t.Errorf("verdict = %q, want %q", resp.Verdict, classifier.VerdictLegitimate)
	}
}

func TestPredictPipelineFailure(t *testing.T) {
	srv := newTestServer(&stubService{err: errors.New("feature vector has 12 values, want 30")})

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"url":"http://example.com"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
