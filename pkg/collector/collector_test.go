package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testConfig keeps lookups off the network: registration lookups fail on
// the IP-literal test host before any socket opens, and the DNS resolver
// points at a closed local port.
func testConfig() Config {
	return Config{
		FetchTimeout:  5 * time.Second,
		LookupTimeout: 500 * time.Millisecond,
		DNSResolver:   "127.0.0.1:1",
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"example.com", "http://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollectSuccessfulFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><a href="/next">next</a></body></html>`))
	}))
	defer srv.Close()

	c := New(testConfig())
	bundle := c.Collect(context.Background(), srv.URL)

	if bundle.Response == nil {
		t.Fatalf("Response absent, errors: %v", bundle.Errors)
	}
	if bundle.Response.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", bundle.Response.StatusCode)
	}
	if bundle.Response.Redirects != 0 {
		t.Errorf("Redirects = %d, want 0", bundle.Response.Redirects)
	}
	if bundle.Document == nil {
		t.Fatal("Document absent after successful fetch")
	}
	if got := bundle.Document.Find("a").Length(); got != 1 {
		t.Errorf("parsed document anchors = %d, want 1", got)
	}
	if bundle.Parts == nil || bundle.Parts.Scheme != "http" {
		t.Errorf("Parts = %+v, want http scheme", bundle.Parts)
	}
	if bundle.Domain != "127.0.0.1" {
		t.Errorf("Domain = %q, want 127.0.0.1", bundle.Domain)
	}
}

func TestCollectCountsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/mid", http.StatusFound)
	})
	mux.HandleFunc("/mid", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testConfig())
	bundle := c.Collect(context.Background(), srv.URL+"/start")

	if bundle.Response == nil {
		t.Fatalf("Response absent, errors: %v", bundle.Errors)
	}
	if bundle.Response.Redirects != 2 {
		t.Errorf("Redirects = %d, want 2", bundle.Response.Redirects)
	}
}

func TestCollectFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(testConfig())
	bundle := c.Collect(context.Background(), url)

	if bundle.Response != nil {
		t.Error("Response should be absent after a refused connection")
	}
	if bundle.Document != nil {
		t.Error("Document should be absent without a body")
	}

	found := false
	for _, e := range bundle.Errors {
		if strings.HasPrefix(e, "fetch:") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a fetch error to be recorded, got %v", bundle.Errors)
	}
}

func TestCollectUnparsableURL(t *testing.T) {
	c := New(testConfig())
	bundle := c.Collect(context.Background(), "http://%zz-not-a-url")

	if bundle.Parts != nil {
		t.Error("Parts should be absent for an unparsable URL")
	}
	if bundle.Domain != "" {
		t.Errorf("Domain = %q, want empty", bundle.Domain)
	}
}

func TestCollectDegradedLookups(t *testing.T) {
	// The fetch succeeds but registration and DNS fail fast: the bundle
	// still carries the response and records the degradation.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := New(testConfig())
	bundle := c.Collect(context.Background(), srv.URL)

	if bundle.Response == nil {
		t.Fatalf("Response absent, errors: %v", bundle.Errors)
	}
	if bundle.Registration != nil {
		t.Error("Registration should be absent for an IP-literal host")
	}
	if bundle.DNS != nil {
		t.Error("DNS info should be absent when the resolver is unreachable")
	}
	if len(bundle.Errors) == 0 {
		t.Error("expected degraded lookups to be recorded in Errors")
	}
}

func TestParseWhoisDate(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"2020-05-01T00:00:00Z", true},
		{"2020-05-01", true},
		{"01-May-2020", true},
		{"20200501", true},
		{"", false},
		{"not a date", false},
	}
	for _, tt := range tests {
		if _, ok := parseWhoisDate(tt.raw); ok != tt.ok {
			t.Errorf("parseWhoisDate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
		}
	}
}
