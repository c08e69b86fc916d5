package collector

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes caps how much of a response body is kept for analysis.
const maxBodyBytes = 2 << 20

// URLParts holds the structural components of a parsed URL.
type URLParts struct {
	Scheme string
	Host   string
	Port   string
	Path   string
	Query  string
}

// Response captures what came back from the single GET issued per request.
type Response struct {
	StatusCode int
	Body       string
	Redirects  int
}

// Registration holds the domain registration timestamps. A zero time means
// the registrar record did not carry that date.
type Registration struct {
	Created time.Time
	Expires time.Time
}

// DNSInfo describes the domain's DNS posture (diagnostics, not vector input).
type DNSInfo struct {
	HasRecord bool
	HasSPF    bool
	HasDMARC  bool
}

// CertInfo describes the served TLS certificate (diagnostics, not vector input).
type CertInfo struct {
	Valid     bool
	IssuerOrg string
	AgeDays   int
}

// Bundle aggregates everything collected for one URL. Every pointer field is
// independently optional: a nil field means that source failed or was never
// reachable, and evaluators must treat it as absent.
type Bundle struct {
	RawURL       string
	Parts        *URLParts
	Domain       string
	Response     *Response
	Document     *goquery.Document
	Registration *Registration
	DNS          *DNSInfo
	Cert         *CertInfo

	mu     sync.Mutex
	Errors []string
}

func (b *Bundle) addError(stage string, err error) {
	b.mu.Lock()
	b.Errors = append(b.Errors, stage+":"+err.Error())
	b.mu.Unlock()
}

// Config controls the collector's external calls.
type Config struct {
	FetchTimeout  time.Duration
	LookupTimeout time.Duration
	DNSResolver   string
	UserAgent     string
}

func (c Config) withDefaults() Config {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 5 * time.Second
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = 5 * time.Second
	}
	if c.DNSResolver == "" {
		c.DNSResolver = "8.8.8.8:53"
	}
	return c
}

// Collector gathers the raw artifacts a classification request needs.
// It is safe for concurrent use; one instance serves all requests.
type Collector struct {
	cfg        Config
	httpClient *http.Client
}

// New builds a Collector with a shared HTTP client. Redirects are followed
// and counted; certificate errors do not abort the fetch since certificate
// quality is judged separately.
func New(cfg Config) *Collector {
	cfg = cfg.withDefaults()

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
	}

	return &Collector{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.FetchTimeout,
		},
	}
}

// NormalizeURL ensures a URL has a scheme before collection begins.
func NormalizeURL(rawURL string) string {
	if rawURL != "" && !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "http://" + rawURL
	}
	return rawURL
}

// Collect produces the artifact bundle for rawURL. It never returns an
// error: each failed source leaves its field nil and records the cause in
// Bundle.Errors. The fetch, registration lookup, and DNS lookup run
// concurrently; the document parse follows the fetch since it needs a body.
func (c *Collector) Collect(ctx context.Context, rawURL string) *Bundle {
	bundle := &Bundle{RawURL: rawURL}

	if u, err := neturl.Parse(rawURL); err == nil && u.Host != "" {
		bundle.Parts = &URLParts{
			Scheme: u.Scheme,
			Host:   u.Host,
			Port:   u.Port(),
			Path:   u.Path,
			Query:  u.RawQuery,
		}
		bundle.Domain = u.Hostname()
	} else if err != nil {
		bundle.addError("url_parse", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.fetch(gctx, bundle)
		return nil
	})

	if bundle.Domain != "" {
		domain := bundle.Domain
		g.Go(func() error {
			lctx, cancel := context.WithTimeout(gctx, c.cfg.LookupTimeout)
			defer cancel()
			if reg, err := c.lookupRegistration(lctx, domain); err != nil {
				bundle.addError("registration_lookup", err)
			} else {
				bundle.Registration = reg
			}
			return nil
		})
		g.Go(func() error {
			lctx, cancel := context.WithTimeout(gctx, c.cfg.LookupTimeout)
			defer cancel()
			if info, err := c.lookupDNS(lctx, domain); err != nil {
				bundle.addError("dns_lookup", err)
			} else {
				bundle.DNS = info
			}
			return nil
		})
		if bundle.Parts != nil && bundle.Parts.Scheme == "https" {
			g.Go(func() error {
				lctx, cancel := context.WithTimeout(gctx, c.cfg.LookupTimeout)
				defer cancel()
				if cert, err := c.inspectCertificate(lctx, domain); err != nil {
					bundle.addError("cert_inspect", err)
				} else {
					bundle.Cert = cert
				}
				return nil
			})
		}
	}

	_ = g.Wait()
	return bundle
}

// fetch issues the single bounded GET and, when a body comes back, parses it
// into a queryable document. No retries on any failure mode.
func (c *Collector) fetch(ctx context.Context, bundle *Bundle) {
	fctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fctx, http.MethodGet, bundle.RawURL, nil)
	if err != nil {
		bundle.addError("fetch", err)
		return
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	redirects := 0
	client := *c.httpClient
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		redirects = len(via)
		if len(via) >= 10 {
			return http.ErrUseLastResponse
		}
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		bundle.addError("fetch", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		bundle.addError("fetch_body", err)
		return
	}

	bundle.Response = &Response{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Redirects:  redirects,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bundle.Response.Body))
	if err != nil {
		bundle.addError("document_parse", err)
		return
	}
	bundle.Document = doc
}
