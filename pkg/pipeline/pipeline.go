// Package pipeline runs one URL through collection, feature extraction,
// classification, and verdict mapping.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"phishguard/pkg/classifier"
	"phishguard/pkg/collector"
	"phishguard/pkg/features"
)

// ErrEmptyURL rejects requests carrying no URL before collection starts.
var ErrEmptyURL = errors.New("url is required")

// Collector is the artifact-gathering capability the pipeline consumes.
type Collector interface {
	Collect(ctx context.Context, rawURL string) *collector.Bundle
}

// Result is everything one classification produced: the verdict plus the
// diagnostics that explain it.
type Result struct {
	URL              string              `json:"url"`
	Verdict          classifier.Verdict  `json:"verdict"`
	Vector           features.Vector     `json:"vector"`
	Lexical          features.URLInfo    `json:"lexical"`
	DNS              *collector.DNSInfo  `json:"dns,omitempty"`
	Cert             *collector.CertInfo `json:"cert,omitempty"`
	UsedFallback     bool                `json:"used_fallback"`
	CollectionErrors []string            `json:"collection_errors,omitempty"`
}

// Pipeline wires a collector to a classifier. Both are shared and
// read-only; every Classify call is independent.
type Pipeline struct {
	collector  Collector
	classifier *classifier.Classifier
}

func New(c Collector, cl *classifier.Classifier) *Pipeline {
	return &Pipeline{collector: c, classifier: cl}
}

// Classify runs the full pipeline for rawURL. The only error paths are an
// empty input and a vector shape mismatch; every collection failure instead
// degrades the corresponding signals.
func (p *Pipeline) Classify(ctx context.Context, rawURL string) (*Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	rawURL = collector.NormalizeURL(rawURL)

	bundle := p.collector.Collect(ctx, rawURL)

	vec := features.Extract(bundle)

	verdict, err := p.classifier.Classify(bundle.RawURL, vec)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:              bundle.RawURL,
		Verdict:          verdict,
		Vector:           vec,
		Lexical:          features.AnalyzeURL(bundle.RawURL, bundle.Domain),
		DNS:              bundle.DNS,
		Cert:             bundle.Cert,
		UsedFallback:     !p.classifier.HasModel(),
		CollectionErrors: bundle.Errors,
	}, nil
}
