package classifier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phishguard/pkg/features"
)

// stumpModel returns a single-tree forest that votes on feature 0:
// value <= 0 yields leftLabel, otherwise rightLabel.
func stumpModel(leftLabel, rightLabel int) *Model {
	return &Model{
		FeatureCount: features.Count,
		Trees: []Tree{{
			Nodes: []Node{
				{Feature: 0, Threshold: 0, Left: 1, Right: 2},
				{Leaf: true, Label: leftLabel},
				{Leaf: true, Label: rightLabel},
			},
		}},
	}
}

func vectorWithFirst(s features.Signal) features.Vector {
	vec := make(features.Vector, features.Count)
	for i := range vec {
		vec[i] = features.Safe
	}
	vec[0] = s
	return vec
}

func TestFallbackByLength(t *testing.T) {
	c := New(nil, PolarityNegative)
	vec := vectorWithFirst(features.Safe)

	shortURL := "http://" + strings.Repeat("a", 33) // 40 chars
	if len(shortURL) != 40 {
		t.Fatalf("short URL length = %d, want 40", len(shortURL))
	}
	verdict, err := c.Classify(shortURL, vec)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if verdict != VerdictLegitimate {
		t.Errorf("fallback verdict for 40-char URL = %s, want %s", verdict, VerdictLegitimate)
	}

	longURL := "http://" + strings.Repeat("a", 73) // 80 chars
	if len(longURL) != 80 {
		t.Fatalf("long URL length = %d, want 80", len(longURL))
	}
	verdict, err = c.Classify(longURL, vec)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if verdict != VerdictPhishing {
		t.Errorf("fallback verdict for 80-char URL = %s, want %s", verdict, VerdictPhishing)
	}
}

func TestClassifyWithNegativePolarityModel(t *testing.T) {
	c := New(stumpModel(-1, 1), PolarityNegative)

	verdict, err := c.Classify("http://example.com", vectorWithFirst(features.Risky))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if verdict != VerdictPhishing {
		t.Errorf("label -1 = %s, want %s", verdict, VerdictPhishing)
	}

	verdict, err = c.Classify("http://example.com", vectorWithFirst(features.Safe))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if verdict != VerdictLegitimate {
		t.Errorf("label 1 = %s, want %s", verdict, VerdictLegitimate)
	}
}

func TestClassifyWithBinaryDomainModel(t *testing.T) {
	// A 0/1-domain model answered under the declared negative polarity:
	// 0 maps to Legitimate by the documented fallback convention.
	c := New(stumpModel(0, 1), PolarityNegative)

	verdict, err := c.Classify("http://example.com", vectorWithFirst(features.Risky))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if verdict != VerdictLegitimate {
		t.Errorf("label 0 under negative polarity = %s, want %s", verdict, VerdictLegitimate)
	}

	// The same model under positive polarity treats 1 as phishing.
	c = New(stumpModel(0, 1), PolarityPositive)
	verdict, err = c.Classify("http://example.com", vectorWithFirst(features.Safe))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if verdict != VerdictPhishing {
		t.Errorf("label 1 under positive polarity = %s, want %s", verdict, VerdictPhishing)
	}
}

func TestClassifyShapeMismatch(t *testing.T) {
	c := New(nil, PolarityNegative)
	if _, err := c.Classify("http://example.com", make(features.Vector, 10)); err == nil {
		t.Fatal("expected an error for a 10-element vector")
	}
}

func TestMajorityVote(t *testing.T) {
	m := &Model{Trees: []Tree{
		stumpModel(-1, 1).Trees[0],
		stumpModel(-1, 1).Trees[0],
		stumpModel(1, 1).Trees[0],
	}}
	sample := vectorWithFirst(features.Risky).Floats()
	if got := m.predict(sample); got != -1 {
		t.Errorf("majority vote = %d, want -1", got)
	}
}

func TestParsePolarity(t *testing.T) {
	if p, err := ParsePolarity(""); err != nil || p != PolarityNegative {
		t.Errorf("ParsePolarity(\"\") = %v, %v; want negative default", p, err)
	}
	if _, err := ParsePolarity("sideways"); err == nil {
		t.Error("expected error for unknown polarity")
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	data, err := json.Marshal(stumpModel(-1, 1))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if len(m.Trees) != 1 {
		t.Errorf("trees = %d, want 1", len(m.Trees))
	}

	if _, err := LoadModel(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing model file")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"trees":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadModel(empty); err == nil {
		t.Error("expected error for a model with no trees")
	}
}
