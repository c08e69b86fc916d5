// Package classifier wraps a pre-trained binary phishing model and maps its
// raw labels to verdicts. The model is loaded once at startup and shared
// read-only across concurrent requests.
package classifier

import (
	"fmt"

	"phishguard/pkg/features"
)

// fallbackLengthLimit is the URL length cutoff for the no-model heuristic.
const fallbackLengthLimit = 60

// Classifier turns a feature vector into a verdict. A nil model switches it
// to the deterministic length fallback, a degraded-availability path rather
// than a quality guarantee.
type Classifier struct {
	model    *Model
	polarity Polarity
}

// New builds a Classifier. model may be nil.
func New(model *Model, polarity Polarity) *Classifier {
	if polarity == "" {
		polarity = PolarityNegative
	}
	return &Classifier{model: model, polarity: polarity}
}

// HasModel reports whether a trained model is loaded.
func (c *Classifier) HasModel() bool {
	return c.model != nil
}

// Classify maps the vector (plus the raw URL for the fallback path) to a
// verdict. The only error is a vector shape mismatch, which means the
// schema and the model disagree and no answer would be trustworthy.
func (c *Classifier) Classify(rawURL string, vec features.Vector) (Verdict, error) {
	if len(vec) != features.Count {
		return "", fmt.Errorf("feature vector has %d values, want %d", len(vec), features.Count)
	}

	if c.model == nil {
		if len(rawURL) < fallbackLengthLimit {
			return VerdictLegitimate, nil
		}
		return VerdictPhishing, nil
	}

	label := c.model.predict(vec.Floats())
	return c.polarity.Map(label), nil
}
