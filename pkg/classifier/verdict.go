package classifier

import "fmt"

// Verdict is the user-facing classification outcome.
type Verdict string

const (
	VerdictPhishing   Verdict = "Phishing"
	VerdictLegitimate Verdict = "Legitimate"
)

// Polarity declares which numeric label the trained model emits for
// phishing. It is a training-time property that cannot be inferred at
// runtime, so it ships as configuration next to the model file.
type Polarity string

const (
	// PolarityNegative is the UCI dataset convention: -1 phishing,
	// 1 legitimate. Labels outside that domain are read as a 0/1 encoding
	// where 1 means phishing.
	PolarityNegative Polarity = "negative"
	// PolarityPositive is the plain binary convention: 1 phishing,
	// everything else legitimate.
	PolarityPositive Polarity = "positive"
)

// ParsePolarity validates a configured polarity string.
func ParsePolarity(s string) (Polarity, error) {
	switch Polarity(s) {
	case PolarityNegative, PolarityPositive:
		return Polarity(s), nil
	case "":
		return PolarityNegative, nil
	default:
		return "", fmt.Errorf("unknown classifier polarity %q (want %q or %q)", s, PolarityNegative, PolarityPositive)
	}
}

// Map translates a raw model label into a verdict under this polarity.
func (p Polarity) Map(label int) Verdict {
	switch p {
	case PolarityPositive:
		if label == 1 {
			return VerdictPhishing
		}
		return VerdictLegitimate
	default:
		switch label {
		case -1:
			return VerdictPhishing
		case 1:
			return VerdictLegitimate
		default:
			// 0/1-domain model answered under a -1/1 polarity; 1 is
			// already handled above, so anything left is legitimate.
			return VerdictLegitimate
		}
	}
}
