package features

import (
	"phishguard/pkg/collector"
)

// abnormalURL flags URLs that produced no HTTP response at all.
func abnormalURL(b *collector.Bundle) Signal {
	if b.Response == nil {
		return Risky
	}
	return Safe
}

// websiteForwarding buckets the redirect chain length. One hop is routine,
// a couple is questionable, four or more is a forwarding maze.
func websiteForwarding(b *collector.Bundle) Signal {
	if b.Response == nil {
		return Risky
	}
	switch n := b.Response.Redirects; {
	case n <= 1:
		return Safe
	case n < 4:
		return Suspicious
	default:
		return Risky
	}
}
