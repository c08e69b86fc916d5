package features

import (
	"time"

	"phishguard/pkg/collector"
)

// domainRegLen flags registrations paid for a year or less. Phishing domains
// are rarely renewed; a missing record gets the same treatment.
func domainRegLen(b *collector.Bundle) Signal {
	reg := b.Registration
	if reg == nil || reg.Created.IsZero() || reg.Expires.IsZero() {
		return Risky
	}
	days := reg.Expires.Sub(reg.Created).Hours() / 24
	if days/365 <= 1 {
		return Risky
	}
	return Safe
}

// ageOfDomain flags domains younger than six months.
func ageOfDomain(b *collector.Bundle) Signal {
	reg := b.Registration
	if reg == nil || reg.Created.IsZero() {
		return Risky
	}
	if time.Since(reg.Created).Hours()/24 >= 180 {
		return Safe
	}
	return Risky
}

// dnsRecording reports whether a registration record exists at all.
func dnsRecording(b *collector.Bundle) Signal {
	if b.Registration != nil {
		return Safe
	}
	return Risky
}
