package collector

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"golang.org/x/net/publicsuffix"
)

var yyyymmdd = regexp.MustCompile(`(\d{8})`)

// lookupRegistration queries WHOIS for the domain's registration record.
// Lookups always go against the apex domain; registrars do not answer for
// arbitrary subdomains.
func (c *Collector) lookupRegistration(ctx context.Context, domain string) (reg *Registration, err error) {
	apexDomain, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return nil, fmt.Errorf("could not determine apex domain for %q: %w", domain, err)
	}

	// whois-parser has been observed to panic on malformed registrar output.
	defer func() {
		if r := recover(); r != nil {
			reg = nil
			err = fmt.Errorf("recovered from panic in whois parser for %s: %v", apexDomain, r)
		}
	}()

	type whoisResult struct {
		raw string
		err error
	}
	resultChan := make(chan whoisResult, 1)

	go func() {
		raw, lookupErr := whois.Whois(apexDomain)
		resultChan <- whoisResult{raw: raw, err: lookupErr}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			return nil, fmt.Errorf("whois lookup for %q failed: %w", apexDomain, res.err)
		}

		parsed, parseErr := whoisparser.Parse(res.raw)
		if parseErr != nil {
			return nil, fmt.Errorf("whois parse for %q failed: %w", apexDomain, parseErr)
		}

		reg = &Registration{}
		if created, ok := parseWhoisDate(parsed.Domain.CreatedDate); ok {
			reg.Created = created
		}
		if expires, ok := parseWhoisDate(parsed.Domain.ExpirationDate); ok {
			reg.Expires = expires
		}
		return reg, nil
	}
}

// parseWhoisDate tries multiple common layouts to parse a registrar date.
func parseWhoisDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	// Some registrars bury a YYYYMMDD stamp inside free-form text.
	if match := yyyymmdd.FindStringSubmatch(raw); len(match) > 1 {
		if t, err := time.Parse("20060102", match[1]); err == nil {
			return t, true
		}
	}

	layouts := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02-Jan-2006",
		"2006/01/02",
		"2006.01.02",
		"02.01.2006",
		"2006-01-02 15:04:05 MST",
		"Mon, 02 Jan 2006 15:04:05 MST",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
