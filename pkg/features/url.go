package features

import (
	"net"
	"regexp"
	"strings"

	"phishguard/pkg/collector"
)

// shortenerPattern matches hosts of known URL shortening services.
var shortenerPattern = regexp.MustCompile(`bit\.ly|goo\.gl|shorte\.st|go2l\.ink|x\.co|ow\.ly|t\.co|tinyurl|tr\.im|is\.gd|cli\.gs|` +
	`yfrog\.com|migre\.me|ff\.im|tiny\.cc|url4\.eu|twit\.ac|su\.pr|twurl\.nl|snipurl\.com|` +
	`short\.to|BudURL\.com|ping\.fm|post\.ly|Just\.as|bkite\.com|snipr\.com|fic\.kr|loopt\.us|` +
	`doiop\.com|short\.ie|kl\.am|wp\.me|rubyurl\.com|om\.ly|to\.ly|bit\.do|lnkd\.in|` +
	`db\.tt|qr\.ae|adf\.ly|bitly\.com|cur\.lv|ity\.im|` +
	`q\.gs|po\.st|bc\.vc|twitthis\.com|u\.to|j\.mp|buzurl\.com|cutt\.us|u\.bb|yourls\.org|` +
	`prettylinkpro\.com|scrnch\.me|filoops\.info|vzturl\.com|qr\.net|1url\.com|tweez\.me|v\.gd|` +
	`link\.zip\.net`)

// usingIP flags hosts that are raw IP literals instead of names.
func usingIP(b *collector.Bundle) Signal {
	if net.ParseIP(b.Domain) != nil {
		return Risky
	}
	return Safe
}

// longURL buckets the raw URL length at the 54 and 75 character marks.
func longURL(b *collector.Bundle) Signal {
	switch n := len(b.RawURL); {
	case n < 54:
		return Safe
	case n <= 75:
		return Suspicious
	default:
		return Risky
	}
}

func shortURL(b *collector.Bundle) Signal {
	if shortenerPattern.MatchString(b.RawURL) {
		return Risky
	}
	return Safe
}

func symbolAt(b *collector.Bundle) Signal {
	if strings.Contains(b.RawURL, "@") {
		return Risky
	}
	return Safe
}

// doubleSlashRedirect flags a "//" whose last occurrence sits past index 7.
// The scheme separator lands at index 5 (http://) or 6 (https://), so any
// "//" beyond that is an embedded redirect target.
func doubleSlashRedirect(b *collector.Bundle) Signal {
	if strings.LastIndex(b.RawURL, "//") > 7 {
		return Risky
	}
	return Safe
}

func prefixSuffixHyphen(b *collector.Bundle) Signal {
	if strings.Contains(b.Domain, "-") {
		return Risky
	}
	return Safe
}

// subDomains buckets by dot count: one dot is a plain registered domain, two
// is one subdomain level, anything deeper is flagged.
func subDomains(b *collector.Bundle) Signal {
	switch strings.Count(b.Domain, ".") {
	case 1:
		return Safe
	case 2:
		return Suspicious
	default:
		return Risky
	}
}

func httpsScheme(b *collector.Bundle) Signal {
	if b.Parts != nil && b.Parts.Scheme == "https" {
		return Safe
	}
	return Risky
}

// nonStdPort flags any explicit port in the authority; phishing kits often
// serve from high ports to dodge takedowns.
func nonStdPort(b *collector.Bundle) Signal {
	if b.Parts != nil && b.Parts.Port != "" {
		return Risky
	}
	return Safe
}

// httpsInDomain catches "https" baked into the host name itself, a trick to
// make the bare domain read as secure.
func httpsInDomain(b *collector.Bundle) Signal {
	if strings.Contains(b.Domain, "https") {
		return Risky
	}
	return Safe
}
