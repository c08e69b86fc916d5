package features

import (
	neturl "net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"phishguard/pkg/collector"
)

// favicon reports whether any declared icon resolves to a foreign host.
func favicon(b *collector.Bundle) Signal {
	if b.Document == nil {
		return Safe
	}
	external := false
	b.Document.Find("link[rel~='icon'], link[rel='shortcut icon']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if u, err := neturl.Parse(href); err == nil && u.Hostname() != "" && u.Hostname() != b.Domain {
			external = true
			return false
		}
		return true
	})
	if external {
		return Risky
	}
	return Safe
}

// sameOrigin decides whether a media or anchor target stays local: the
// source embeds the page URL or domain, or is a single-dot relative path.
func sameOrigin(b *collector.Bundle, src string) bool {
	return strings.Contains(src, b.RawURL) ||
		strings.Contains(src, b.Domain) ||
		strings.Count(src, ".") == 1
}

// requestURL buckets the share of page objects loaded from foreign origins.
func requestURL(b *collector.Bundle) Signal {
	if b.Document == nil {
		return Suspicious
	}
	total, external := 0, 0
	b.Document.Find("img[src], audio[src], embed[src], iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		total++
		if !sameOrigin(b, src) {
			external++
		}
	})
	if total == 0 {
		return Safe
	}
	switch pct := float64(external) / float64(total) * 100; {
	case pct < 22.0:
		return Safe
	case pct < 61.0:
		return Suspicious
	default:
		return Risky
	}
}

// anchorURL buckets the share of anchors that go nowhere useful or leave the
// page's domain.
func anchorURL(b *collector.Bundle) Signal {
	if b.Document == nil {
		return Suspicious
	}
	total, unsafe := 0, 0
	b.Document.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		total++
		lower := strings.ToLower(href)
		if strings.Contains(href, "#") ||
			strings.Contains(lower, "javascript") ||
			strings.Contains(lower, "mailto") ||
			!(strings.Contains(href, b.RawURL) || strings.Contains(href, b.Domain)) {
			unsafe++
		}
	})
	if total == 0 {
		return Safe
	}
	switch pct := float64(unsafe) / float64(total) * 100; {
	case pct < 31.0:
		return Safe
	case pct < 67.0:
		return Suspicious
	default:
		return Risky
	}
}

// linksInScriptTags buckets the share of link/script resources referencing a
// foreign domain.
func linksInScriptTags(b *collector.Bundle) Signal {
	if b.Document == nil {
		return Suspicious
	}
	total, external := 0, 0
	count := func(val string) {
		total++
		if !strings.Contains(val, b.Domain) {
			external++
		}
	}
	b.Document.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			count(href)
		}
	})
	b.Document.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			count(src)
		}
	})
	if total == 0 {
		return Safe
	}
	switch pct := float64(external) / float64(total) * 100; {
	case pct < 17.0:
		return Safe
	case pct < 81.0:
		return Suspicious
	default:
		return Risky
	}
}

// serverFormHandler judges where forms submit to. Blank or about:blank
// actions discard credentials client-side; absolute off-domain actions ship
// them elsewhere. A page with no forms passes.
func serverFormHandler(b *collector.Bundle) Signal {
	if b.Document == nil {
		return Safe
	}
	anyEmpty, anyForeign := false, false
	b.Document.Find("form[action]").Each(func(_ int, s *goquery.Selection) {
		action, ok := s.Attr("action")
		if !ok {
			return
		}
		if action == "" || action == "about:blank" {
			anyEmpty = true
			return
		}
		if strings.HasPrefix(action, "http") && !strings.Contains(action, b.Domain) {
			anyForeign = true
		}
	})
	switch {
	case anyEmpty:
		return Risky
	case anyForeign:
		return Suspicious
	default:
		return Safe
	}
}

func infoEmail(b *collector.Bundle) Signal {
	if b.Response != nil && strings.Contains(b.Response.Body, "mailto:") {
		return Risky
	}
	return Safe
}

// iframeRedirection marks any iframe as suspicious rather than risky; plenty
// of legitimate pages embed one.
func iframeRedirection(b *collector.Bundle) Signal {
	if b.Document != nil && b.Document.Find("iframe").Length() > 0 {
		return Suspicious
	}
	return Safe
}
