package features

import (
	"strings"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// sensitiveWords are terms phishing URLs lean on to look urgent or official.
var sensitiveWords = []string{
	"login", "secure", "account", "ebay", "paypal", "update", "verify",
	"bank", "signin", "submit", "security", "billing", "password",
	"webscr", "support", "confirm", "connect", "authorize", "checkout",
	"payment", "alert", "notification", "limited", "urgent", "important",
	"invoice", "access", "client", "identity", "recover", "reset",
	"amazon", "apple", "microsoft", "google", "facebook", "dropbox",
	"office365", "outlook", "icloud", "admin", "service", "verify-now",
	"login-secure", "account-update", "free", "bonus", "cash", "winner",
	"promo", "offer", "deal", "gift", "earn", "income", "crypto",
	"btc", "eth", "wallet", "investment", "trading", "exchange",
	"validate", "unlock", "suspended",
}

// URLInfo carries lexical diagnostics reported alongside the verdict. These
// do not feed the feature vector; they give an operator context on why a URL
// looks the way it does.
type URLInfo struct {
	Length           int     `json:"length"`
	Domain           string  `json:"domain"`
	SubdomainCount   int     `json:"subdomain_count"`
	SensitiveWords   bool    `json:"sensitive_words"`
	DigitLetterRatio float64 `json:"digit_letter_ratio"`
	RandomLooking    bool    `json:"random_looking"`
	HomographTrick   bool    `json:"homograph_trick"`
}

// AnalyzeURL computes the lexical diagnostics for a URL and its domain.
func AnalyzeURL(rawURL, domain string) URLInfo {
	homograph, _ := usesHomographTrick(domain)
	return URLInfo{
		Length:           len(rawURL),
		Domain:           domain,
		SubdomainCount:   subdomainCount(domain),
		SensitiveWords:   hasSensitiveWords(rawURL),
		DigitLetterRatio: digitLetterRatio(domain),
		RandomLooking:    hasRandomLookingString(domain),
		HomographTrick:   homograph,
	}
}

func hasSensitiveWords(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, word := range sensitiveWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func digitLetterRatio(domain string) float64 {
	digits, letters := 0, 0
	for _, ch := range domain {
		switch {
		case ch >= '0' && ch <= '9':
			digits++
		case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
			letters++
		}
	}
	if letters == 0 {
		if digits > 0 {
			return float64(digits)
		}
		return 0
	}
	return float64(digits) / float64(letters)
}

// hasRandomLookingString flags domains with a low vowel ratio, a crude tell
// for generated names.
func hasRandomLookingString(domain string) bool {
	if domain == "" {
		return false
	}
	vowels := 0
	for _, ch := range domain {
		if strings.ContainsRune("aeiou", unicode.ToLower(ch)) {
			vowels++
		}
	}
	return float64(vowels)/float64(len(domain)) < 0.2
}

// usesHomographTrick detects mixed Latin and non-Latin letters after
// punycode decoding.
func usesHomographTrick(domain string) (bool, error) {
	decoded, err := idna.ToUnicode(domain)
	if err != nil {
		return false, err
	}

	hasLatin, hasOther := false, false
	for _, r := range decoded {
		if unicode.In(r, unicode.Latin) {
			hasLatin = true
		} else if unicode.IsLetter(r) {
			hasOther = true
		}
	}
	return hasLatin && hasOther, nil
}

func subdomainCount(domain string) int {
	eTLDPlusOne, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return strings.Count(domain, ".")
	}
	if len(domain) > len(eTLDPlusOne) {
		subdomainPart := domain[:len(domain)-len(eTLDPlusOne)-1]
		return strings.Count(subdomainPart, ".") + 1
	}
	return 0
}
