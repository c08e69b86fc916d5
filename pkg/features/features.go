// Package features computes the 30 ternary heuristic signals a phishing
// classifier consumes. The order of Schema is the contract with the trained
// model: position i of every extracted vector always holds the signal named
// at Schema[i], and changing the order breaks any model trained against it.
package features

import (
	"phishguard/pkg/collector"
)

// Signal is one ternary heuristic outcome.
type Signal int8

const (
	// Risky marks the heuristic's phishing-leaning outcome.
	Risky Signal = -1
	// Suspicious marks an inconclusive or unknown outcome.
	Suspicious Signal = 0
	// Safe marks the heuristic's benign outcome.
	Safe Signal = 1
)

// Count is the fixed length of every feature vector.
const Count = 30

// Vector is the ordered feature encoding handed to the classifier. It is
// built once per request and never mutated afterwards.
type Vector []Signal

// Floats renders the vector in the numeric form model inference expects.
func (v Vector) Floats() []float64 {
	out := make([]float64, len(v))
	for i, s := range v {
		out[i] = float64(s)
	}
	return out
}

// Evaluator derives one signal from the artifact bundle. Evaluators are
// independent: none may read another's output, and none may assume any
// optional bundle field is present.
type Evaluator func(b *collector.Bundle) Signal

// Feature pairs a named heuristic with its evaluator and the value it falls
// back to if the evaluator panics.
type Feature struct {
	Name    string
	Neutral Signal
	Eval    Evaluator
}

// Schema lists every heuristic in vector order. Entries 20-22 and 26-30 are
// fixed defaults: the former need page-script execution, the latter need an
// external ranking provider, and neither source is wired in. They keep their
// positions so supplying real values later does not reshape the vector.
var Schema = [Count]Feature{
	{Name: "UsingIP", Neutral: Safe, Eval: usingIP},
	{Name: "LongURL", Neutral: Safe, Eval: longURL},
	{Name: "ShortURL", Neutral: Safe, Eval: shortURL},
	{Name: "SymbolAt", Neutral: Safe, Eval: symbolAt},
	{Name: "Redirecting", Neutral: Safe, Eval: doubleSlashRedirect},
	{Name: "PrefixSuffix", Neutral: Safe, Eval: prefixSuffixHyphen},
	{Name: "SubDomains", Neutral: Risky, Eval: subDomains},
	{Name: "HTTPS", Neutral: Risky, Eval: httpsScheme},
	{Name: "DomainRegLen", Neutral: Risky, Eval: domainRegLen},
	{Name: "Favicon", Neutral: Safe, Eval: favicon},
	{Name: "NonStdPort", Neutral: Safe, Eval: nonStdPort},
	{Name: "HTTPSDomainURL", Neutral: Safe, Eval: httpsInDomain},
	{Name: "RequestURL", Neutral: Suspicious, Eval: requestURL},
	{Name: "AnchorURL", Neutral: Suspicious, Eval: anchorURL},
	{Name: "LinksInScriptTags", Neutral: Suspicious, Eval: linksInScriptTags},
	{Name: "ServerFormHandler", Neutral: Safe, Eval: serverFormHandler},
	{Name: "InfoEmail", Neutral: Safe, Eval: infoEmail},
	{Name: "AbnormalURL", Neutral: Risky, Eval: abnormalURL},
	{Name: "WebsiteForwarding", Neutral: Risky, Eval: websiteForwarding},
	{Name: "StatusBarCust", Neutral: Safe, Eval: fixed(Safe)},
	{Name: "DisableRightClick", Neutral: Safe, Eval: fixed(Safe)},
	{Name: "UsingPopupWindow", Neutral: Safe, Eval: fixed(Safe)},
	{Name: "IframeRedirection", Neutral: Safe, Eval: iframeRedirection},
	{Name: "AgeofDomain", Neutral: Risky, Eval: ageOfDomain},
	{Name: "DNSRecording", Neutral: Risky, Eval: dnsRecording},
	{Name: "WebsiteTraffic", Neutral: Suspicious, Eval: fixed(Suspicious)},
	{Name: "PageRank", Neutral: Suspicious, Eval: fixed(Suspicious)},
	{Name: "GoogleIndex", Neutral: Safe, Eval: fixed(Safe)},
	{Name: "LinksPointingToPage", Neutral: Suspicious, Eval: fixed(Suspicious)},
	{Name: "StatsReport", Neutral: Safe, Eval: fixed(Safe)},
}

// Index returns the vector position of a named feature, or -1 if no such
// feature exists. Positions are stable across releases; see Schema.
func Index(name string) int {
	for i := range Schema {
		if Schema[i].Name == name {
			return i
		}
	}
	return -1
}

// Extract runs every evaluator in schema order and assembles the vector.
// A panicking evaluator contributes its neutral value; one bad heuristic
// never aborts the assembly.
func Extract(b *collector.Bundle) Vector {
	vec := make(Vector, 0, Count)
	for i := range Schema {
		vec = append(vec, safeEval(&Schema[i], b))
	}
	return vec
}

func safeEval(f *Feature, b *collector.Bundle) (s Signal) {
	defer func() {
		if recover() != nil {
			s = f.Neutral
		}
	}()
	return f.Eval(b)
}

// fixed builds an evaluator for signals that are not computed live.
func fixed(s Signal) Evaluator {
	return func(*collector.Bundle) Signal { return s }
}
