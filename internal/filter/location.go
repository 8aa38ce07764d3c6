package filter

import "strings"

// DomesticPolicy decides whether a raw ATS location string counts as
// inside the United States for the "United States" sentinel filter. The
// exact grammar of location strings varies per ATS, so the policy is
// package data rather than a hardcoded regex.
type DomesticPolicy struct {
	// StateTokens are the two-letter abbreviations recognized as a
	// trailing state token (", CA", ", NY, USA", ...).
	StateTokens map[string]bool
	// CountrySuffixes are trailing tokens stripped before the state
	// check.
	CountrySuffixes []string
	// RemoteIsDomestic treats the literal "Remote" location as domestic.
	RemoteIsDomestic bool
}

var defaultDomesticPolicy = DomesticPolicy{
	StateTokens:      usStateTokens,
	CountrySuffixes:  []string{"usa", "us", "united states", "united states of america"},
	RemoteIsDomestic: true,
}

// isDomesticLocation applies the default policy.
func isDomesticLocation(location string) bool {
	return defaultDomesticPolicy.Matches(location)
}

// Matches reports whether the location string is recognized as domestic:
// it names the United States outright, is the literal "Remote" (when the
// policy allows), or ends in a recognized two-letter state token.
func (p DomesticPolicy) Matches(location string) bool {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return false
	}

	lower := strings.ToLower(loc)
	if strings.Contains(lower, "united states") {
		return true
	}
	if p.RemoteIsDomestic && lower == "remote" {
		return true
	}

	tokens := splitLocationTokens(lower)

	// Drop trailing country designators so "San Jose, CA, USA" still
	// ends in a state token.
	for len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		stripped := false
		for _, suffix := range p.CountrySuffixes {
			if last == suffix {
				tokens = tokens[:len(tokens)-1]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	if len(tokens) == 0 {
		return false
	}
	return p.StateTokens[tokens[len(tokens)-1]]
}

func splitLocationTokens(location string) []string {
	raw := strings.FieldsFunc(location, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// usStateTokens covers the 50 states plus DC, lower-cased for matching.
var usStateTokens = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true,
	"co": true, "ct": true, "de": true, "fl": true, "ga": true,
	"hi": true, "id": true, "il": true, "in": true, "ia": true,
	"ks": true, "ky": true, "la": true, "me": true, "md": true,
	"ma": true, "mi": true, "mn": true, "ms": true, "mo": true,
	"mt": true, "ne": true, "nv": true, "nh": true, "nj": true,
	"nm": true, "ny": true, "nc": true, "nd": true, "oh": true,
	"ok": true, "or": true, "pa": true, "ri": true, "sc": true,
	"sd": true, "tn": true, "tx": true, "ut": true, "vt": true,
	"va": true, "wa": true, "wv": true, "wi": true, "wy": true,
	"dc": true,
}
