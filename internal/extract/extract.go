// Package extract implements best-effort field extraction from the free
// text of a procurement notice. All scanners return ok=false rather than
// an error when nothing matches; "not found" and "malformed" are not
// distinguished because the upstream text is not a grammar.
package extract

import (
	"regexp"
	"strings"
)

var (
	// amountRe matches a European-style grouped decimal with exactly two
	// fractional digits, e.g. "12.345,67".
	amountRe = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})*,\d{2}\b`)

	// awardingBodyRe captures the text after a contracting-authority
	// label up to the next line break or semicolon. The alternatives
	// cover both the accented and the diacritic-folded spelling.
	awardingBodyRe = regexp.MustCompile(`(?i)(?:órgano\s+de\s+contratación|organo\s+de\s+contratacion|entidad\s+adjudicadora)\s*[:\-]\s*([^\n\r;]+)`)

	// cpvRe matches a standalone 8-digit token. No vocabulary validation;
	// purely syntactic.
	cpvRe = regexp.MustCompile(`\b\d{8}\b`)
)

// Amount returns the first locale-formatted monetary amount in text.
func Amount(text string) (string, bool) {
	m := amountRe.FindString(text)
	return m, m != ""
}

// AwardingBody returns the contracting-authority name following a label
// synonym, trimmed.
func AwardingBody(text string) (string, bool) {
	m := awardingBodyRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	body := strings.TrimSpace(m[1])
	return body, body != ""
}

// CPVGuess returns the first standalone 8-digit token in text.
func CPVGuess(text string) (string, bool) {
	m := cpvRe.FindString(text)
	return m, m != ""
}
