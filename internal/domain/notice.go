// Package domain defines the core types shared across the PLACSP
// connector pipeline.
package domain

// Notice is a single procurement notice parsed from a syndication feed.
// Notices are immutable once produced by an ingest call.
type Notice struct {
	Title   string `json:"title"`
	Updated string `json:"updated"`
	// URL is the canonical detail page link and the unique key for the
	// notice within a run.
	URL string `json:"url"`
	// AwardingBody, Amount and CPVGuess are best-effort extractions from
	// the entry's free text; empty when no match was found.
	AwardingBody string `json:"organo,omitempty"`
	Amount       string `json:"importe,omitempty"`
	CPVGuess     string `json:"cpv_guess,omitempty"`
	// SourceFeed is the syndication document the notice came from.
	SourceFeed string `json:"feed_origen"`
}
