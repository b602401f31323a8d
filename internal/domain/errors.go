package domain

import "errors"

// Pipeline stage errors. The stages have a required call order
// (ingest, then batch scrape, then catalog or filter); invoking a stage
// before its prerequisite populated the session is a caller error.
var (
	// ErrNoMatches means an ingest call produced zero notices, either
	// because the region filter removed every entry or because every feed
	// was unavailable. The two causes are intentionally not distinguished.
	ErrNoMatches = errors.New("no notices matched the requested regions (or the feeds are temporarily unavailable)")

	// ErrIngestRequired means a stage that depends on the ingested URL
	// list was called before any ingest populated it.
	ErrIngestRequired = errors.New("no notices ingested yet: run an ingest first")

	// ErrScrapeRequired means the catalog or filter stage was called
	// before batch enrichment populated any classification data.
	ErrScrapeRequired = errors.New("no classification data scraped yet: run the batch scrape first")
)
