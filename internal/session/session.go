// Package session holds the process-lifetime pipeline state shared by
// the ingest, enrichment and catalog stages. The stages have a required
// call order; callers use HasURLs/HasCPVs to surface out-of-order calls.
package session

import "sync"

// Store is the mutable state shared across pipeline stages. All methods
// are safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	// urls is the detail-URL list of the most recent ingest call, in feed
	// iteration order. Overwritten wholesale on every ingest.
	urls []string
	// cpvs maps a detail URL to its most recently scraped classification
	// string. Entries are overwritten per URL and never removed.
	cpvs map[string]string
}

// New creates an empty session store.
func New() *Store {
	return &Store{cpvs: make(map[string]string)}
}

// SetURLs replaces the ingested URL list wholesale.
func (s *Store) SetURLs(urls []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append([]string(nil), urls...)
}

// URLs returns a copy of the most recently ingested URL list.
func (s *Store) URLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.urls...)
}

// HasURLs reports whether an ingest call has populated the URL list.
func (s *Store) HasURLs() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.urls) > 0
}

// SetCPV records the scraped classification string for url,
// overwriting any previous value for that URL.
func (s *Store) SetCPV(url, cpv string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cpvs[url] = cpv
}

// ResetCPVs clears the classification map ahead of a fresh batch scrape.
func (s *Store) ResetCPVs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cpvs = make(map[string]string)
}

// CPVs returns a copy of the URL-to-classification map.
func (s *Store) CPVs() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.cpvs))
	for k, v := range s.cpvs {
		out[k] = v
	}
	return out
}

// HasCPVs reports whether batch enrichment has populated any
// classification data.
func (s *Store) HasCPVs() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cpvs) > 0
}
