// Package pliegos extracts tender-document references from the CODICE
// content block embedded in PLACSP feed entries.
//
// Each reference lives at the end of a fixed chain inside the entry's
// content: <kind>DocumentReference → Attachment → ExternalReference →
// URI, where kind is Legal (PCAP), Technical (PPT) or Aditional (other;
// PLACSP spells it with a single "d"). Only fully-formed chains yield a
// reference.
package pliegos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/licitavision/placsp-connector/internal/logger"
)

const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// referencePaths pairs each document kind with the element chain that
// carries its URIs, in extraction order.
var referencePaths = []struct {
	kind domain.DocumentKind
	path string
}{
	{domain.DocumentLegal, ".//LegalDocumentReference/Attachment/ExternalReference/URI"},
	{domain.DocumentTechnical, ".//TechnicalDocumentReference/Attachment/ExternalReference/URI"},
	{domain.DocumentOther, ".//AditionalDocumentReference/Attachment/ExternalReference/URI"},
}

// Config holds extractor settings.
type Config struct {
	FetchTimeout time.Duration
	UserAgent    string
}

// Extractor locates a feed entry and pulls its document references.
type Extractor struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// NewExtractor creates a document-reference extractor.
func NewExtractor(cfg Config, log logger.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		log:    log,
	}
}

// Extract returns the document references of the entry identified by
// entryURL within the feed document at feedURL. When the feed cannot be
// fetched or the entry cannot be located, it falls back to parsing
// entryURL itself as a single-entry document. Every failure path yields
// an empty slice: many canonical URLs are HTML detail pages rather than
// XML, so "nothing extractable" is an expected outcome, not an error.
func (e *Extractor) Extract(ctx context.Context, feedURL, entryURL string) []domain.DocumentReference {
	if feedURL != "" {
		doc, err := e.fetchXML(ctx, feedURL)
		if err != nil {
			e.log.Warn("pliegos: feed document unavailable",
				logger.String("feed", feedURL),
				logger.Error(err),
			)
		} else if entry := findEntry(doc, entryURL); entry != nil {
			return referencesFromEntry(entry)
		}
	}

	// Fallback: some canonical URLs serve the entry XML directly.
	doc, err := e.fetchXML(ctx, entryURL)
	if err != nil {
		e.log.Debug("pliegos: entry URL is not an XML document",
			logger.String("url", entryURL),
			logger.Error(err),
		)
		return nil
	}
	if entry := xmlquery.FindOne(doc, "//entry"); entry != nil {
		return referencesFromEntry(entry)
	}
	return nil
}

// fetchXML retrieves and parses one XML document.
func (e *Extractor) fetchXML(ctx context.Context, url string) (*xmlquery.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if e.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", e.cfg.UserAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}
	return doc, nil
}

// findEntry locates the entry whose alternate link or identifier matches
// the canonical URL.
func findEntry(doc *xmlquery.Node, entryURL string) *xmlquery.Node {
	for _, entry := range xmlquery.Find(doc, "//entry") {
		if id := entry.SelectElement("id"); id != nil && id.InnerText() == entryURL {
			return entry
		}
		for _, link := range entry.SelectElements("link") {
			if link.SelectAttr("rel") == "alternate" && link.SelectAttr("href") == entryURL {
				return entry
			}
		}
	}
	return nil
}

// referencesFromEntry walks the three reference chains of the entry's
// content block, deduplicating by URI with first occurrence winning.
func referencesFromEntry(entry *xmlquery.Node) []domain.DocumentReference {
	content := entry.SelectElement("content")
	if content == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var refs []domain.DocumentReference
	for _, rp := range referencePaths {
		for _, uriNode := range xmlquery.Find(content, rp.path) {
			uri := uriNode.InnerText()
			if uri == "" {
				continue
			}
			if _, dup := seen[uri]; dup {
				continue
			}
			seen[uri] = struct{}{}
			refs = append(refs, domain.DocumentReference{Kind: rp.kind, URI: uri})
		}
	}
	return refs
}
