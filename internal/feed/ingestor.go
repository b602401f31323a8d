// Package feed implements syndication ingest: fetching the configured
// PLACSP Atom documents, validating that the response really is a feed,
// and turning matching entries into notice records.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/licitavision/placsp-connector/internal/extract"
	"github.com/licitavision/placsp-connector/internal/geo"
	"github.com/licitavision/placsp-connector/internal/logger"
	"github.com/licitavision/placsp-connector/internal/normalize"
	"github.com/licitavision/placsp-connector/internal/session"
	"github.com/licitavision/placsp-connector/internal/telemetry"
)

// maxResponseBodyBytes limits the size of fetched feed documents.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// validationWindow is how much of the body is inspected for a feed root
// marker when the content-type header is inconclusive.
const validationWindow = 2000

// Skip reasons recorded in metrics and logs.
const (
	skipFetch   = "fetch"
	skipNotFeed = "not_feed"
	skipParse   = "parse"
)

// Config holds ingest settings.
type Config struct {
	Sources      []string
	FetchTimeout time.Duration
	UserAgent    string
}

// Ingestor fetches and filters procurement notices from Atom feeds.
type Ingestor struct {
	cfg     Config
	client  *http.Client
	session *session.Store
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewIngestor creates an ingestor over the configured feed sources.
func NewIngestor(cfg Config, sess *session.Store, metrics *telemetry.Metrics, log logger.Logger) *Ingestor {
	return &Ingestor{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		session: sess,
		metrics: metrics,
		log:     log,
	}
}

// Ingest scans every configured source in order and returns up to limit
// notices whose text mentions a locality resolved from regions. The
// session URL list is overwritten wholesale with the matched detail
// URLs. A run that yields nothing returns domain.ErrNoMatches, whether
// the filter removed every entry or every source was unavailable.
func (in *Ingestor) Ingest(ctx context.Context, regions []string, limit int) ([]domain.Notice, error) {
	localities := geo.Localities(regions)

	var (
		notices []domain.Notice
		urls    []string
	)

	// Previous ingest results are invalid the moment a new run starts.
	in.session.SetURLs(nil)

	for _, src := range in.cfg.Sources {
		if len(notices) >= limit {
			break
		}

		body, contentType, err := in.fetch(ctx, src)
		if err != nil {
			in.metrics.FeedsSkipped.WithLabelValues(skipFetch).Inc()
			in.log.Warn("skipping feed source: fetch failed",
				logger.String("feed", src),
				logger.Error(err),
			)
			continue
		}

		if !plausiblyFeed(contentType, body) {
			in.metrics.FeedsSkipped.WithLabelValues(skipNotFeed).Inc()
			in.log.Warn("skipping feed source: response is not a syndication document",
				logger.String("feed", src),
				logger.String("content_type", contentType),
			)
			continue
		}

		doc, err := xmlquery.Parse(bytes.NewReader(body))
		if err != nil {
			in.metrics.FeedsSkipped.WithLabelValues(skipParse).Inc()
			in.log.Warn("skipping feed source: invalid XML",
				logger.String("feed", src),
				logger.Error(err),
			)
			continue
		}
		in.metrics.FeedsFetched.Inc()

		for _, entry := range xmlquery.Find(doc, "//entry") {
			notice, ok := in.noticeFromEntry(entry, src, localities)
			if !ok {
				continue
			}

			notices = append(notices, notice)
			urls = append(urls, notice.URL)
			in.metrics.NoticesKept.Inc()

			if len(notices) >= limit {
				break
			}
		}
	}

	if len(notices) == 0 {
		in.metrics.IngestNoMatch.Inc()
		return nil, domain.ErrNoMatches
	}

	in.session.SetURLs(urls)
	in.log.Info("ingest completed",
		logger.Int("notices", len(notices)),
		logger.Int("localities", len(localities)),
	)
	return notices, nil
}

// noticeFromEntry builds a notice from one Atom entry, applying the
// locality filter. Entries without an alternate link are dropped.
func (in *Ingestor) noticeFromEntry(entry *xmlquery.Node, src string, localities []string) (domain.Notice, bool) {
	url := alternateLink(entry)
	if url == "" {
		return domain.Notice{}, false
	}

	blob := normalize.Fold(childText(entry, "summary") + " " + childText(entry, "content"))

	if !matchesAny(blob, localities) {
		return domain.Notice{}, false
	}

	notice := domain.Notice{
		Title:      strings.TrimSpace(childText(entry, "title")),
		Updated:    childText(entry, "updated"),
		URL:        url,
		SourceFeed: src,
	}
	notice.AwardingBody, _ = extract.AwardingBody(blob)
	notice.Amount, _ = extract.Amount(blob)
	notice.CPVGuess, _ = extract.CPVGuess(blob)

	return notice, true
}

// fetch retrieves one feed document with browser-mimicking headers.
func (in *Ingestor) fetch(ctx context.Context, url string) (body []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", in.cfg.UserAgent)
	req.Header.Set("Accept", "application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := in.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read feed body: %w", err)
	}

	return body, strings.ToLower(resp.Header.Get("Content-Type")), nil
}

// plausiblyFeed reports whether the response looks like a syndication
// document: the content-type hints at XML/Atom, or the first part of the
// body carries a feed root marker. Anti-bot protection on the upstream
// substitutes an HTML page, which fails both checks.
func plausiblyFeed(contentType string, body []byte) bool {
	if strings.Contains(contentType, "xml") || strings.Contains(contentType, "atom") {
		return true
	}

	window := body
	if len(window) > validationWindow {
		window = window[:validationWindow]
	}
	return bytes.Contains(bytes.ToLower(window), []byte("<feed"))
}

// matchesAny reports whether any locality occurs as a substring of the
// folded text blob.
func matchesAny(blob string, localities []string) bool {
	for _, loc := range localities {
		if strings.Contains(blob, loc) {
			return true
		}
	}
	return false
}

// childText returns the inner text of the first child element with the
// given local name, or "".
func childText(n *xmlquery.Node, name string) string {
	el := n.SelectElement(name)
	if el == nil {
		return ""
	}
	return el.InnerText()
}

// alternateLink returns the entry's canonical detail URL: the alternate
// link's href, falling back to the first link that carries one.
func alternateLink(entry *xmlquery.Node) string {
	var first string
	for _, link := range entry.SelectElements("link") {
		href := link.SelectAttr("href")
		if href == "" {
			continue
		}
		if link.SelectAttr("rel") == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}
