// Package api exposes the connector over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/licitavision/placsp-connector/internal/catalog"
	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/licitavision/placsp-connector/internal/logger"
	"github.com/licitavision/placsp-connector/internal/scrape"
	"github.com/licitavision/placsp-connector/internal/session"
)

// NoticeIngestor fetches and filters syndication feeds.
type NoticeIngestor interface {
	Ingest(ctx context.Context, regions []string, limit int) ([]domain.Notice, error)
}

// DetailScraper runs the detail worker.
type DetailScraper interface {
	Scrape(ctx context.Context, url string) (*domain.Detail, error)
	EnrichBatch(ctx context.Context) (map[string]string, error)
}

// ReferenceExtractor pulls tender-document references from feed XML.
type ReferenceExtractor interface {
	Extract(ctx context.Context, feedURL, entryURL string) []domain.DocumentReference
}

// Handler carries the HTTP endpoints and their collaborators.
type Handler struct {
	ingestor NoticeIngestor
	scraper  DetailScraper
	refs     ReferenceExtractor
	session  *session.Store

	defaultLimit int
	maxLimit     int
	log          logger.Logger
}

// NewHandler creates the endpoint handler.
func NewHandler(in NoticeIngestor, sc DetailScraper, re ReferenceExtractor, sess *session.Store, defaultLimit, maxLimit int, log logger.Logger) *Handler {
	return &Handler{
		ingestor:     in,
		scraper:      sc,
		refs:         re,
		session:      sess,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		log:          log,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listNotices ingests the configured feeds filtered by region.
func (h *Handler) listNotices(c *gin.Context) {
	regions := c.QueryArray("regions")
	if len(regions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "regions query parameter is required"})
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	notices, err := h.ingestor.Ingest(c.Request.Context(), regions, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(notices), "results": notices})
}

// scrapeCPVs runs the detail worker over every URL of the last ingest.
func (h *Handler) scrapeCPVs(c *gin.Context) {
	results, err := h.scraper.EnrichBatch(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// catalogCodes returns the aggregated CPV catalog of the scraped batch.
func (h *Handler) catalogCodes(c *gin.Context) {
	codes, err := catalog.Codes(h.session.CPVs())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(codes), "results": codes})
}

// filterCatalog returns the URLs whose CPV segments intersect the
// caller's selection.
func (h *Handler) filterCatalog(c *gin.Context) {
	raw := c.Query("codes")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "codes query parameter is required"})
		return
	}

	results, err := catalog.Filter(h.session.CPVs(), strings.Split(raw, ","))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// noticeDetail scrapes one detail page and merges in the document
// references extracted from the entry's feed XML.
func (h *Handler) noticeDetail(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	detail, err := h.scraper.Scrape(c.Request.Context(), url)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// Reference extraction degrades to an empty list, never an error.
	detail.DocumentReferences = h.refs.Extract(c.Request.Context(), c.Query("feed"), url)

	c.JSON(http.StatusOK, detail)
}

// renderError maps domain errors onto HTTP statuses: no matches is 404,
// out-of-order calls are 400, worker failures of any kind are 502.
func (h *Handler) renderError(c *gin.Context, err error) {
	var se *scrape.Error
	switch {
	case errors.Is(err, domain.ErrNoMatches):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrIngestRequired), errors.Is(err, domain.ErrScrapeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &se):
		c.JSON(http.StatusBadGateway, gin.H{"error": se.Message, "kind": string(se.Kind)})
	default:
		h.log.Error("unhandled request error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
