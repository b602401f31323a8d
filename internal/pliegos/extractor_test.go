package pliegos_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/licitavision/placsp-connector/internal/logger"
	"github.com/licitavision/placsp-connector/internal/pliegos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entryURL = "https://contrataciondelestado.es/licitacion/1"

// codiceFeed is a feed with one entry carrying a CODICE content block.
// The first legal URI appears twice to exercise deduplication.
const codiceFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<entry>
<id>` + entryURL + `</id>
<title>Obras</title>
<link rel="alternate" href="` + entryURL + `"/>
<content type="application/xml">
<ContractFolderStatus
    xmlns:cac="urn:dgpe:names:draft:codice:schema:xsd:CommonAggregateComponents-2"
    xmlns:cbc="urn:dgpe:names:draft:codice:schema:xsd:CommonBasicComponents-2">
  <cac:LegalDocumentReference>
    <cac:Attachment><cac:ExternalReference><cbc:URI>https://docs/pcap.pdf</cbc:URI></cac:ExternalReference></cac:Attachment>
  </cac:LegalDocumentReference>
  <cac:LegalDocumentReference>
    <cac:Attachment><cac:ExternalReference><cbc:URI>https://docs/pcap.pdf</cbc:URI></cac:ExternalReference></cac:Attachment>
  </cac:LegalDocumentReference>
  <cac:TechnicalDocumentReference>
    <cac:Attachment><cac:ExternalReference><cbc:URI>https://docs/ppt.pdf</cbc:URI></cac:ExternalReference></cac:Attachment>
  </cac:TechnicalDocumentReference>
  <cac:AditionalDocumentReference>
    <cac:Attachment><cac:ExternalReference><cbc:URI>https://docs/anexo.pdf</cbc:URI></cac:ExternalReference></cac:Attachment>
  </cac:AditionalDocumentReference>
  <cac:AditionalDocumentReference>
    <cac:Attachment><cbc:URI>https://docs/broken-chain.pdf</cbc:URI></cac:Attachment>
  </cac:AditionalDocumentReference>
</ContractFolderStatus>
</content>
</entry>
</feed>`

func xmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newExtractor() *pliegos.Extractor {
	return pliegos.NewExtractor(pliegos.Config{}, logger.NewNop())
}

func TestExtractCategorizesAndDeduplicates(t *testing.T) {
	srv := xmlServer(t, codiceFeed)

	refs := newExtractor().Extract(context.Background(), srv.URL, entryURL)
	require.Len(t, refs, 3)

	assert.Equal(t, domain.DocumentReference{Kind: domain.DocumentLegal, URI: "https://docs/pcap.pdf"}, refs[0])
	assert.Equal(t, domain.DocumentReference{Kind: domain.DocumentTechnical, URI: "https://docs/ppt.pdf"}, refs[1])
	assert.Equal(t, domain.DocumentReference{Kind: domain.DocumentOther, URI: "https://docs/anexo.pdf"}, refs[2])
}

func TestExtractIgnoresIncompleteChains(t *testing.T) {
	srv := xmlServer(t, codiceFeed)

	refs := newExtractor().Extract(context.Background(), srv.URL, entryURL)
	for _, ref := range refs {
		assert.NotEqual(t, "https://docs/broken-chain.pdf", ref.URI)
	}
}

func TestExtractMatchesEntryByID(t *testing.T) {
	// No alternate link at all: only the id element can match.
	feedBody := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<entry>
<id>` + entryURL + `</id>
<link rel="self" href="https://feeds/self.atom"/>
<content type="application/xml">
<Doc xmlns:cac="urn:x" xmlns:cbc="urn:y">
<cac:LegalDocumentReference><cac:Attachment><cac:ExternalReference><cbc:URI>https://docs/pcap.pdf</cbc:URI></cac:ExternalReference></cac:Attachment></cac:LegalDocumentReference>
</Doc>
</content>
</entry>
</feed>`
	srv := xmlServer(t, feedBody)

	refs := newExtractor().Extract(context.Background(), srv.URL, entryURL)
	require.Len(t, refs, 1)
	assert.Equal(t, domain.DocumentLegal, refs[0].Kind)
}

func TestExtractFallsBackToEntryURL(t *testing.T) {
	entrySrv := xmlServer(t, codiceFeed)

	// Feed URL unreachable; the entry URL itself serves the document.
	refs := newExtractor().Extract(context.Background(), "http://127.0.0.1:1/feed.atom", entrySrv.URL)
	assert.Len(t, refs, 3)
}

func TestExtractHTMLDetailPageYieldsEmpty(t *testing.T) {
	htmlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>detalle</body></html>")
	}))
	t.Cleanup(htmlSrv.Close)

	refs := newExtractor().Extract(context.Background(), "", htmlSrv.URL)
	assert.Empty(t, refs)
}

func TestExtractEntryNotInFeedFallsBack(t *testing.T) {
	otherFeed := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<entry><id>https://otra/licitacion</id><link rel="alternate" href="https://otra/licitacion"/></entry>
</feed>`
	feedSrv := xmlServer(t, otherFeed)

	refs := newExtractor().Extract(context.Background(), feedSrv.URL, "http://127.0.0.1:1/detalle")
	assert.Empty(t, refs)
}
