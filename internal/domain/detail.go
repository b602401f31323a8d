package domain

// Detail is the enriched record for one notice, produced by merging the
// detail worker's output with the document references extracted from the
// owning feed entry.
type Detail struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	AwardingBody string `json:"entidad"`
	CPV          string `json:"cpv"`
	Amount       string `json:"importe"`
	// DocumentLinks are the PDF links the worker found on the rendered
	// detail page.
	DocumentLinks []string `json:"pliegos"`
	// DocumentReferences are the structured references extracted from the
	// feed's CODICE content block.
	DocumentReferences []DocumentReference `json:"pliegos_xml"`
}

// DocumentKind categorizes a tender document reference.
type DocumentKind string

// Document kinds, named after the PLACSP document types: PCAP is the
// administrative (legal) specification, PPT the technical one.
const (
	DocumentLegal     DocumentKind = "PCAP"
	DocumentTechnical DocumentKind = "PPT"
	DocumentOther     DocumentKind = "OTRO"
)

// DocumentReference is one tender-document link from an entry's CODICE
// content block.
type DocumentReference struct {
	Kind DocumentKind `json:"tipo"`
	URI  string       `json:"url"`
}
