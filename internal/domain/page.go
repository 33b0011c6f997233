package domain

import "time"

// PageStatus represents the indexing state of a captured page.
type PageStatus string

const (
	PageStatusPending PageStatus = "pending"
	PageStatusIndexed PageStatus = "indexed"
	PageStatusSkipped PageStatus = "skipped"
)

// Page is a captured web page awaiting or holding an embedding.
type Page struct {
	ID          string
	URL         string
	Content     string
	Summary     string
	Status      PageStatus
	SnapshotKey string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RawResult is a nearest-neighbor hit straight from the vector index:
// the stored URL, the L2 distance to the query vector, and the query
// text that produced it.
type RawResult struct {
	URL      string
	Distance float64
	Query    string
}

// HighlightInstructions tells the presentation layer how to highlight a result.
type HighlightInstructions struct {
	Method              string  `json:"method"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// ScoredResult is a confidence-ranked search result. Immutable once computed.
type ScoredResult struct {
	URL           string                `json:"url"`
	Confidence    float64               `json:"confidence"`
	SemanticScore float64               `json:"semantic_score"`
	TermScore     float64               `json:"term_score"`
	Highlight     HighlightInstructions `json:"highlight_instructions"`
}

// ValidatePage validates a Page instance before persistence.
func ValidatePage(p *Page) error {
	if p == nil {
		return NewDomainError(ErrCodeValidation, "page cannot be nil")
	}
	if p.ID == "" {
		return NewDomainError(ErrCodeValidation, "page ID is required")
	}
	if p.URL == "" {
		return NewDomainError(ErrCodeValidation, "page URL is required")
	}
	if !isValidPageStatus(p.Status) {
		return NewDomainError(ErrCodeValidation, "page status is invalid: "+string(p.Status))
	}
	return nil
}

func isValidPageStatus(s PageStatus) bool {
	switch s {
	case PageStatusPending, PageStatusIndexed, PageStatusSkipped:
		return true
	}
	return false
}
