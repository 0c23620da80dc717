package model

import "unicode/utf8"

// FailureKind discriminates failure-context records.
type FailureKind string

const (
	FailureCustomerID    FailureKind = "customer_id"
	FailureSKUExtraction FailureKind = "sku_extraction"
	FailureException     FailureKind = "exception"
)

// SKUFailReason explains why an individual product line could not be resolved.
type SKUFailReason string

const (
	ReasonNoOrderLines   SKUFailReason = "no_order_lines"
	ReasonAllLinesFailed SKUFailReason = "all_lines_failed"
	ReasonMissingFields  SKUFailReason = "missing_fields"
	ReasonFamilyMatch    SKUFailReason = "family_match_failed"
	ReasonColorMatch     SKUFailReason = "color_match_failed"
	ReasonConstruction   SKUFailReason = "sku_construction_failed"
	ReasonException      SKUFailReason = "exception"
)

// FailedLine records one product line that was extracted but could not be
// turned into a SKU, with the closest-match diagnostics for the failing step.
type FailedLine struct {
	LineNumber   int           `json:"line_number"`
	Reason       SKUFailReason `json:"reason"`
	Extracted    string        `json:"extracted,omitempty"`     // family or color text that failed to match
	MatchScore   float64       `json:"match_score,omitempty"`   // best similarity seen
	ClosestMatch string        `json:"closest_match,omitempty"` // registry description of the best candidate
}

// FailureContext is a write-once diagnostic record appended whenever a
// resolution step fails. Records accumulate per job and are persisted once
// per job for batch summarization.
type FailureContext struct {
	Kind       FailureKind `json:"type"`
	OrderNo    int         `json:"order_number"`
	EntryID    string      `json:"entry_id"`
	EmailSnip  string      `json:"email_snippet,omitempty"`
	CustomerID *int        `json:"customer_id,omitempty"`

	// customer_id kind
	ExtractedNames       []string `json:"extracted_names,omitempty"`
	BestMatchName        *string  `json:"best_match_name,omitempty"`
	BestMatchID          *int     `json:"best_match_id,omitempty"`
	BestMatchScore       float64  `json:"best_match_score,omitempty"`
	Threshold            float64  `json:"threshold_used,omitempty"`
	EmailLookupAttempted bool     `json:"email_lookup_attempted,omitempty"`
	EmailLookupAddress   string   `json:"email_lookup_address,omitempty"`

	// sku_extraction kind
	Reason         SKUFailReason `json:"reason,omitempty"`
	LinesAttempted int           `json:"total_lines_attempted,omitempty"`
	FailedLines    []FailedLine  `json:"failed_lines,omitempty"`

	// exception kind
	ExceptionMessage string `json:"exception_message,omitempty"`
}

// SnippetLimit caps email snippets embedded in diagnostics.
const SnippetLimit = 500

// Snippet truncates text to at most SnippetLimit bytes for diagnostic
// payloads, backing up to a rune boundary so accented text never leaves an
// invalid tail.
func Snippet(text string) string {
	if len(text) <= SnippetLimit {
		return text
	}
	cut := SnippetLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
