package reconcile

import "time"

// Outcome classifies the reconciliation verdict for a single PRE-EA row.
type Outcome string

const (
	// OutcomeNotFound means no CSSM row matched the order number / SKU pair.
	OutcomeNotFound Outcome = "NOT_FOUND"
	// OutcomeQuantityMismatch means the summed CSSM quantity differs from PRE-EA.
	OutcomeQuantityMismatch Outcome = "QUANTITY_MISMATCH"
	// OutcomeDateIssue means an expiration date is missing, unparseable, or the
	// PRE-EA item outlives the earliest matched CSSM entitlement.
	OutcomeDateIssue Outcome = "DATE_ISSUE"
	// OutcomeOK means quantity and expiration date agree.
	OutcomeOK Outcome = "OK"
)

// LineItem is one logical row from either export. It is immutable once
// parsed; column-to-field mapping happens upstream in core/xlsx.
type LineItem struct {
	// OrderNumber is the order identity ("ALC Order Number" in PRE-EA,
	// "Source Identifier" in CSSM).
	OrderNumber string `json:"order_number"`

	// SKU is the stock-keeping unit identifier.
	SKU string `json:"sku"`

	// Quantity is the licensed quantity, never negative.
	Quantity int `json:"quantity"`

	// ExpirationDate is the parsed expiration date, nil when the source cell
	// was empty or unparseable.
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`

	// Row is the 1-based workbook row this item came from, kept so results
	// and logs can point back at the source file.
	Row int `json:"row"`
}

// RowResult pairs one PRE-EA line item with its verdict.
type RowResult struct {
	Item    LineItem `json:"item"`
	Outcome Outcome  `json:"outcome"`
	Detail  string   `json:"detail"`
}

// Summary holds per-outcome tallies for a run.
type Summary struct {
	Total            int `json:"total"`
	NotFound         int `json:"not_found"`
	QuantityMismatch int `json:"quantity_mismatch"`
	DateIssue        int `json:"date_issue"`
	OK               int `json:"ok"`
}

// Result is the output of one reconciliation run. Rows preserve PRE-EA input
// order, one entry per input row. A Result is created fresh per run and not
// mutated afterwards.
type Result struct {
	Rows    []RowResult `json:"rows"`
	Summary Summary     `json:"summary"`
}

// LogEntry records the inputs and rationale behind one row's verdict.
// Entries are append-only and emitted in processing order.
type LogEntry struct {
	// Row is the PRE-EA workbook row the entry belongs to.
	Row int `json:"row"`

	// OrderNumber and SKU identify the PRE-EA line item.
	OrderNumber string `json:"order_number"`
	SKU         string `json:"sku"`

	// Candidates lists the CSSM SKUs considered, direct SKU first.
	Candidates []string `json:"candidates"`

	// Matched is the number of CSSM rows in the winning match set.
	Matched int `json:"matched"`

	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail"`
}

func (s *Summary) count(o Outcome) {
	s.Total++
	switch o {
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeQuantityMismatch:
		s.QuantityMismatch++
	case OutcomeDateIssue:
		s.DateIssue++
	case OutcomeOK:
		s.OK++
	}
}
