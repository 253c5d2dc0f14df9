package reconcile

import (
	"fmt"

	"license-reconciler/core/skumap"
)

// Reconcile runs the full comparison of a PRE-EA table against a CSSM table.
//
// It walks PRE-EA rows in input order and, for each, resolves candidate SKUs,
// collects the matching CSSM rows, and classifies the pair. The Result holds
// one RowResult per input row plus summary tallies; the log holds one entry
// per row with the inputs considered and the rationale.
//
// Inputs are never mutated and the exception table is read-only for the
// duration of a run. Nil tables violate the input contract and abort the run;
// every row-level problem degrades to a per-row outcome instead.
func Reconcile(preEA, cssm []LineItem, exceptions skumap.Map) (*Result, []LogEntry, error) {
	if preEA == nil {
		return nil, nil, fmt.Errorf("reconcile: PRE-EA table is nil")
	}
	if cssm == nil {
		return nil, nil, fmt.Errorf("reconcile: CSSM table is nil")
	}
	if exceptions == nil {
		exceptions = skumap.Map{}
	}

	idx := BuildIndex(cssm)

	result := &Result{Rows: make([]RowResult, 0, len(preEA))}
	log := make([]LogEntry, 0, len(preEA))

	for _, row := range preEA {
		matches := FindMatches(row, idx, exceptions)
		outcome, detail := Compare(row, matches)

		result.Rows = append(result.Rows, RowResult{Item: row, Outcome: outcome, Detail: detail})
		result.Summary.count(outcome)

		log = append(log, LogEntry{
			Row:         row.Row,
			OrderNumber: row.OrderNumber,
			SKU:         row.SKU,
			Candidates:  Resolve(row.SKU, exceptions),
			Matched:     len(matches),
			Outcome:     outcome,
			Detail:      detail,
		})
	}

	return result, log, nil
}
