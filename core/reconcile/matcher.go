package reconcile

import "license-reconciler/core/skumap"

// Index groups a CSSM table by order number + SKU so per-row lookups stay
// constant-time over tables with thousands of rows.
type Index map[indexKey][]LineItem

type indexKey struct {
	orderNumber string
	sku         string
}

// BuildIndex indexes a CSSM table for matching. Rows sharing an order number
// and SKU land in the same bucket, preserving table order within the bucket.
func BuildIndex(cssm []LineItem) Index {
	idx := make(Index, len(cssm))
	for _, row := range cssm {
		key := indexKey{orderNumber: row.OrderNumber, sku: row.SKU}
		idx[key] = append(idx[key], row)
	}
	return idx
}

// FindMatches returns the full set of CSSM rows matching a PRE-EA row.
//
// Candidate SKUs come from Resolve; the first candidate with any rows under
// the PRE-EA order number wins, so a direct SKU match always shadows an
// exception-mapped one. An empty result is a normal outcome and signals
// NOT_FOUND downstream, never an error.
func FindMatches(row LineItem, idx Index, exceptions skumap.Map) []LineItem {
	for _, sku := range Resolve(row.SKU, exceptions) {
		if matches := idx[indexKey{orderNumber: row.OrderNumber, sku: sku}]; len(matches) > 0 {
			return matches
		}
	}
	return nil
}
