package reconcile

import "license-reconciler/core/skumap"

// Resolve expands a PRE-EA SKU into the ordered set of CSSM SKUs it should be
// compared against. The literal SKU always comes first so a direct match is
// preferred over an exception-mapped one; the mapped SKU, when present in the
// exception table, follows. Resolve never fails and never mutates the table.
func Resolve(sku string, exceptions skumap.Map) []string {
	candidates := []string{sku}
	if mapped, ok := exceptions.Lookup(sku); ok && mapped != "" && mapped != sku {
		candidates = append(candidates, mapped)
	}
	return candidates
}
