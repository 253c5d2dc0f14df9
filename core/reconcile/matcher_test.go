package reconcile

import (
	"testing"

	"license-reconciler/core/skumap"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	exceptions := skumap.Map{"Y": "Z", "SELF": "SELF", "EMPTY": ""}

	tests := []struct {
		name string
		sku  string
		want []string
	}{
		{"unmapped sku yields itself", "X", []string{"X"}},
		{"mapped sku yields direct candidate first", "Y", []string{"Y", "Z"}},
		{"self mapping collapses to one candidate", "SELF", []string{"SELF"}},
		{"empty mapping collapses to one candidate", "EMPTY", []string{"EMPTY"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.sku, exceptions))
		})
	}
}

func TestFindMatches(t *testing.T) {
	cssm := []LineItem{
		{OrderNumber: "A1", SKU: "X", Quantity: 4},
		{OrderNumber: "A1", SKU: "X", Quantity: 6},
		{OrderNumber: "A1", SKU: "Z", Quantity: 9},
		{OrderNumber: "B2", SKU: "X", Quantity: 1},
	}
	idx := BuildIndex(cssm)

	t.Run("direct match returns every row under the key", func(t *testing.T) {
		row := LineItem{OrderNumber: "A1", SKU: "X"}
		matches := FindMatches(row, idx, skumap.Map{})
		assert.Len(t, matches, 2)
	})

	t.Run("direct match shadows exception mapping", func(t *testing.T) {
		row := LineItem{OrderNumber: "A1", SKU: "X"}
		matches := FindMatches(row, idx, skumap.Map{"X": "Z"})
		assert.Len(t, matches, 2)
		assert.Equal(t, "X", matches[0].SKU)
	})

	t.Run("exception mapping fills in when direct misses", func(t *testing.T) {
		row := LineItem{OrderNumber: "A1", SKU: "Y"}
		matches := FindMatches(row, idx, skumap.Map{"Y": "Z"})
		assert.Len(t, matches, 1)
		assert.Equal(t, "Z", matches[0].SKU)
	})

	t.Run("order number scopes the match", func(t *testing.T) {
		row := LineItem{OrderNumber: "C3", SKU: "X"}
		assert.Empty(t, FindMatches(row, idx, skumap.Map{}))
	})

	t.Run("unknown sku yields no matches", func(t *testing.T) {
		row := LineItem{OrderNumber: "A1", SKU: "Q"}
		assert.Empty(t, FindMatches(row, idx, skumap.Map{}))
	})
}
