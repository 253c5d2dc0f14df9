package xlsx_test

import (
	"testing"

	"license-reconciler/core/reconcile"
	"license-reconciler/core/xlsx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate_ColorsMatchedRows(t *testing.T) {
	f := buildPreEA(t,
		[]any{"A1", "X", 5, "2024-06-01"},
		[]any{"B2", "Y", 3, "2024-06-01"},
	)
	defer f.Close()
	sheet := f.GetSheetName(0)

	results := []reconcile.RowResult{
		{Item: reconcile.LineItem{Row: 2}, Outcome: reconcile.OutcomeOK},
		{Item: reconcile.LineItem{Row: 3}, Outcome: reconcile.OutcomeNotFound},
	}
	require.NoError(t, xlsx.Annotate(f, results))

	okStyle, err := f.GetCellStyle(sheet, "A2")
	require.NoError(t, err)
	notFoundStyle, err := f.GetCellStyle(sheet, "B3")
	require.NoError(t, err)

	assert.NotZero(t, okStyle)
	assert.NotZero(t, notFoundStyle)
	assert.NotEqual(t, okStyle, notFoundStyle)

	// The header row keeps the default style.
	headerStyle, err := f.GetCellStyle(sheet, "A1")
	require.NoError(t, err)
	assert.NotEqual(t, okStyle, headerStyle)

	// Cell content survives annotation.
	v, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "A1", v)
}

func TestAnnotate_SkipsResultsWithoutRow(t *testing.T) {
	f := buildPreEA(t, []any{"A1", "X", 5, "2024-06-01"})
	defer f.Close()

	results := []reconcile.RowResult{
		{Item: reconcile.LineItem{Row: 0}, Outcome: reconcile.OutcomeOK},
	}
	assert.NoError(t, xlsx.Annotate(f, results))
}
