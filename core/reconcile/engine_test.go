package reconcile

import (
	"testing"

	"license-reconciler/core/skumap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		preEA      LineItem
		cssm       []LineItem
		exceptions skumap.Map
		want       Outcome
	}{
		{
			name:  "direct match with agreeing fields is ok",
			preEA: LineItem{OrderNumber: "A1", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-01-01")},
			cssm:  []LineItem{{OrderNumber: "A1", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-06-01")}},
			want:  OutcomeOK,
		},
		{
			name:       "exception-mapped match with agreeing fields is ok",
			preEA:      LineItem{OrderNumber: "A1", SKU: "Y", Quantity: 5, ExpirationDate: date(t, "2024-01-01")},
			cssm:       []LineItem{{OrderNumber: "A1", SKU: "Z", Quantity: 5, ExpirationDate: date(t, "2024-06-01")}},
			exceptions: skumap.Map{"Y": "Z"},
			want:       OutcomeOK,
		},
		{
			name:  "missing order number is not found",
			preEA: LineItem{OrderNumber: "A1", SKU: "X", Quantity: 5},
			cssm:  []LineItem{{OrderNumber: "B2", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-06-01")}},
			want:  OutcomeNotFound,
		},
		{
			name:  "split cssm rows aggregate to ok",
			preEA: LineItem{OrderNumber: "A1", SKU: "X", Quantity: 10, ExpirationDate: date(t, "2024-01-01")},
			cssm: []LineItem{
				{OrderNumber: "A1", SKU: "X", Quantity: 4, ExpirationDate: date(t, "2024-06-01")},
				{OrderNumber: "A1", SKU: "X", Quantity: 6, ExpirationDate: date(t, "2024-07-01")},
			},
			want: OutcomeOK,
		},
		{
			name:  "pre-ea outliving cssm is a date issue",
			preEA: LineItem{OrderNumber: "A1", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-12-01")},
			cssm:  []LineItem{{OrderNumber: "A1", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-06-01")}},
			want:  OutcomeDateIssue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, log, err := Reconcile([]LineItem{tt.preEA}, tt.cssm, tt.exceptions)
			require.NoError(t, err)
			require.Len(t, result.Rows, 1)
			require.Len(t, log, 1)
			assert.Equal(t, tt.want, result.Rows[0].Outcome)
			assert.Equal(t, tt.want, log[0].Outcome)
			assert.Equal(t, 1, result.Summary.Total)
		})
	}
}

func TestReconcile_OrderAndSummary(t *testing.T) {
	preEA := []LineItem{
		{OrderNumber: "A1", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-01-01"), Row: 2},
		{OrderNumber: "A1", SKU: "MISSING", Quantity: 5, Row: 3},
		{OrderNumber: "A1", SKU: "X", Quantity: 99, Row: 4},
		{OrderNumber: "A1", SKU: "X", Quantity: 5, Row: 5}, // no PRE-EA date
	}
	cssm := []LineItem{
		{OrderNumber: "A1", SKU: "X", Quantity: 5, ExpirationDate: date(t, "2024-06-01")},
	}

	result, log, err := Reconcile(preEA, cssm, nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)

	// One outcome per input row, in input order.
	assert.Equal(t, []Outcome{OutcomeOK, OutcomeNotFound, OutcomeQuantityMismatch, OutcomeDateIssue},
		[]Outcome{result.Rows[0].Outcome, result.Rows[1].Outcome, result.Rows[2].Outcome, result.Rows[3].Outcome})

	assert.Equal(t, Summary{Total: 4, NotFound: 1, QuantityMismatch: 1, DateIssue: 1, OK: 1}, result.Summary)

	require.Len(t, log, 4)
	for i, entry := range log {
		assert.Equal(t, preEA[i].Row, entry.Row)
		assert.NotEmpty(t, entry.Detail)
		assert.NotEmpty(t, entry.Candidates)
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	preEA := []LineItem{
		{OrderNumber: "A1", SKU: "Y", Quantity: 5, ExpirationDate: date(t, "2024-01-01"), Row: 2},
		{OrderNumber: "B2", SKU: "X", Quantity: 3, Row: 3},
	}
	cssm := []LineItem{
		{OrderNumber: "A1", SKU: "Z", Quantity: 5, ExpirationDate: date(t, "2024-06-01")},
	}
	exceptions := skumap.Map{"Y": "Z"}

	first, firstLog, err := Reconcile(preEA, cssm, exceptions)
	require.NoError(t, err)
	second, secondLog, err := Reconcile(preEA, cssm, exceptions)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstLog, secondLog)
}

func TestReconcile_ContractViolations(t *testing.T) {
	_, _, err := Reconcile(nil, []LineItem{}, nil)
	assert.Error(t, err)

	_, _, err = Reconcile([]LineItem{}, nil, nil)
	assert.Error(t, err)

	// Empty (but non-nil) tables honor the contract.
	result, log, err := Reconcile([]LineItem{}, []LineItem{}, nil)
	assert.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, log)
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	preEA := []LineItem{{OrderNumber: "A1", SKU: "Y", Quantity: 5, ExpirationDate: date(t, "2024-01-01")}}
	cssm := []LineItem{{OrderNumber: "A1", SKU: "Z", Quantity: 5, ExpirationDate: date(t, "2024-06-01")}}
	exceptions := skumap.Map{"Y": "Z"}

	preEACopy := append([]LineItem(nil), preEA...)
	cssmCopy := append([]LineItem(nil), cssm...)
	exceptionsCopy := exceptions.Clone()

	_, _, err := Reconcile(preEA, cssm, exceptions)
	require.NoError(t, err)

	assert.Equal(t, preEACopy, preEA)
	assert.Equal(t, cssmCopy, cssm)
	assert.Equal(t, exceptionsCopy, exceptions)
}
