package xlsx

import (
	"fmt"
	"strings"

	"license-reconciler/core/reconcile"
	"license-reconciler/core/utils"

	"github.com/xuri/excelize/v2"
)

// TableSpec names the sheet and headers that carry the logical fields of one
// export. Header matching is case-insensitive and whitespace-tolerant.
type TableSpec struct {
	// Name identifies the export in error messages ("PRE-EA", "CSSM").
	Name string
	// Sheet is the sheet to read; empty means the first sheet.
	Sheet string
	// HeaderRow is the 1-based row holding the column headers.
	HeaderRow int

	// Header names for the logical fields.
	OrderNumber    string
	SKU            string
	Quantity       string
	ExpirationDate string
}

// PreEASpec describes the PRE-EA source-of-record workbook: first sheet,
// headers on row 1.
func PreEASpec() TableSpec {
	return TableSpec{
		Name:           "PRE-EA",
		HeaderRow:      1,
		OrderNumber:    "ALC Order Number",
		SKU:            "Pre EA Migrated Pid",
		Quantity:       "Quantity",
		ExpirationDate: "Expiration Date",
	}
}

// CSSMSpec describes the CSSM export: "License Detail" sheet, headers on
// row 6 below the report banner.
func CSSMSpec() TableSpec {
	return TableSpec{
		Name:           "CSSM",
		Sheet:          "License Detail",
		HeaderRow:      6,
		OrderNumber:    "Source Identifier",
		SKU:            "SKU",
		Quantity:       "Available To Use",
		ExpirationDate: "Subscription End Date",
	}
}

// columns holds the resolved 0-based column index per logical field.
type columns struct {
	orderNumber    int
	sku            int
	quantity       int
	expirationDate int
}

// ReadTable reads one export sheet into logical line items.
//
// A sheet or header that cannot be resolved violates the input contract and
// returns an error; everything below the header degrades per row (blank rows
// are dropped, bad quantities read as zero, bad dates as no date).
func ReadTable(f *excelize.File, spec TableSpec) ([]reconcile.LineItem, error) {
	sheet := spec.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s workbook has no sheets", spec.Name)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet %q: %w", spec.Name, sheet, err)
	}
	if len(rows) < spec.HeaderRow {
		return nil, fmt.Errorf("%s sheet %q has no header row %d", spec.Name, sheet, spec.HeaderRow)
	}

	cols, err := mapColumns(rows[spec.HeaderRow-1], spec)
	if err != nil {
		return nil, err
	}

	items := make([]reconcile.LineItem, 0, len(rows)-spec.HeaderRow)
	for i := spec.HeaderRow; i < len(rows); i++ {
		orderNumber := utils.NormalizeCell(cell(rows[i], cols.orderNumber))
		sku := utils.NormalizeCell(cell(rows[i], cols.sku))
		qtyText := cell(rows[i], cols.quantity)
		dateText := cell(rows[i], cols.expirationDate)

		// Trailing filler rows carry no data at all.
		if orderNumber == "" && sku == "" && strings.TrimSpace(qtyText) == "" && strings.TrimSpace(dateText) == "" {
			continue
		}

		item := reconcile.LineItem{
			OrderNumber: orderNumber,
			SKU:         sku,
			Row:         i + 1,
		}
		if qty, ok := utils.ToInt(qtyText); ok && qty >= 0 {
			item.Quantity = qty
		}
		if d, ok := ParseDate(dateText); ok {
			item.ExpirationDate = &d
		}
		items = append(items, item)
	}

	return items, nil
}

// mapColumns resolves header names to column indices. Every logical field
// must be present; a missing header means the caller handed over the wrong
// kind of workbook.
func mapColumns(headers []string, spec TableSpec) (columns, error) {
	lookup := make(map[string]int, len(headers))
	for idx, h := range headers {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		// First occurrence wins on duplicate headers.
		if _, seen := lookup[key]; !seen {
			lookup[key] = idx
		}
	}

	cols := columns{}
	for _, field := range []struct {
		header string
		dst    *int
	}{
		{spec.OrderNumber, &cols.orderNumber},
		{spec.SKU, &cols.sku},
		{spec.Quantity, &cols.quantity},
		{spec.ExpirationDate, &cols.expirationDate},
	} {
		idx, ok := lookup[normalizeHeader(field.header)]
		if !ok {
			return columns{}, fmt.Errorf("%s sheet is missing required column %q", spec.Name, field.header)
		}
		*field.dst = idx
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
