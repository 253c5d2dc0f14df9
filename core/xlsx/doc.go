// Package xlsx handles workbook ingestion and result rendering for the
// reconciler.
//
// # Ingestion
//
// Each export is read from one designated sheet into logical line items
// ({order number, SKU, quantity, expiration date}); mapping physical headers
// to logical fields happens here, by normalized header name, so the engine
// in core/reconcile never sees source column naming. PRE-EA reads the first
// sheet with headers on row 1; CSSM reads the "License Detail" sheet with
// headers on row 6.
//
// Dates are parsed against a list of candidate layouts (ISO, slashed US/EU,
// month-name variants, trailing timestamps) plus Excel serial numbers. A
// value that parses as none of them yields a line item without a date, which
// the comparator classifies as a DATE_ISSUE; parsing never errors a run.
//
// # Rendering
//
// Annotate writes the outcome color coding onto a copy of the PRE-EA sheet:
// RED for NOT_FOUND, BLUE for QUANTITY_MISMATCH, YELLOW for DATE_ISSUE and
// GREEN for OK. The outcome-to-color mapping lives only here; core/reconcile
// emits categories, not colors.
package xlsx
