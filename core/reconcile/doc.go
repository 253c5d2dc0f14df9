// Package reconcile implements the comparison engine for PRE-EA and CSSM
// inventory exports.
//
// The engine walks every PRE-EA line item, locates the CSSM rows that share
// its order number and SKU (directly or through the SKU exception map), and
// classifies the pair into one of four outcomes:
//
//   - NOT_FOUND: no CSSM row matches the order number / SKU pair.
//   - QUANTITY_MISMATCH: the summed CSSM quantity differs from PRE-EA.
//   - DATE_ISSUE: a CSSM expiration date is missing or unparseable, or the
//     PRE-EA item expires after the earliest matched CSSM date.
//   - OK: quantities and dates agree.
//
// # Architecture
//
// The package is split along the stages of a run:
//
//  1. Resolver: expands a PRE-EA SKU into its ordered candidate CSSM SKUs
//     (direct SKU first, exception-mapped SKU second).
//  2. Matcher: indexes the CSSM table by order number + SKU and returns the
//     full matching row set for a PRE-EA row.
//  3. Comparator: applies the four classification rules in order, first
//     applicable rule wins.
//  4. Engine: orchestrates the stages over the whole table and emits one
//     outcome and one decision log entry per PRE-EA row, in input order.
//
// # Determinism
//
// A run never mutates its inputs, never consults the clock, and produces
// identical output for identical input. Row-level problems (bad dates,
// missing matches) degrade to per-row outcomes; only a violated input
// contract (nil tables) aborts a run.
//
// Presentation concerns such as the RED/BLUE/YELLOW/GREEN workbook coloring
// live in core/xlsx, not here.
package reconcile
