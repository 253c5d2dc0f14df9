// Package skumap manages the SKU exception table: a flat mapping from a
// PRE-EA SKU to the CSSM SKU it should be compared against when the two
// systems name the same item differently.
//
// The table lives in a JSON object of string keys to string values
// (sku_map.json). Loading a missing or empty file yields an empty map;
// loading a corrupt file yields an empty map plus an error the caller is
// expected to surface as a warning, never as a fatal condition.
//
// Mutations are last-write-wins and happen only between reconciliation runs,
// so the map needs no locking inside the engine.
package skumap
