// Package skumap implements the SKU exception table maintenance feature.
//
// The exception table redirects a PRE-EA SKU to the CSSM SKU it should be
// compared against when the two systems name the same item differently. This
// feature exposes add, remove, and list operations over the table,
// persisting every mutation back to the configured sku_map.json.
//
// # Components
//
//   - Service: loads, mutates, and persists the table via core/skumap.
//   - Handler: exposes the HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET    /skumap       : the full exception table
//   - PUT    /skumap/:pid  : upsert one mapping (last write wins)
//   - DELETE /skumap/:pid  : remove one mapping
package skumap
