// Package utils provides common utility functions for the license-reconciler
// application. It includes helper functions for spreadsheet cell coercion and
// other shared logic that doesn't fit into domain-specific packages.
package utils
