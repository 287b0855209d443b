// Package source turns JSON, NDJSON and YAML input into the plain Go values
// records are constructed from, and builds nested records in place with
// Hydrate. Values are decoded, never coerced to a declared type.
package source
