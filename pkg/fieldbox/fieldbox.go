// Package fieldbox locates previously extracted field values on previously
// extracted word geometry and turns them into normalized highlight boxes.
//
// Field values usually come from an LLM or another extractor that returns
// strings, not positions. fieldbox finds the run of words on the page that
// carries the value, drops any label printed in front of it ("Invoice
// Number: INV-123" highlights only "INV-123"), and projects the remaining
// words into a padded box in a top-left-origin, 0-1 coordinate space.
//
// Key Types:
//
// - Resolver: Orchestrates box resolution over the field catalog
// - Options: Thresholds, catalog, label rules, concurrency and logger
// - Thresholds: The tunable constants used by matching and projection
// - Catalog: Internal field names, their output names and skip rules
// - LabelClassifier: Separates label words from value words
// - Box: A normalized highlight rectangle for one field
//
// Main Functions:
//
// - Resolver.Resolve: Resolves every catalog field against all pages
// - Resolver.Locate: Resolves a single field value
// - MatchValue: Sliding-window value matcher for one page
// - ClusterAddress: Geometric clustering for multi-line addresses
// - Project: Projects tokens to a normalized box
// - CoerceValue: Flattens arbitrary field values to a searchable string
//
// Everything in this package is a pure function of its inputs. Resolution
// never fails on bad data: fields that cannot be located are omitted.
package fieldbox
