// Package store persists vision records in a SQLite database under the data
// directory. Records are stored as JSON documents keyed by record ID; the
// related-record lists are derived state and recomputed across the whole
// collection on every save and remove. Completion flags for manifestation-path
// actions live in a side table so re-analyzing an image never loses progress.
package store
