// Package vision defines the canonical data model shared by the provider
// clients, the fallback analyzer, and the SOP aggregation engine.
//
// A Result is the structured payload a multimodal model produces for one
// mood-board image: visual DNA (palette, materials, emotional core,
// archetype), a lifestyle inference, sensory triggers, and the SOP mapping
// that assigns imperative actions to WRITE_PLAN/PLAN/DO/CHECK buckets. Both
// provider adapters translate their wire shapes into this one type so that
// parsing and validation happen exactly once.
//
// A Record wraps a Result with its identity, image reference, upload
// timestamp, derived 4-week manifestation path, and the related-record list
// recomputed whenever the stored collection changes.
//
// ParseResult extracts a Result from free-form model text, tolerating fenced
// code blocks and surrounding prose; any payload that fails all extraction
// stages yields a terminal error wrapping ErrResponseParse.
package vision
