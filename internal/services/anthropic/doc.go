// Package anthropic adapts the Anthropic messages API to the canonical vision
// result. The client inlines the base64 image alongside the fixed instruction
// template, walks an ordered list of model variants, and classifies API
// failures into the shared taxonomy so the analyzer can decide whether to
// substitute a fallback. Credential-class errors stop the variant cascade
// immediately; model-availability errors hand over to the next variant.
package anthropic
