// Package analysis orders the provider candidates for each image and owns the
// silent-degradation policy: a valid Anthropic key wins, a failed Anthropic
// call never cascades to Gemini, Gemini serves only when no Anthropic key
// exists, and anything else substitutes a pre-authored result from the
// fallback library (cycled by batch index). Substituted results satisfy every
// invariant a live result does, so downstream code cannot tell them apart.
//
// The analyzer never fails outwardly for provider-class errors. The one fatal
// per-image path is unreadable input; batches report it, skip the image, and
// continue.
package analysis
