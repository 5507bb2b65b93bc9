// Package gemini adapts the Gemini generateContent API to the canonical
// vision result. Unlike the Anthropic adapter, the credential travels in the
// request URL and the image rides in an inline_data part; the reply text is
// pulled from the first non-empty candidate part. API failures map into the
// shared taxonomy defined in the vision package.
package gemini
