// Package imageenc converts uploaded mood-board images into the bounded
// inline representation the provider clients transport: JPEG re-encoded at
// quality 80, longest edge capped at 1024 pixels, base64 alongside the raw
// bytes. Smaller images pass through unresized.
package imageenc
