// Package notion publishes vision records as pages in a Notion workspace.
// Exports are strictly optional: without a configured token the service
// degrades to a noop so the rest of the application never branches on export
// availability.
package notion
