// Package registry provides the keyed store that makes configuration
// bundles discoverable by name.
//
// A Registry instance is constructed explicitly by the bootstrap and passed
// down to whatever needs it; there is no package-level singleton. Bundles
// contributed by independently authored packs register themselves through
// the Pack interface during startup, and later registrations under the same
// name silently replace earlier ones. Lookup misses are a normal outcome
// reported through a comma-ok return, never a failure.
package registry
