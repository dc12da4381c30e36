// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: it wires the logger, the bundle registry, the built-in
// packs, and the definition loader together, and executes the user-facing
// list, show, and compose operations.
package app
