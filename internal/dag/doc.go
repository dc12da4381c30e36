// Package dag models the extension relationships between bundle
// definitions as a directed acyclic graph.
//
// A bundle that extends another depends on it: the parent must be
// registered and folded in first. The graph provides cycle detection and a
// deterministic topological order for the loader to apply.
package dag
