package bundle

import "context"

// Definition is a bundle as declared by a configuration source, before any
// extension layering has been applied.
type Definition struct {
	// Bundle holds the facets the source declared for this name.
	Bundle *Bundle

	// Extends lists the names of bundles this definition layers on top of,
	// in declaration order.
	Extends []string
}

// Loader is the interface for a format-specific bundle definition loader.
type Loader interface {
	// Load reads bundle definitions from the given paths and translates
	// them into the format-agnostic representation.
	Load(ctx context.Context, paths ...string) ([]*Definition, error)
}
