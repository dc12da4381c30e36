// Package bundle defines the format-agnostic configuration bundle for the
// parsing pipeline, along with the Loader interface for reading bundle
// definitions from declarative sources.
//
// A Bundle is a named collection of five configuration facets: handler-lookup
// chains for the four token categories, per-category fallback methods,
// stack-item constructor references, tag-strategy references, and free-form
// options. Bundles compose via Append, which folds another bundle's facets
// into the receiver with per-facet override and insertion rules. Concrete
// loaders, such as for HCL, are provided in separate packages.
package bundle
