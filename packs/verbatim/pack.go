// Package verbatim provides a bundle that switches character handling into
// raw pass-through mode. Layered on top of core it demonstrates chain
// prepending: its character maps are consulted before core's.
package verbatim

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/registry"
)

// Pack implements the registry.Pack interface for this package.
type Pack struct{}

// VerbatimItem is the stack item holding an unprocessed text run.
type VerbatimItem struct {
	Text string
}

// NewVerbatimItem constructs the stack item for the "verbatim" kind.
func NewVerbatimItem() any { return &VerbatimItem{} }

// RawTagger tags completed verbatim items without any interpretation.
type RawTagger struct{}

// Register registers the verbatim bundle.
func (p *Pack) Register(r *registry.Registry) {
	r.Register(bundle.New("verbatim", bundle.Facets{
		HandlerChains: map[bundle.Category][]string{
			bundle.Character: {"verbatim.characters"},
		},
		Fallbacks: map[bundle.Category]string{
			bundle.Character: "verbatim.EmitRaw",
		},
		StackItems: map[string]any{
			"verbatim": NewVerbatimItem,
		},
		Tags: map[string]any{
			"verbatim": &RawTagger{},
		},
		Options: map[string]cty.Value{
			"verbatim": cty.True,
		},
	}))
}
