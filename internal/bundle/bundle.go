package bundle

import (
	"github.com/zclconf/go-cty/cty"
)

// Category identifies one of the parser's token categories. Each category
// has its own handler-lookup chain and fallback method.
type Category string

const (
	Character   Category = "character"
	Delimiter   Category = "delimiter"
	Macro       Category = "macro"
	Environment Category = "environment"
)

// Categories returns the known categories in canonical order. Every bundle
// carries a handler chain for each of them, even when empty.
func Categories() []Category {
	return []Category{Character, Delimiter, Macro, Environment}
}

// Facets carries the optional initial contents for a new Bundle. Any nil
// facet defaults to empty.
type Facets struct {
	HandlerChains map[Category][]string
	Fallbacks     map[Category]string
	StackItems    map[string]any
	Tags          map[string]any
	Options       map[string]cty.Value
}

// Bundle is a named set of parser configuration facets.
//
// HandlerChains maps each category to an ordered list of lookup-map
// identifiers, consulted front to back. Fallbacks names the method used when
// no map in a chain resolves a token. StackItems and Tags map kind names to
// opaque constructor and strategy references the bundle core never inspects.
// Options holds free-form settings as cty values.
//
// Facet maps are stored as given, without defensive copies. A caller that
// keeps a reference to a map it passed in can still mutate the bundle's
// state through it.
type Bundle struct {
	Name          string
	HandlerChains map[Category][]string
	Fallbacks     map[Category]string
	StackItems    map[string]any
	Tags          map[string]any
	Options       map[string]cty.Value
}

// New builds a Bundle named name from the given facets. The handler-chain
// map is canonicalized so all four known categories are present; a
// caller-supplied chain replaces the empty default wholesale. New never
// fails and does not check name for uniqueness.
func New(name string, f Facets) *Bundle {
	chains := make(map[Category][]string, len(Categories()))
	for _, cat := range Categories() {
		chains[cat] = nil
	}
	for cat, chain := range f.HandlerChains {
		chains[cat] = chain
	}

	b := &Bundle{
		Name:          name,
		HandlerChains: chains,
		Fallbacks:     f.Fallbacks,
		StackItems:    f.StackItems,
		Tags:          f.Tags,
		Options:       f.Options,
	}
	if b.Fallbacks == nil {
		b.Fallbacks = make(map[Category]string)
	}
	if b.StackItems == nil {
		b.StackItems = make(map[string]any)
	}
	if b.Tags == nil {
		b.Tags = make(map[string]any)
	}
	if b.Options == nil {
		b.Options = make(map[string]cty.Value)
	}
	return b
}

// Append folds other's facets into b, in place.
//
// Handler-chain identifiers from other are inserted one at a time at the
// front of b's chain for the same category, so other=[a,b] folded into
// this=[x,y] yields [b,a,x,y]. Fallbacks, stack items, tags, and options are
// merged key-wise with other's entries overwriting b's. Categories and keys
// absent from b are added; nothing is ever removed. Append is total and
// never fails.
func (b *Bundle) Append(other *Bundle) {
	if other == nil {
		return
	}
	if b.HandlerChains == nil {
		b.HandlerChains = make(map[Category][]string)
	}
	if b.Fallbacks == nil {
		b.Fallbacks = make(map[Category]string)
	}
	if b.StackItems == nil {
		b.StackItems = make(map[string]any)
	}
	if b.Tags == nil {
		b.Tags = make(map[string]any)
	}
	if b.Options == nil {
		b.Options = make(map[string]cty.Value)
	}

	for cat, chain := range other.HandlerChains {
		for _, id := range chain {
			b.HandlerChains[cat] = append([]string{id}, b.HandlerChains[cat]...)
		}
	}
	for cat, fallback := range other.Fallbacks {
		b.Fallbacks[cat] = fallback
	}
	for kind, ctor := range other.StackItems {
		b.StackItems[kind] = ctor
	}
	for kind, strategy := range other.Tags {
		b.Tags[kind] = strategy
	}
	for key, val := range other.Options {
		b.Options[key] = val
	}
}
