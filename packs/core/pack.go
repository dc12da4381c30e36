// Package core provides the baseline bundle every parsing session starts
// from: default handler chains, fallbacks, stack items, and tag strategies
// for all four token categories.
package core

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/registry"
)

// Pack implements the registry.Pack interface for this package.
type Pack struct{}

// GroupItem is the stack item opened by a grouping delimiter.
type GroupItem struct {
	Depth int
}

// NewGroupItem constructs the stack item for the "group" kind.
func NewGroupItem() any { return &GroupItem{} }

// EnvironmentItem is the stack item opened by a begin-environment token.
type EnvironmentItem struct {
	Name string
}

// NewEnvironmentItem constructs the stack item for the "environment" kind.
func NewEnvironmentItem() any { return &EnvironmentItem{} }

// ElementTagger tags completed stack items as structural elements.
type ElementTagger struct{}

// TextTagger tags completed stack items as plain text runs.
type TextTagger struct{}

// Register registers the core bundle.
func (p *Pack) Register(r *registry.Registry) {
	r.Register(bundle.New("core", bundle.Facets{
		HandlerChains: map[bundle.Category][]string{
			bundle.Character:   {"core.characters"},
			bundle.Delimiter:   {"core.delimiters"},
			bundle.Macro:       {"core.macros"},
			bundle.Environment: {"core.environments"},
		},
		Fallbacks: map[bundle.Category]string{
			bundle.Character:   "core.EmitChar",
			bundle.Delimiter:   "core.EmitChar",
			bundle.Macro:       "core.UndefinedMacro",
			bundle.Environment: "core.UndefinedEnvironment",
		},
		StackItems: map[string]any{
			"group":       NewGroupItem,
			"environment": NewEnvironmentItem,
		},
		Tags: map[string]any{
			"element": &ElementTagger{},
			"text":    &TextTagger{},
		},
		Options: map[string]cty.Value{
			"strict": cty.False,
			"locale": cty.StringVal("en"),
		},
	}))
}
