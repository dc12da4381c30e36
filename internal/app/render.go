package app

import (
	"fmt"
	"io"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vk/bindery/internal/bundle"
)

// bundleView is the YAML shape a bundle is rendered as. Map keys come out
// sorted, so the rendering is deterministic.
type bundleView struct {
	Name       string              `yaml:"name"`
	Handlers   map[string][]string `yaml:"handlers"`
	Fallbacks  map[string]string   `yaml:"fallbacks,omitempty"`
	StackItems map[string]string   `yaml:"stack_items,omitempty"`
	Tags       map[string]string   `yaml:"tags,omitempty"`
	Options    map[string]any      `yaml:"options,omitempty"`
}

// renderBundle writes b to w as YAML.
func renderBundle(w io.Writer, b *bundle.Bundle) error {
	view := bundleView{
		Name:       b.Name,
		Handlers:   make(map[string][]string, len(b.HandlerChains)),
		Fallbacks:  make(map[string]string, len(b.Fallbacks)),
		StackItems: make(map[string]string, len(b.StackItems)),
		Tags:       make(map[string]string, len(b.Tags)),
		Options:    make(map[string]any, len(b.Options)),
	}
	for cat, chain := range b.HandlerChains {
		view.Handlers[string(cat)] = chain
	}
	for cat, fallback := range b.Fallbacks {
		view.Fallbacks[string(cat)] = fallback
	}
	for kind, ctor := range b.StackItems {
		view.StackItems[kind] = describeRef(ctor)
	}
	for kind, strategy := range b.Tags {
		view.Tags[kind] = describeRef(strategy)
	}
	for key, val := range b.Options {
		view.Options[key] = goValue(val)
	}

	out, err := yaml.Marshal(&view)
	if err != nil {
		return fmt.Errorf("failed to render bundle %q: %w", b.Name, err)
	}
	_, err = w.Write(out)
	return err
}

// describeRef renders an opaque constructor or strategy reference. String
// identifiers pass through; anything else shows its Go type.
func describeRef(ref any) string {
	if s, ok := ref.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", ref)
}

// goValue converts a primitive cty option value into a plain Go value for
// rendering.
func goValue(val cty.Value) any {
	switch {
	case val.IsNull():
		return nil
	case val.Type() == cty.String:
		return val.AsString()
	case val.Type() == cty.Bool:
		return val.True()
	case val.Type() == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	default:
		return val.GoString()
	}
}
