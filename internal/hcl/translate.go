package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/ctxlog"
	"github.com/vk/bindery/internal/schema"
)

// translateBundle converts the HCL-specific bundle schema into the agnostic
// model.
func (l *Loader) translateBundle(ctx context.Context, s *schema.Bundle) (*bundle.Definition, error) {
	facets := bundle.Facets{
		StackItems: make(map[string]any),
		Tags:       make(map[string]any),
	}

	if s.Handlers != nil {
		chains, err := translateHandlers(ctx, s.Handlers)
		if err != nil {
			return nil, err
		}
		facets.HandlerChains = chains
	}

	if s.Fallbacks != nil {
		fallbacks, err := translateFallbacks(s.Fallbacks)
		if err != nil {
			return nil, err
		}
		facets.Fallbacks = fallbacks
	}

	for _, item := range s.StackItems {
		facets.StackItems[item.Kind] = item.Constructor
	}
	for _, tag := range s.Tags {
		facets.Tags[tag.Kind] = tag.Strategy
	}

	options, err := translateOptions(s.Options)
	if err != nil {
		return nil, err
	}
	facets.Options = options

	return &bundle.Definition{
		Bundle:  bundle.New(s.Name, facets),
		Extends: s.Extends,
	}, nil
}

// translateHandlers maps the handlers block onto per-category chains. The
// four known categories come from the decoded fields; any remaining
// attribute is treated as a chain for an unknown category and kept.
func translateHandlers(ctx context.Context, h *schema.Handlers) (map[bundle.Category][]string, error) {
	logger := ctxlog.FromContext(ctx)

	chains := make(map[bundle.Category][]string)
	if len(h.Character) > 0 {
		chains[bundle.Character] = h.Character
	}
	if len(h.Delimiter) > 0 {
		chains[bundle.Delimiter] = h.Delimiter
	}
	if len(h.Macro) > 0 {
		chains[bundle.Macro] = h.Macro
	}
	if len(h.Environment) > 0 {
		chains[bundle.Environment] = h.Environment
	}

	if h.Remain == nil {
		return chains, nil
	}
	attrs, diags := h.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read handlers block: %w", diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate handler chain %q: %w", name, diags)
		}
		ids, err := stringList(val)
		if err != nil {
			return nil, fmt.Errorf("handler chain %q: %w", name, err)
		}
		logger.Debug("Keeping handler chain for unknown category.", "category", name)
		chains[bundle.Category(name)] = ids
	}
	return chains, nil
}

// translateFallbacks maps the fallbacks block onto per-category method
// identifiers, keeping unknown categories like translateHandlers does.
func translateFallbacks(f *schema.Fallbacks) (map[bundle.Category]string, error) {
	fallbacks := make(map[bundle.Category]string)
	if f.Character != "" {
		fallbacks[bundle.Character] = f.Character
	}
	if f.Delimiter != "" {
		fallbacks[bundle.Delimiter] = f.Delimiter
	}
	if f.Macro != "" {
		fallbacks[bundle.Macro] = f.Macro
	}
	if f.Environment != "" {
		fallbacks[bundle.Environment] = f.Environment
	}

	if f.Remain == nil {
		return fallbacks, nil
	}
	attrs, diags := f.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read fallbacks block: %w", diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate fallback %q: %w", name, diags)
		}
		if val.Type() != cty.String {
			return nil, fmt.Errorf("fallback %q must be a string, got %s", name, val.Type().FriendlyName())
		}
		fallbacks[bundle.Category(name)] = val.AsString()
	}
	return fallbacks, nil
}

// translateOptions evaluates the options attribute into a flat map of cty
// values. Absent options yield an empty map.
func translateOptions(expr hcl.Expression) (map[string]cty.Value, error) {
	options := make(map[string]cty.Value)
	if expr == nil {
		return options, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate options: %w", diags)
	}
	if val.IsNull() {
		return options, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("options must be an object, got %s", val.Type().FriendlyName())
	}
	for it := val.ElementIterator(); it.Next(); {
		key, value := it.Element()
		options[key.AsString()] = value
	}
	return options, nil
}

// stringList converts a cty list or tuple of strings into a Go slice.
func stringList(val cty.Value) ([]string, error) {
	if val.IsNull() || !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of strings, got %s", val.Type().FriendlyName())
	}
	var ids []string
	for it := val.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.Type() != cty.String {
			return nil, fmt.Errorf("expected a list of strings, got element of type %s", el.Type().FriendlyName())
		}
		ids = append(ids, el.AsString())
	}
	return ids, nil
}
