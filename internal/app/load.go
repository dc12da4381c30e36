package app

import (
	"context"
	"fmt"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/ctxlog"
	"github.com/vk/bindery/internal/dag"
	"github.com/vk/bindery/internal/registry"
)

// registerDefinitions registers loaded bundle definitions in dependency
// order, so every parent named in an extends list is registered and folded
// in before its children. When a name is declared more than once the last
// declaration wins, matching the registry's overwrite contract.
func registerDefinitions(ctx context.Context, reg *registry.Registry, defs []*bundle.Definition) error {
	logger := ctxlog.FromContext(ctx)

	// Deduplicate first: a shadowed declaration must not contribute
	// extends edges, only the surviving definition's edges count.
	byName := make(map[string]*bundle.Definition, len(defs))
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		if _, seen := byName[def.Bundle.Name]; !seen {
			names = append(names, def.Bundle.Name)
		}
		byName[def.Bundle.Name] = def
	}

	graph := dag.New()
	for _, name := range names {
		graph.AddNode(name)
	}

	for _, name := range names {
		def := byName[name]
		for _, parent := range def.Extends {
			if graph.HasNode(parent) {
				if err := graph.AddEdge(parent, def.Bundle.Name); err != nil {
					return err
				}
				continue
			}
			// Not declared in this load; the parent must already be
			// registered, e.g. by a built-in pack.
			if _, ok := reg.Lookup(parent); !ok {
				if suggestion, ok := reg.Suggest(parent); ok {
					return fmt.Errorf("bundle %q extends unknown bundle %q (did you mean %q?)", def.Bundle.Name, parent, suggestion)
				}
				return fmt.Errorf("bundle %q extends unknown bundle %q", def.Bundle.Name, parent)
			}
		}
	}

	order, err := graph.Sort()
	if err != nil {
		return err
	}

	for _, name := range order {
		def := byName[name]
		reg.Register(effectiveBundle(reg, def))
		logger.Debug("Registered bundle.", "name", name, "extends", def.Extends)
	}
	return nil
}

// effectiveBundle applies extension layering: each parent folds in first and
// the definition's own facets fold in last, so a bundle's own declarations
// take priority over anything it inherits.
func effectiveBundle(reg *registry.Registry, def *bundle.Definition) *bundle.Bundle {
	if len(def.Extends) == 0 {
		return def.Bundle
	}
	effective := bundle.New(def.Bundle.Name, bundle.Facets{})
	for _, parent := range def.Extends {
		if p, ok := reg.Lookup(parent); ok {
			effective.Append(p)
		}
	}
	effective.Append(def.Bundle)
	return effective
}
