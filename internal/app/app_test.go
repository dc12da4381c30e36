package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/hcl"
	"github.com/vk/bindery/internal/registry"
	"github.com/vk/bindery/internal/testutil"
)

// quietConfig keeps log output away from the assertions on user output.
func quietConfig(cfg Config) *Config {
	cfg.LogLevel = "error"
	cfg.LogFormat = "text"
	out, err := NewConfig(cfg)
	if err != nil {
		panic(err)
	}
	return out
}

func TestNewApp_BuiltinPacksOnly(t *testing.T) {
	out := &bytes.Buffer{}
	a := NewApp(out, quietConfig(Config{}), hcl.NewLoader())

	assert.Equal(t, []string{"core", "verbatim"}, a.Registry().Names())

	b, ok := a.Registry().Lookup("core")
	require.True(t, ok)
	assert.Equal(t, []string{"core.macros"}, b.HandlerChains[bundle.Macro])
}

func TestNewApp_LoadsDeclaredBundles(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"amsmath.hcl": `
bundle "amsmath" {
  handlers {
    macro = ["amsmath.macros"]
  }
}
`,
	})

	out := &bytes.Buffer{}
	a := NewApp(out, quietConfig(Config{BundlesPath: dir}), hcl.NewLoader())

	assert.Equal(t, []string{"core", "verbatim", "amsmath"}, a.Registry().Names())
}

func TestNewApp_ExtendsLayering(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"bundles.hcl": `
bundle "amsmath" {
  extends = ["core"]

  handlers {
    macro = ["amsmath.macros"]
  }

  options = {
    strict = true
  }
}
`,
	})

	out := &bytes.Buffer{}
	a := NewApp(out, quietConfig(Config{BundlesPath: dir}), hcl.NewLoader())

	b, ok := a.Registry().Lookup("amsmath")
	require.True(t, ok)

	// The bundle's own chain entries sit in front of the inherited ones.
	assert.Equal(t, []string{"amsmath.macros", "core.macros"}, b.HandlerChains[bundle.Macro])
	// Inherited facets survive; the bundle's own options win.
	assert.Equal(t, "core.UndefinedMacro", b.Fallbacks[bundle.Macro])
	assert.Equal(t, cty.True, b.Options["strict"])
	assert.Equal(t, cty.StringVal("en"), b.Options["locale"])
}

func TestNewApp_ExtendsChainAcrossFiles(t *testing.T) {
	// Declaration order is independent of extension order.
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": `
bundle "leaf" {
  extends = ["middle"]
  options = { level = "leaf" }
}
`,
		"b.hcl": `
bundle "middle" {
  extends = ["core"]
  options = { level = "middle", base = "middle" }
}
`,
	})

	out := &bytes.Buffer{}
	a := NewApp(out, quietConfig(Config{BundlesPath: dir}), hcl.NewLoader())

	leaf, ok := a.Registry().Lookup("leaf")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("leaf"), leaf.Options["level"])
	assert.Equal(t, cty.StringVal("middle"), leaf.Options["base"])
	assert.Equal(t, cty.StringVal("en"), leaf.Options["locale"])
}

func TestNewApp_UnknownParentPanics(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"bad.hcl": `
bundle "broken" {
  extends = ["coer"]
}
`,
	})

	out := &bytes.Buffer{}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorContains(t, err, `extends unknown bundle "coer"`)
		assert.ErrorContains(t, err, `did you mean "core"`)
	}()
	NewApp(out, quietConfig(Config{BundlesPath: dir}), hcl.NewLoader())
}

func TestNewApp_ExtendsCyclePanics(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"cycle.hcl": `
bundle "a" {
  extends = ["b"]
}

bundle "b" {
  extends = ["a"]
}
`,
	})

	out := &bytes.Buffer{}
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorContains(t, err, "cycle detected")
	}()
	NewApp(out, quietConfig(Config{BundlesPath: dir}), hcl.NewLoader())
}

func TestRun_List(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := quietConfig(Config{List: true})
	a := NewApp(out, cfg, hcl.NewLoader())

	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Equal(t, "core\nverbatim\n", out.String())
}

func TestRun_Show(t *testing.T) {
	t.Run("renders a registered bundle as yaml", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg := quietConfig(Config{Show: "verbatim"})
		a := NewApp(out, cfg, hcl.NewLoader())

		require.NoError(t, a.Run(context.Background(), cfg))

		rendered := out.String()
		assert.Contains(t, rendered, "name: verbatim")
		assert.Contains(t, rendered, "- verbatim.characters")
		assert.Contains(t, rendered, "verbatim: true")
	})

	t.Run("unknown bundle with suggestion", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg := quietConfig(Config{Show: "verbatum"})
		a := NewApp(out, cfg, hcl.NewLoader())

		err := a.Run(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorContains(t, err, `bundle "verbatum" is not registered`)
		assert.ErrorContains(t, err, `did you mean "verbatim"`)
	})

	t.Run("unknown bundle without suggestion", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg := quietConfig(Config{Show: "zzzzzzzzzzzzzzzz"})
		a := NewApp(out, cfg, hcl.NewLoader())

		err := a.Run(context.Background(), cfg)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "did you mean")
	})
}

func TestRun_Compose(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := quietConfig(Config{Use: []string{"core", "verbatim"}})
	a := NewApp(out, cfg, hcl.NewLoader())

	require.NoError(t, a.Run(context.Background(), cfg))

	rendered := out.String()
	assert.Contains(t, rendered, "name: session")
	// verbatim is appended last, so its character maps are consulted first
	// and its fallback wins.
	verbatimAt := strings.Index(rendered, "- verbatim.characters")
	coreAt := strings.Index(rendered, "- core.characters")
	require.NotEqual(t, -1, verbatimAt)
	require.NotEqual(t, -1, coreAt)
	assert.Less(t, verbatimAt, coreAt)
	assert.Contains(t, rendered, "character: verbatim.EmitRaw")
	assert.Contains(t, rendered, "verbatim: true")
	assert.Contains(t, rendered, "locale: en")
}

func TestRun_ComposeUnknownBundle(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := quietConfig(Config{Use: []string{"core", "missing"}})
	a := NewApp(out, cfg, hcl.NewLoader())

	err := a.Run(context.Background(), cfg)
	assert.ErrorContains(t, err, `bundle "missing" is not registered`)
}

func TestRegisterDefinitions_LastDeclarationWins(t *testing.T) {
	reg := registry.New()
	defs := []*bundle.Definition{
		{Bundle: bundle.New("dup", bundle.Facets{
			Options: map[string]cty.Value{"v": cty.StringVal("first")},
		})},
		{Bundle: bundle.New("dup", bundle.Facets{
			Options: map[string]cty.Value{"v": cty.StringVal("second")},
		})},
	}

	require.NoError(t, registerDefinitions(context.Background(), reg, defs))

	b, ok := reg.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("second"), b.Options["v"])
}

func TestRegisterDefinitions_ShadowedExtendsIsDiscarded(t *testing.T) {
	t.Run("shadowed unknown parent is not an error", func(t *testing.T) {
		reg := registry.New()
		defs := []*bundle.Definition{
			{Bundle: bundle.New("dup", bundle.Facets{}), Extends: []string{"ghost"}},
			{Bundle: bundle.New("dup", bundle.Facets{})},
		}

		require.NoError(t, registerDefinitions(context.Background(), reg, defs))

		_, ok := reg.Lookup("dup")
		assert.True(t, ok)
	})

	t.Run("shadowed extends cannot force a cycle", func(t *testing.T) {
		reg := registry.New()
		defs := []*bundle.Definition{
			{Bundle: bundle.New("a", bundle.Facets{}), Extends: []string{"b"}},
			{Bundle: bundle.New("b", bundle.Facets{}), Extends: []string{"a"}},
			{Bundle: bundle.New("a", bundle.Facets{})},
		}

		require.NoError(t, registerDefinitions(context.Background(), reg, defs))
		assert.Equal(t, 2, reg.Len())
	})
}
