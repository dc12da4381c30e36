package hcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/testutil"
)

func TestLoad_FullBundle(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"amsmath.hcl": `
bundle "amsmath" {
  extends = ["core"]

  handlers {
    macro       = ["amsmath.macros", "amsmath.symbols"]
    environment = ["amsmath.environments"]
  }

  fallbacks {
    macro = "amsmath.UndefinedMacro"
  }

  stack_item "math" {
    constructor = "MathItem"
  }

  tag "equation" {
    strategy = "EquationTagger"
  }

  options = {
    strict  = true
    variant = "display"
  }
}
`,
	})

	defs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, []string{"core"}, def.Extends)

	b := def.Bundle
	assert.Equal(t, "amsmath", b.Name)
	assert.Equal(t, []string{"amsmath.macros", "amsmath.symbols"}, b.HandlerChains[bundle.Macro])
	assert.Equal(t, []string{"amsmath.environments"}, b.HandlerChains[bundle.Environment])
	assert.Empty(t, b.HandlerChains[bundle.Character])
	assert.Empty(t, b.HandlerChains[bundle.Delimiter])
	assert.Equal(t, map[bundle.Category]string{bundle.Macro: "amsmath.UndefinedMacro"}, b.Fallbacks)
	assert.Equal(t, map[string]any{"math": "MathItem"}, b.StackItems)
	assert.Equal(t, map[string]any{"equation": "EquationTagger"}, b.Tags)
	assert.Equal(t, map[string]cty.Value{
		"strict":  cty.True,
		"variant": cty.StringVal("display"),
	}, b.Options)
}

func TestLoad_MinimalBundle(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"empty.hcl": `bundle "empty" {}`,
	})

	defs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	b := defs[0].Bundle
	assert.Equal(t, "empty", b.Name)
	assert.Len(t, b.HandlerChains, 4)
	for _, cat := range bundle.Categories() {
		assert.Empty(t, b.HandlerChains[cat])
	}
	assert.Empty(t, b.Fallbacks)
	assert.Empty(t, b.Options)
	assert.Empty(t, defs[0].Extends)
}

func TestLoad_UnknownCategoryIsKept(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"odd.hcl": `
bundle "odd" {
  handlers {
    macro   = ["m1"]
    comment = ["cm1", "cm2"]
  }

  fallbacks {
    comment = "odd.DropComment"
  }
}
`,
	})

	defs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	b := defs[0].Bundle
	assert.Equal(t, []string{"m1"}, b.HandlerChains[bundle.Macro])
	assert.Equal(t, []string{"cm1", "cm2"}, b.HandlerChains[bundle.Category("comment")])
	assert.Equal(t, "odd.DropComment", b.Fallbacks[bundle.Category("comment")])
}

func TestLoad_MultipleFilesInSortedOrder(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"b_second.hcl": `bundle "second" {}`,
		"a_first.hcl":  `bundle "first" {}`,
	})

	defs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "first", defs[0].Bundle.Name)
	assert.Equal(t, "second", defs[1].Bundle.Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"broken.hcl": `bundle "broken" {`,
		})

		_, err := NewLoader().Load(context.Background(), dir)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("non-string handler chain entry", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"bad.hcl": `
bundle "bad" {
  handlers {
    comment = [1, 2]
  }
}
`,
		})

		_, err := NewLoader().Load(context.Background(), dir)
		assert.ErrorContains(t, err, "expected a list of strings")
	})

	t.Run("options must be an object", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"bad.hcl": `
bundle "bad" {
  options = "strict"
}
`,
		})

		_, err := NewLoader().Load(context.Background(), dir)
		assert.ErrorContains(t, err, "options must be an object")
	})

	t.Run("list-valued options is an error, not a panic", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"bad.hcl": `
bundle "bad" {
  options = ["strict"]
}
`,
		})

		var err error
		require.NotPanics(t, func() {
			_, err = NewLoader().Load(context.Background(), dir)
		})
		assert.ErrorContains(t, err, "options must be an object")
	})

	t.Run("empty directory is not an error", func(t *testing.T) {
		dir := t.TempDir()

		defs, err := NewLoader().Load(context.Background(), dir)
		require.NoError(t, err)
		assert.Empty(t, defs)
	})
}
