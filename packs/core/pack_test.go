package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/registry"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Pack{}).Register(r)

	b, ok := r.Lookup("core")
	require.True(t, ok)

	for _, cat := range bundle.Categories() {
		assert.NotEmpty(t, b.HandlerChains[cat], "category %q should have a default chain", cat)
		assert.NotEmpty(t, b.Fallbacks[cat], "category %q should have a fallback", cat)
	}
	assert.Contains(t, b.StackItems, "group")
	assert.Contains(t, b.StackItems, "environment")
	assert.Contains(t, b.Tags, "element")
}
