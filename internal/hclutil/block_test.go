package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUniqueBlock(t *testing.T) {
	model := &hcl.Block{Type: "model", Labels: []string{"A"}}
	other := &hcl.Block{Type: "other"}

	t.Run("single", func(t *testing.T) {
		found, diags := FindUniqueBlock(hcl.Blocks{other, model}, "model")
		require.False(t, diags.HasErrors())
		assert.Same(t, model, found)
	})

	t.Run("absent", func(t *testing.T) {
		found, diags := FindUniqueBlock(hcl.Blocks{other}, "model")
		assert.Nil(t, found)
		assert.Empty(t, diags)
	})

	t.Run("duplicate keeps the first", func(t *testing.T) {
		second := &hcl.Block{Type: "model", Labels: []string{"B"}}
		found, diags := FindUniqueBlock(hcl.Blocks{model, second, &hcl.Block{Type: "model"}}, "model")
		assert.Same(t, model, found)
		require.Len(t, diags, 2)
		assert.Equal(t, `Duplicate "model" block`, diags[0].Summary)
	})
}

func TestMissingBlock(t *testing.T) {
	d := MissingBlock("model", hcl.Range{Filename: "m.hcl"})
	assert.Equal(t, hcl.DiagError, d.Severity)
	assert.Equal(t, "m.hcl", d.Subject.Filename)
}
