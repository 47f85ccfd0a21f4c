package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/logging"
	"github.com/promopro/chatmesh/tool"
)

func newToolContext() *tool.ToolContext {
	return tool.NewToolContext(context.Background(), core.NewConversationContext(), logging.NoOpLogger{})
}

func TestProductSearchTool(t *testing.T) {
	pt := NewProductSearchTool(testCatalog())

	assert.Equal(t, "search_products", pt.Name())

	out, err := pt.Call(newToolContext(), map[string]any{"keyword": "mug"})
	require.NoError(t, err)

	text, ok := out.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text, core.SplitMarker))
	assert.Contains(t, text, "Classic Mug")
}

func TestProductSearchTool_NoMatches(t *testing.T) {
	pt := NewProductSearchTool(testCatalog())

	out, err := pt.Call(newToolContext(), map[string]any{"keyword": "zzz"})
	require.NoError(t, err)
	assert.Equal(t, NoProductsMessage, out)
}

func TestKitSearchTool_PriceArgs(t *testing.T) {
	kt := NewKitSearchTool(testCatalog())

	// JSON-decoded arguments arrive as float64.
	out, err := kt.Call(newToolContext(), map[string]any{"max_price": 500.0})
	require.NoError(t, err)

	text, ok := out.(string)
	require.True(t, ok)
	assert.Contains(t, text, "Welcome Kit")
	assert.NotContains(t, text, "Executive Kit")
}

func TestQueryFromArgs_IgnoresMistypedFields(t *testing.T) {
	q := queryFromArgs(map[string]any{
		"keyword":   42,
		"max_price": "high",
		"limit":     float64(2),
	})

	assert.Empty(t, q.Keyword)
	assert.Nil(t, q.MaxPrice)
	assert.Equal(t, 2, q.Limit)
}
