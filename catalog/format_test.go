package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promopro/chatmesh/core"
)

func TestFormatProducts(t *testing.T) {
	text := FormatProducts([]Product{
		{Name: "Classic Mug", Description: "Ceramic 11oz mug", Price: "85", ImageURL: "https://example.com/mug.jpg"},
		{Name: "Steel Bottle", Description: "Insulated 600ml bottle", Price: "210", ImageURL: "https://example.com/bottle.jpg"},
	})

	assert.True(t, strings.HasPrefix(text, core.SplitMarker))
	assert.Contains(t, text, "MESSAGE 1A: Classic Mug — Ceramic 11oz mug | $85 MXN")
	assert.Contains(t, text, "MESSAGE 1B: https://example.com/mug.jpg")
	assert.Contains(t, text, "MESSAGE 2A: Steel Bottle — Insulated 600ml bottle | $210 MXN")
	assert.Contains(t, text, "MESSAGE 2B: https://example.com/bottle.jpg")
}

func TestFormatProducts_Empty(t *testing.T) {
	text := FormatProducts(nil)
	assert.Equal(t, NoProductsMessage, text)
	assert.NotContains(t, text, core.SplitMarker)
}

func TestFormatKits_IncludesComponents(t *testing.T) {
	text := FormatKits([]Kit{
		{Name: "Welcome Kit", Description: "Onboarding gift set", Components: "mug, notebook, pen", Price: "450", ImageURL: "https://example.com/kit.jpg"},
	})

	assert.True(t, strings.HasPrefix(text, core.SplitMarker))
	assert.Contains(t, text, "MESSAGE 1A: Welcome Kit — Onboarding gift set — (mug, notebook, pen) | $450 MXN")
	assert.Contains(t, text, "MESSAGE 1B: https://example.com/kit.jpg")
}

func TestFormatKits_Empty(t *testing.T) {
	assert.Equal(t, NoKitsMessage, FormatKits(nil))
}

// The formatted block must round-trip through the classifier's labeled-line
// parsing: every detail and image line starts with the split label.
func TestFormatProducts_LinesCarrySplitLabel(t *testing.T) {
	text := FormatProducts([]Product{
		{Name: "Classic Mug", Description: "Ceramic 11oz mug", Price: "85", ImageURL: "https://example.com/mug.jpg"},
	})

	labeled := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), core.SplitLabel) {
			labeled++
		}
	}
	require.Equal(t, 2, labeled)
}
