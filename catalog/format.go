package catalog

import (
	"fmt"
	"strings"

	"github.com/promopro/chatmesh/core"
)

// NoProductsMessage is returned when every search stage comes up empty.
const NoProductsMessage = "No products matched the search criteria."

// NoKitsMessage is the kit-table counterpart of NoProductsMessage.
const NoKitsMessage = "No kits matched the search criteria."

// FormatProducts renders search results as a split-marker instruction block:
// two labeled messages per product, a details line and an image line, so the
// client shows each as its own chat bubble.
func FormatProducts(products []Product) string {
	if len(products) == 0 {
		return NoProductsMessage
	}

	var b strings.Builder
	b.WriteString(core.SplitMarker + ". Do NOT send everything as a single message.")
	for i, p := range products {
		n := i + 1
		fmt.Fprintf(&b, "\n\nPRODUCT %d - Send 2 separate messages:\n", n)
		fmt.Fprintf(&b, "%s%d%s: %s — %s | $%s MXN\n", core.SplitLabel, n, "A", p.Name, p.Description, p.Price)
		fmt.Fprintf(&b, "%s%d%s: %s", core.SplitLabel, n, "B", p.ImageURL)
	}
	b.WriteString("\n\nRemember: send every message individually, not as one block of text.")
	return b.String()
}

// FormatKits renders kit results in the same two-bubble shape, with the
// component list folded into the details line.
func FormatKits(kits []Kit) string {
	if len(kits) == 0 {
		return NoKitsMessage
	}

	var b strings.Builder
	b.WriteString(core.SplitMarker + ". Do NOT send everything as a single message.")
	for i, k := range kits {
		n := i + 1
		fmt.Fprintf(&b, "\n\nKIT %d - Send 2 separate messages:\n", n)
		fmt.Fprintf(&b, "%s%d%s: %s — %s — (%s) | $%s MXN\n", core.SplitLabel, n, "A", k.Name, k.Description, k.Components, k.Price)
		fmt.Fprintf(&b, "%s%d%s: %s", core.SplitLabel, n, "B", k.ImageURL)
	}
	b.WriteString("\n\nRemember: send every message individually, not as one block of text.")
	return b.String()
}
