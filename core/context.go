package core

import "reflect"

// ConversationContext is the structured business state accumulated across a
// conversation's turns. It is created once per session and mutated only as a
// side effect of the runtime executing tools and transfer callbacks during a
// run; the orchestrator itself never writes to it after creation.
type ConversationContext struct {
	BusinessUnit       string           `json:"business_unit"`
	CustomerName       string           `json:"customer_name"`
	SelectedProducts   []map[string]any `json:"selected_products"`
	ProductDescription string           `json:"product_description"`
	Budget             string           `json:"budget"`
}

// NewConversationContext returns an empty context for a fresh session.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{SelectedProducts: []map[string]any{}}
}

// Clone returns a deep copy safe for independent mutation.
func (c *ConversationContext) Clone() *ConversationContext {
	clone := *c
	clone.SelectedProducts = make([]map[string]any, len(c.SelectedProducts))
	for i, p := range c.SelectedProducts {
		cp := make(map[string]any, len(p))
		for k, v := range p {
			cp[k] = v
		}
		clone.SelectedProducts[i] = cp
	}
	return &clone
}

// Snapshot renders the context as a field map keyed by its wire names. Used
// for diffing pre/post-run state and for the JSON context block of a turn
// response. The selected products slice is copied, not aliased.
func (c *ConversationContext) Snapshot() map[string]any {
	products := make([]map[string]any, len(c.SelectedProducts))
	copy(products, c.Clone().SelectedProducts)
	return map[string]any{
		"business_unit":       c.BusinessUnit,
		"customer_name":       c.CustomerName,
		"selected_products":   products,
		"product_description": c.ProductDescription,
		"budget":              c.Budget,
	}
}

// DiffSnapshots computes the set of changed top-level fields between two
// context snapshots. Comparison is shallow per field (deep equality on the
// field value); fields absent from before count as changed.
func DiffSnapshots(before, after map[string]any) map[string]any {
	changes := map[string]any{}
	for field, value := range after {
		prev, ok := before[field]
		if !ok || !reflect.DeepEqual(prev, value) {
			changes[field] = value
		}
	}
	return changes
}
