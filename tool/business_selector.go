package tool

// BusinessSelectorToolName is the designated UI-trigger tool. When the
// classifier sees a tool call with this name it emits an extra client message
// carrying BusinessSelectorSignal so the frontend renders the business unit
// selector control.
const BusinessSelectorToolName = "display_business_selector"

// BusinessSelectorSignal is the fixed sentinel content of that message.
const BusinessSelectorSignal = "DISPLAY_BUSINESS_SELECTOR"

// businessSelectorTool triggers the client-side business unit selector.
type businessSelectorTool struct{}

// NewBusinessSelectorTool constructs the selector trigger tool instance.
func NewBusinessSelectorTool() Tool { return &businessSelectorTool{} }

func (t *businessSelectorTool) Name() string { return BusinessSelectorToolName }

func (t *businessSelectorTool) Description() string {
	return "Display the business unit selector so the customer can choose between Promoselect and SuitUp."
}

func (t *businessSelectorTool) Parameters() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

func (t *businessSelectorTool) Call(*ToolContext, map[string]any) (any, error) {
	return BusinessSelectorSignal, nil
}
