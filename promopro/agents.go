// Package promopro assembles the PromoPro sales assistant: a triage agent
// that routes customers to the Promoselect (individual products) or SuitUp
// (kits) specialist, with catalog search tools, transfer side-effects that
// record the chosen business unit, and model-backed input guardrails.
package promopro

import (
	"context"
	"fmt"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/catalog"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/guardrail"
	"github.com/promopro/chatmesh/model"
	"github.com/promopro/chatmesh/tool"
)

// Agent names. Handoff edges and session state reference agents by these
// exact strings.
const (
	TriageAgentName      = "Triage Agent"
	PromoselectAgentName = "Promoselect Agent"
	SuitUpAgentName      = "SuitUp Agent"
)

// Business unit values written to the conversation context on transfer.
const (
	BusinessUnitPromoselect = "promoselect"
	BusinessUnitSuitUp      = "suitup"
)

// Options configures the agent assembly.
type Options struct {
	// GuardrailModel backs the relevance and jailbreak checks. Defaults to
	// the main model when unset.
	GuardrailModel model.Model
}

// NewRegistry builds the three-agent PromoPro registry over the given catalog
// and model. The triage agent is the entry point.
func NewRegistry(c *catalog.Catalog, m model.Model, optFns ...func(o *Options)) *agent.Registry {
	opts := Options{GuardrailModel: m}
	for _, fn := range optFns {
		fn(&opts)
	}

	guardrails := []*guardrail.Guardrail{
		NewRelevanceGuardrail(opts.GuardrailModel),
		NewJailbreakGuardrail(opts.GuardrailModel),
	}

	promoselect := newPromoselectAgent(c, guardrails)
	suitup := newSuitUpAgent(c, guardrails)
	triage := newTriageAgent(guardrails)

	return agent.NewRegistry(triage, promoselect, suitup)
}

func newTriageAgent(guardrails []*guardrail.Guardrail) *agent.Definition {
	return agent.New(TriageAgentName, func(o *agent.Options) {
		o.Description = "A triage agent that can delegate a customer's request to the appropriate business unit agent."
		o.Instructions = agent.NewInstructionFromFunc(triageInstructions)
		o.Tools = []tool.Tool{tool.NewBusinessSelectorTool()}
		o.Handoffs = []agent.Handoff{
			{
				Target: PromoselectAgentName,
				OnTransfer: agent.NewTransferCallback("set_business_unit_promoselect",
					func(_ context.Context, conversation *core.ConversationContext) error {
						conversation.BusinessUnit = BusinessUnitPromoselect
						return nil
					}),
			},
			{
				Target: SuitUpAgentName,
				OnTransfer: agent.NewTransferCallback("set_business_unit_suitup",
					func(_ context.Context, conversation *core.ConversationContext) error {
						conversation.BusinessUnit = BusinessUnitSuitUp
						return nil
					}),
			},
		}
		o.InputGuardrails = guardrails
	})
}

func triageInstructions(conversation *core.ConversationContext) (string, error) {
	greeting := "Hello! Welcome to our promotional products assistant."
	if conversation != nil && conversation.CustomerName != "" {
		greeting = fmt.Sprintf("Hello %s! Welcome to our promotional products assistant.", conversation.CustomerName)
	}
	return "You are a helpful AI assistant. " + greeting + " " +
		"To get started, ask the customer to select their business unit using the display_business_selector tool. " +
		"Once they select a business unit, transfer them to the corresponding specialist agent. " +
		"If the customer mentions 'Promoselect', transfer to the Promoselect Agent. " +
		"If the customer mentions 'SuitUp', transfer to the SuitUp Agent.", nil
}

func newPromoselectAgent(c *catalog.Catalog, guardrails []*guardrail.Guardrail) *agent.Definition {
	return agent.New(PromoselectAgentName, func(o *agent.Options) {
		o.Description = "A helpful agent that can search for individual promotional products from Promoselect."
		o.Instructions = agent.NewInstructionFromText(
			"You are a specialist in individual promotional products for Promoselect.\n\n" +
				"Your role is to help customers find the perfect promotional items from our catalog.\n\n" +
				"You have access to the search_products tool to search our promotional products database.\n\n" +
				"Process:\n" +
				"1. Ask what type of promotional products they're looking for\n" +
				"2. Use search_products to find matching products\n" +
				"3. Relay the formatted search results to the customer verbatim, keeping each labeled message separate\n\n" +
				"Always present up to 3 products, and send separate messages for product details and images.\n" +
				"Focus only on individual promotional products, not kits.\n" +
				"If the customer wants kits instead, transfer them back to the Triage Agent.")
		o.Tools = []tool.Tool{catalog.NewProductSearchTool(c)}
		o.Handoffs = []agent.Handoff{{Target: TriageAgentName}}
		o.InputGuardrails = guardrails
	})
}

func newSuitUpAgent(c *catalog.Catalog, guardrails []*guardrail.Guardrail) *agent.Definition {
	return agent.New(SuitUpAgentName, func(o *agent.Options) {
		o.Description = "A helpful agent that can search for promotional product kits from SuitUp."
		o.Instructions = agent.NewInstructionFromText(
			"You are a specialist in promotional product kits for SuitUp.\n\n" +
				"Your role is to help customers find the perfect promotional kits from our catalog.\n\n" +
				"You have access to the search_kits tool to search our promotional kits database.\n\n" +
				"Process:\n" +
				"1. Ask what type of promotional kits they're looking for\n" +
				"2. Use search_kits to find matching kits\n" +
				"3. Relay the formatted search results to the customer verbatim, keeping each labeled message separate\n\n" +
				"Always present up to 3 kits, and send separate messages for kit details and images.\n" +
				"Focus only on promotional kits, not individual products.\n" +
				"If the customer wants individual products instead, transfer them back to the Triage Agent.")
		o.Tools = []tool.Tool{catalog.NewKitSearchTool(c)}
		o.Handoffs = []agent.Handoff{{Target: TriageAgentName}}
		o.InputGuardrails = guardrails
	})
}
