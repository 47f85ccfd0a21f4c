package promopro

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promopro/chatmesh/catalog"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/model"
	"github.com/promopro/chatmesh/tool"
)

func newTestRegistry() (*model.MockModel, *catalog.Catalog) {
	return model.NewMockModel("mock", "test"), catalog.New(nil, nil)
}

func TestNewRegistry_Shape(t *testing.T) {
	m, c := newTestRegistry()
	registry := NewRegistry(c, m)

	assert.Equal(t, TriageAgentName, registry.Entry().Name())

	roster := registry.Roster()
	require.Len(t, roster, 3)
	assert.Equal(t, TriageAgentName, roster[0].Name)
	assert.Equal(t, PromoselectAgentName, roster[1].Name)
	assert.Equal(t, SuitUpAgentName, roster[2].Name)

	// Triage routes to both specialists and carries the selector tool.
	assert.ElementsMatch(t, []string{PromoselectAgentName, SuitUpAgentName}, roster[0].Handoffs)
	assert.Equal(t, []string{tool.BusinessSelectorToolName}, roster[0].Tools)

	// Specialists carry their search tool and route back to triage.
	assert.Equal(t, []string{"search_products"}, roster[1].Tools)
	assert.Equal(t, []string{TriageAgentName}, roster[1].Handoffs)
	assert.Equal(t, []string{"search_kits"}, roster[2].Tools)
	assert.Equal(t, []string{TriageAgentName}, roster[2].Handoffs)

	// Every agent declares both guardrails.
	for _, s := range roster {
		assert.Equal(t, []string{"Relevance Guardrail", "Jailbreak Guardrail"}, s.InputGuardrails, s.Name)
	}
}

func TestTransferCallbacks_SetBusinessUnit(t *testing.T) {
	m, c := newTestRegistry()
	registry := NewRegistry(c, m)
	triage := registry.Entry()

	tests := []struct {
		target string
		want   string
	}{
		{PromoselectAgentName, BusinessUnitPromoselect},
		{SuitUpAgentName, BusinessUnitSuitUp},
	}
	for _, tt := range tests {
		h, ok := triage.FindHandoff(tt.target)
		require.True(t, ok, tt.target)
		require.NotNil(t, h.OnTransfer)

		conv := core.NewConversationContext()
		require.NoError(t, h.OnTransfer.Invoke(context.Background(), conv))
		assert.Equal(t, tt.want, conv.BusinessUnit, tt.target)
	}
}

func TestTriageInstructions_UseCustomerName(t *testing.T) {
	m, c := newTestRegistry()
	registry := NewRegistry(c, m)

	conv := core.NewConversationContext()
	anonymous, err := registry.Entry().ResolveInstructions(conv)
	require.NoError(t, err)
	assert.Contains(t, anonymous, "Hello! Welcome")

	conv.CustomerName = "Ana"
	named, err := registry.Entry().ResolveInstructions(conv)
	require.NoError(t, err)
	assert.Contains(t, named, "Hello Ana!")
}

func TestGuardrails_FlagVerdictTrips(t *testing.T) {
	m := model.NewMockModel("mock", "test")
	m.Enqueue(model.Response{Text: `{"reasoning": "asks about cars", "flagged": true}`})

	g := NewRelevanceGuardrail(m)
	assert.Equal(t, "Relevance Guardrail", g.Name())

	result, err := g.Evaluate(context.Background(), "tell me about cars", core.NewConversationContext())
	require.NoError(t, err)
	assert.True(t, result.TripwireTriggered)
	assert.Equal(t, "asks about cars", result.Reasoning)
}
