package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/model"
	"github.com/promopro/chatmesh/tool"
)

func echoTool(t *testing.T) tool.Tool {
	t.Helper()
	return tool.NewFunctionTool("echo", "echoes keyword", map[string]any{
		"type":       "object",
		"properties": map[string]any{"keyword": map[string]any{"type": "string"}},
	}, func(_ *tool.ToolContext, args map[string]any) (any, error) {
		keyword, _ := args["keyword"].(string)
		return "echo: " + keyword, nil
	})
}

func buildRegistry(t *testing.T) *agent.Registry {
	t.Helper()

	specialist := agent.New("Promoselect Agent", func(o *agent.Options) {
		o.Tools = []tool.Tool{echoTool(t)}
		o.Handoffs = []agent.Handoff{{Target: "Triage Agent"}}
	})
	triage := agent.New("Triage Agent", func(o *agent.Options) {
		o.Handoffs = []agent.Handoff{{
			Target: "Promoselect Agent",
			OnTransfer: agent.NewTransferCallback("set_business_unit_promoselect",
				func(_ context.Context, conv *core.ConversationContext) error {
					conv.BusinessUnit = "promoselect"
					return nil
				}),
		}}
	})
	return agent.NewRegistry(triage, specialist)
}

func TestRun_TextOnly(t *testing.T) {
	registry := buildRegistry(t)
	llm := model.NewMockModel("mock", "test")
	llm.Enqueue(model.Response{Text: "Hello! How can I help?", FinishReason: "stop"})

	rt := New(registry, llm)
	inputLog := []core.InputItem{core.NewUserInputItem("hola")}

	result, err := rt.Run(context.Background(), registry.Entry(), inputLog, core.NewConversationContext())
	require.NoError(t, err)

	require.Len(t, result.NewItems, 1)
	msg, ok := result.NewItems[0].(core.MessageItem)
	require.True(t, ok)
	assert.Equal(t, "Triage Agent", msg.Agent)
	assert.Equal(t, "Hello! How can I help?", msg.Text)

	// Compacted log: prior log plus one assistant entry per message.
	require.Len(t, result.InputLog, 2)
	assert.Equal(t, "user", result.InputLog[0].Role)
	assert.Equal(t, "assistant", result.InputLog[1].Role)
	assert.Equal(t, "Hello! How can I help?", result.InputLog[1].Content)
}

func TestRun_ToolCallFlow(t *testing.T) {
	registry := buildRegistry(t)
	specialist := registry.Lookup("Promoselect Agent")

	llm := model.NewMockModel("mock", "test")
	llm.Enqueue(model.Response{ToolCalls: []model.ToolCall{{
		ID: "call-1", Name: "echo", Arguments: `{"keyword": "mug"}`,
	}}})
	llm.Enqueue(model.Response{Text: "Here is what I found.", FinishReason: "stop"})

	rt := New(registry, llm)
	result, err := rt.Run(context.Background(), specialist,
		[]core.InputItem{core.NewUserInputItem("find mugs")}, core.NewConversationContext())
	require.NoError(t, err)

	require.Len(t, result.NewItems, 3)

	call, ok := result.NewItems[0].(core.ToolCallItem)
	require.True(t, ok)
	assert.Equal(t, "echo", call.ToolName)
	assert.Equal(t, `{"keyword": "mug"}`, call.RawArguments)

	out, ok := result.NewItems[1].(core.ToolCallOutputItem)
	require.True(t, ok)
	assert.Equal(t, "echo: mug", out.Output)

	msg, ok := result.NewItems[2].(core.MessageItem)
	require.True(t, ok)
	assert.Equal(t, "Here is what I found.", msg.Text)

	// Tool traffic is not persisted in the compacted log.
	require.Len(t, result.InputLog, 2)
	assert.Equal(t, "Here is what I found.", result.InputLog[1].Content)
}

func TestRun_TransferFiresCallbackAndSwitchesAgent(t *testing.T) {
	registry := buildRegistry(t)
	llm := model.NewMockModel("mock", "test")
	llm.Enqueue(model.Response{ToolCalls: []model.ToolCall{{
		ID: "call-1", Name: "transfer_to_promoselect_agent", Arguments: "{}",
	}}})
	llm.Enqueue(model.Response{Text: "I can help with products.", FinishReason: "stop"})

	rt := New(registry, llm)
	conv := core.NewConversationContext()

	result, err := rt.Run(context.Background(), registry.Entry(),
		[]core.InputItem{core.NewUserInputItem("promoselect please")}, conv)
	require.NoError(t, err)

	require.Len(t, result.NewItems, 2)

	handoff, ok := result.NewItems[0].(core.HandoffItem)
	require.True(t, ok)
	assert.Equal(t, "Triage Agent", handoff.SourceAgent)
	assert.Equal(t, "Promoselect Agent", handoff.TargetAgent)

	msg, ok := result.NewItems[1].(core.MessageItem)
	require.True(t, ok)
	assert.Equal(t, "Promoselect Agent", msg.Agent)

	// The transfer callback recorded the business unit.
	assert.Equal(t, "promoselect", conv.BusinessUnit)
}

func TestRun_UnknownToolIsFatal(t *testing.T) {
	registry := buildRegistry(t)
	llm := model.NewMockModel("mock", "test")
	llm.Enqueue(model.Response{ToolCalls: []model.ToolCall{{
		ID: "call-1", Name: "nonexistent", Arguments: "{}",
	}}})

	rt := New(registry, llm)
	_, err := rt.Run(context.Background(), registry.Entry(),
		[]core.InputItem{core.NewUserInputItem("hi")}, core.NewConversationContext())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestRun_MalformedToolArgsFallBackToEmpty(t *testing.T) {
	registry := buildRegistry(t)
	specialist := registry.Lookup("Promoselect Agent")

	llm := model.NewMockModel("mock", "test")
	llm.Enqueue(model.Response{ToolCalls: []model.ToolCall{{
		ID: "call-1", Name: "echo", Arguments: "not json",
	}}})
	llm.Enqueue(model.Response{Text: "done", FinishReason: "stop"})

	rt := New(registry, llm)
	result, err := rt.Run(context.Background(), specialist,
		[]core.InputItem{core.NewUserInputItem("hi")}, core.NewConversationContext())
	require.NoError(t, err)

	out, ok := result.NewItems[1].(core.ToolCallOutputItem)
	require.True(t, ok)
	assert.Equal(t, "echo: ", out.Output)
}

func TestRun_ExceedsModelCallBudget(t *testing.T) {
	registry := buildRegistry(t)
	specialist := registry.Lookup("Promoselect Agent")

	llm := model.NewMockModel("mock", "test")
	for i := 0; i < 3; i++ {
		llm.Enqueue(model.Response{ToolCalls: []model.ToolCall{{
			ID: "call", Name: "echo", Arguments: "{}",
		}}})
	}

	rt := New(registry, llm, func(o *Options) { o.MaxModelCalls = 3 })
	_, err := rt.Run(context.Background(), specialist,
		[]core.InputItem{core.NewUserInputItem("loop")}, core.NewConversationContext())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded 3 model calls")
}
