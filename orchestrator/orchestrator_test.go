package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/guardrail"
	"github.com/promopro/chatmesh/session"
)

// stubRuntime replays a scripted run function.
type stubRuntime struct {
	run func(ctx context.Context, def *agent.Definition, inputLog []core.InputItem, conversation *core.ConversationContext) (*core.RunResult, error)
}

func (s *stubRuntime) Run(ctx context.Context, def *agent.Definition, inputLog []core.InputItem, conversation *core.ConversationContext) (*core.RunResult, error) {
	return s.run(ctx, def, inputLog, conversation)
}

func replyRuntime(text string) *stubRuntime {
	return &stubRuntime{run: func(_ context.Context, def *agent.Definition, inputLog []core.InputItem, _ *core.ConversationContext) (*core.RunResult, error) {
		return &core.RunResult{
			NewItems: []core.ResultItem{core.MessageItem{Agent: def.Name(), Text: text}},
			InputLog: append(inputLog, core.NewAssistantInputItem(text)),
		}, nil
	}}
}

func blockingGuardrail(name string) *guardrail.Guardrail {
	return guardrail.New(name, func(_ context.Context, input string, _ *core.ConversationContext) (guardrail.Result, error) {
		if input == "tell me about cars" {
			return guardrail.Result{Reasoning: "off-topic", TripwireTriggered: true}, nil
		}
		return guardrail.Result{}, nil
	})
}

func newOrchestratorFixture(rt Runtime) (*Orchestrator, core.SessionStore) {
	triage := agent.New("Triage Agent", func(o *agent.Options) {
		o.InputGuardrails = []*guardrail.Guardrail{
			blockingGuardrail("Relevance Guardrail"),
			blockingGuardrail("Jailbreak Guardrail"),
		}
	})
	suitup := agent.New("SuitUp Agent")
	registry := agent.NewRegistry(triage, suitup)

	store := session.NewInMemoryStore()
	return New(registry, store, rt), store
}

func TestHandleTurn_EmptyMessageOnFreshSession(t *testing.T) {
	orch, _ := newOrchestratorFixture(&stubRuntime{run: func(context.Context, *agent.Definition, []core.InputItem, *core.ConversationContext) (*core.RunResult, error) {
		t.Fatal("runtime must not run for an empty opening message")
		return nil, nil
	}})

	resp, err := orch.HandleTurn(context.Background(), "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Triage Agent", resp.CurrentAgent)
	assert.Empty(t, resp.Messages)
	assert.Empty(t, resp.Events)
	assert.Empty(t, resp.Guardrails)
	assert.Len(t, resp.Agents, 2)
	assert.Contains(t, resp.Context, "business_unit")
}

func TestHandleTurn_UnknownConversationIDStartsFresh(t *testing.T) {
	orch, _ := newOrchestratorFixture(replyRuntime("hello"))

	resp, err := orch.HandleTurn(context.Background(), "no-such-id", "hola")
	require.NoError(t, err)

	// A new id is generated rather than adopting the unknown one.
	assert.NotEqual(t, "no-such-id", resp.ConversationID)
	assert.NotEmpty(t, resp.ConversationID)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "hello", resp.Messages[0].Content)
}

func TestHandleTurn_RoundTripPersistsState(t *testing.T) {
	orch, store := newOrchestratorFixture(replyRuntime("first reply"))

	first, err := orch.HandleTurn(context.Background(), "", "hola")
	require.NoError(t, err)

	second, err := orch.HandleTurn(context.Background(), first.ConversationID, "segunda")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	sess, err := store.Get(first.ConversationID)
	require.NoError(t, err)
	// user, assistant, user, assistant across the two turns.
	require.Len(t, sess.InputLog, 4)
	assert.Equal(t, "hola", sess.InputLog[0].Content)
	assert.Equal(t, "first reply", sess.InputLog[1].Content)
	assert.Equal(t, "segunda", sess.InputLog[2].Content)
}

func TestHandleTurn_TripwireRefusal(t *testing.T) {
	orch, store := newOrchestratorFixture(&stubRuntime{run: func(context.Context, *agent.Definition, []core.InputItem, *core.ConversationContext) (*core.RunResult, error) {
		t.Fatal("runtime must not run after a tripwire")
		return nil, nil
	}})

	opened, err := orch.HandleTurn(context.Background(), "", "")
	require.NoError(t, err)

	resp, err := orch.HandleTurn(context.Background(), opened.ConversationID, "tell me about cars")
	require.NoError(t, err)

	require.Len(t, resp.Messages, 1)
	assert.Equal(t, RefusalMessage, resp.Messages[0].Content)
	assert.Empty(t, resp.Events)
	assert.Equal(t, "Triage Agent", resp.CurrentAgent)

	// Audit: the tripping guardrail fails with real reasoning, the rest are
	// synthesized as passed.
	require.Len(t, resp.Guardrails, 2)
	assert.Equal(t, "Relevance Guardrail", resp.Guardrails[0].Name)
	assert.False(t, resp.Guardrails[0].Passed)
	assert.Equal(t, "off-topic", resp.Guardrails[0].Reasoning)
	assert.True(t, resp.Guardrails[1].Passed)
	assert.Empty(t, resp.Guardrails[1].Reasoning)

	// The refusal is persisted to the log; the user message stays.
	sess, err := store.Get(opened.ConversationID)
	require.NoError(t, err)
	require.Len(t, sess.InputLog, 2)
	assert.Equal(t, "tell me about cars", sess.InputLog[0].Content)
	assert.Equal(t, RefusalMessage, sess.InputLog[1].Content)
}

func TestHandleTurn_SuccessAuditAllPassed(t *testing.T) {
	orch, _ := newOrchestratorFixture(replyRuntime("sure"))

	resp, err := orch.HandleTurn(context.Background(), "", "do you have mugs?")
	require.NoError(t, err)

	require.Len(t, resp.Guardrails, 2)
	for _, entry := range resp.Guardrails {
		assert.True(t, entry.Passed)
		assert.Empty(t, entry.Reasoning)
		assert.Equal(t, "do you have mugs?", entry.Input)
	}
}

func TestHandleTurn_FatalRuntimeError(t *testing.T) {
	boom := errors.New("model unavailable")
	orch, _ := newOrchestratorFixture(&stubRuntime{run: func(context.Context, *agent.Definition, []core.InputItem, *core.ConversationContext) (*core.RunResult, error) {
		return nil, boom
	}})

	_, err := orch.HandleTurn(context.Background(), "", "hola")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestHandleTurn_RuntimeTripwireHandledAsRefusal(t *testing.T) {
	trip := &guardrail.Tripwire{
		Guardrail: blockingGuardrail("Relevance Guardrail"),
		Result:    guardrail.Result{Reasoning: "off-topic"},
	}
	orch, _ := newOrchestratorFixture(&stubRuntime{run: func(context.Context, *agent.Definition, []core.InputItem, *core.ConversationContext) (*core.RunResult, error) {
		return nil, trip
	}})

	resp, err := orch.HandleTurn(context.Background(), "", "hola")
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, RefusalMessage, resp.Messages[0].Content)
}

func TestHandleTurn_ContextUpdateEvent(t *testing.T) {
	rt := &stubRuntime{run: func(_ context.Context, def *agent.Definition, inputLog []core.InputItem, conv *core.ConversationContext) (*core.RunResult, error) {
		conv.BusinessUnit = "suitup"
		return &core.RunResult{
			NewItems: []core.ResultItem{
				core.HandoffItem{SourceAgent: def.Name(), TargetAgent: "SuitUp Agent"},
				core.MessageItem{Agent: "SuitUp Agent", Text: "kits it is"},
			},
			InputLog: append(inputLog, core.NewAssistantInputItem("kits it is")),
		}, nil
	}}
	orch, store := newOrchestratorFixture(rt)

	resp, err := orch.HandleTurn(context.Background(), "", "SuitUp please")
	require.NoError(t, err)

	assert.Equal(t, "SuitUp Agent", resp.CurrentAgent)
	assert.Equal(t, "suitup", resp.Context["business_unit"])

	last := resp.Events[len(resp.Events)-1]
	assert.Equal(t, core.EventTypeContextUpdate, last.Type)
	assert.Equal(t, "SuitUp Agent", last.Agent)
	changes, ok := last.Metadata["changes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "suitup", changes["business_unit"])

	sess, err := store.Get(resp.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "SuitUp Agent", sess.ActiveAgent)
	assert.Equal(t, "suitup", sess.Context.BusinessUnit)
}
