package chatmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/model"
)

func TestChatmesh_EndToEndTurn(t *testing.T) {
	registry := agent.NewRegistry(agent.New("Triage Agent"))
	llm := model.NewMockModel("mock", "test")
	llm.Enqueue(model.Response{Text: "Welcome to PromoPro!", FinishReason: "stop"})

	mesh := New(registry, llm)

	resp, err := mesh.HandleTurn(context.Background(), "", "hola")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "Triage Agent", resp.CurrentAgent)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Welcome to PromoPro!", resp.Messages[0].Content)

	// Second turn on the same conversation keeps the id and sees history.
	second, err := mesh.HandleTurn(context.Background(), resp.ConversationID, "do you have mugs?")
	require.NoError(t, err)
	assert.Equal(t, resp.ConversationID, second.ConversationID)
	require.Len(t, second.Messages, 1)
	// MockModel echoes the latest user message once its script is drained.
	assert.Equal(t, "Mock response to: do you have mugs?", second.Messages[0].Content)
}

func TestChatmesh_Accessors(t *testing.T) {
	registry := agent.NewRegistry(agent.New("Triage Agent"))
	mesh := New(registry, model.NewMockModel("mock", "test"))

	assert.Same(t, registry, mesh.Registry())
	assert.NotNil(t, mesh.Orchestrator())
}
