// Package model abstracts language model providers behind a small interface
// so the reasoning runtime and model-backed guardrails do not branch per
// vendor. Adapters for OpenAI and Anthropic live in subpackages.
package model

import "context"

// ToolCall represents a function call request surfaced by a model provider.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string of arguments
}

// ToolResult carries the outcome of a previously surfaced tool call back to
// the model on the next request.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Message is one normalized conversation entry sent to a provider. Exactly
// one of the payload field groups is typically populated: plain text for
// user/assistant turns, ToolCalls for an assistant turn requesting tools,
// ToolResults for the matching tool role turn.
type Message struct {
	Role        string       `json:"role"` // user, assistant or tool
	Text        string       `json:"text,omitempty"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// ToolDefinition declaratively exposes a callable function to the model.
// Parameters is a minimal JSON Schema object.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by the runtime.
type Request struct {
	Instructions string           `json:"instructions"`
	Messages     []Message        `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion returned by a provider: assistant text,
// zero or more tool call requests, or both.
type Response struct {
	Text         string      `json:"text"`
	ToolCalls    []ToolCall  `json:"tool_calls,omitempty"`
	FinishReason string      `json:"finish_reason"`
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation.
type Model interface {
	// Complete performs one blocking completion call. Implementations must
	// honor ctx cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// replays a scripted queue of responses in order; when the queue is empty it
// echoes the last user message.
type MockModel struct {
	info    Info
	scripts []Response
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{info: Info{Name: name, Provider: provider, SupportsTools: true}}
}

// Enqueue appends a scripted response replayed by the next Complete call.
func (m *MockModel) Enqueue(resp Response) { m.scripts = append(m.scripts, resp) }

// Complete implements Model by replaying the scripted queue.
func (m *MockModel) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.scripts) > 0 {
		next := m.scripts[0]
		m.scripts = m.scripts[1:]
		return &next, nil
	}
	var last string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			last = msg.Text
		}
	}
	return &Response{Text: "Mock response to: " + last, FinishReason: "stop"}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
