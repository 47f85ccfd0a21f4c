package core

import "github.com/google/uuid"

// EventType categorizes the audit-visible records emitted during a turn.
type EventType string

const (
	EventTypeMessage       EventType = "message"
	EventTypeHandoff       EventType = "handoff"
	EventTypeToolCall      EventType = "tool_call"
	EventTypeToolOutput    EventType = "tool_output"
	EventTypeContextUpdate EventType = "context_update"
)

// Event is a normalized, client/audit-visible record of something that
// happened during a turn. Events are strictly ordered by production order
// within a turn and should be treated as immutable after emission.
type Event struct {
	ID       string         `json:"id"`
	Type     EventType      `json:"type"`
	Agent    string         `json:"agent"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Message is the client-facing projection of an agent reply. The message list
// of a turn is an order-preserving filter of its message events, plus the
// special UI-signal message emitted for the business selector tool.
type Message struct {
	Content string `json:"content"`
	Agent   string `json:"agent"`
}

// NewEvent creates an event with a fresh unique id.
func NewEvent(eventType EventType, agent, content string) Event {
	return Event{ID: NewID(), Type: eventType, Agent: agent, Content: content}
}

// NewMessageEvent creates a message event attributed to the given agent.
func NewMessageEvent(agent, content string) Event {
	return NewEvent(EventTypeMessage, agent, content)
}

// NewHandoffEvent creates a handoff event with "<source> -> <target>" content
// and source/target metadata.
func NewHandoffEvent(source, target string) Event {
	e := NewEvent(EventTypeHandoff, source, source+" -> "+target)
	e.Metadata = map[string]any{"source_agent": source, "target_agent": target}
	return e
}

// NewToolCallEvent creates a tool_call event carrying the decoded (or raw)
// tool arguments as metadata.
func NewToolCallEvent(agent, toolName string, args any) Event {
	e := NewEvent(EventTypeToolCall, agent, toolName)
	if args != nil {
		e.Metadata = map[string]any{"tool_args": args}
	}
	return e
}

// NewToolOutputEvent creates a tool_output event with the stringified result
// as content and the structured result as metadata.
func NewToolOutputEvent(agent, content string, result any) Event {
	e := NewEvent(EventTypeToolOutput, agent, content)
	e.Metadata = map[string]any{"tool_result": result}
	return e
}

// NewContextUpdateEvent creates a context_update event whose metadata carries
// the changed top-level context fields.
func NewContextUpdateEvent(agent string, changes map[string]any) Event {
	e := NewEvent(EventTypeContextUpdate, agent, "")
	e.Metadata = map[string]any{"changes": changes}
	return e
}

// NewID generates a unique identifier for events, sessions and audit entries.
func NewID() string { return uuid.NewString() }
