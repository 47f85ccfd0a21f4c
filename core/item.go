package core

// InputItem is one entry of a session's chronological input log: a user
// message, an assistant reply, or a serialized tool exchange. The orchestrator
// treats the log as opaque ordered history; only the reasoning runtime
// interprets it.
type InputItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewUserInputItem creates a user-authored log entry.
func NewUserInputItem(content string) InputItem {
	return InputItem{Role: "user", Content: content}
}

// NewAssistantInputItem creates an assistant-authored log entry.
func NewAssistantInputItem(content string) InputItem {
	return InputItem{Role: "assistant", Content: content}
}

// ResultItem is one unit of output produced by a single reasoning run.
// Concrete item types implement the unexported isResultItem marker enabling a
// closed set: the classifier switches exhaustively over these variants and
// adding a new kind is a compile-time-checked extension point.
type ResultItem interface{ isResultItem() }

// MessageItem is a natural language reply produced by an agent.
type MessageItem struct {
	Agent string // originating agent name
	Text  string
}

func (MessageItem) isResultItem() {}

// HandoffItem records a transfer of control between two agents.
type HandoffItem struct {
	SourceAgent string
	TargetAgent string
}

func (HandoffItem) isResultItem() {}

// ToolCallItem records an agent requesting execution of a named tool.
// RawArguments is the serialized argument payload as produced by the model;
// it may or may not be valid JSON.
type ToolCallItem struct {
	Agent        string
	ToolName     string
	RawArguments string
}

func (ToolCallItem) isResultItem() {}

// ToolCallOutputItem records the result of a previously requested tool call.
type ToolCallOutputItem struct {
	Agent  string
	Output any
}

func (ToolCallOutputItem) isResultItem() {}

// RunResult is the outcome of a successful reasoning run: the ordered items
// the run produced plus the canonical compacted input log that replaces the
// session's log at end of turn.
type RunResult struct {
	NewItems []ResultItem
	InputLog []InputItem
}
