// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (catalog searches, UI signals, side-effects)
// with schema validated arguments and consistent error handling.
package tool

import (
	"context"
	"fmt"

	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/internal/util"
	"github.com/promopro/chatmesh/logging"
)

// ToolContext gives a tool access to the cancellation context of the current
// turn, the mutable conversation context and a structured logger. Mutating
// the conversation context here is the only sanctioned way for a run to
// change business state; the orchestrator picks the changes up through its
// pre/post-run diff.
type ToolContext struct {
	ctx          context.Context
	conversation *core.ConversationContext
	logger       logging.Logger
}

// NewToolContext builds a ToolContext for one tool invocation.
func NewToolContext(ctx context.Context, conversation *core.ConversationContext, logger logging.Logger) *ToolContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ToolContext{ctx: ctx, conversation: conversation, logger: logger}
}

// Context returns the cancellation context of the current turn.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// Conversation returns the mutable business context of the session.
func (tc *ToolContext) Conversation() *core.ConversationContext { return tc.conversation }

// Logger returns the structured logger for this invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }

// Tool defines the interface for extending agent capabilities with external
// functions.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions
//   - Define a JSON schema for parameters
//   - Be safe for concurrent use across conversations
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description provided to the model.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with already-decoded arguments.
	Call(toolCtx *ToolContext, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
