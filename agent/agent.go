// Package agent defines the static catalog of agent behavior units: named
// definitions with a tool set, outgoing handoff edges and input guardrails,
// plus the process-wide read-only registry used to resolve them.
package agent

import (
	"context"

	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/guardrail"
	"github.com/promopro/chatmesh/tool"
)

// TransferCallback is a named side-effect attached to a handoff edge. The
// name is explicit because it surfaces as the content of the tool_call event
// emitted when the transfer happens.
type TransferCallback struct {
	name string
	fn   func(ctx context.Context, conversation *core.ConversationContext) error
}

// NewTransferCallback creates a named transfer side-effect.
func NewTransferCallback(name string, fn func(ctx context.Context, conversation *core.ConversationContext) error) *TransferCallback {
	return &TransferCallback{name: name, fn: fn}
}

// Name returns the identifying name of the callback.
func (c *TransferCallback) Name() string { return c.name }

// Invoke runs the side-effect against the conversation context.
func (c *TransferCallback) Invoke(ctx context.Context, conversation *core.ConversationContext) error {
	return c.fn(ctx, conversation)
}

// Handoff is an outgoing edge to another agent, optionally carrying a
// transfer side-effect.
type Handoff struct {
	Target     string
	OnTransfer *TransferCallback
}

// Options configures a Definition.
type Options struct {
	Description     string
	Instructions    Instruction
	Tools           []tool.Tool
	Handoffs        []Handoff
	InputGuardrails []*guardrail.Guardrail
}

// Definition is an immutable, named agent configuration: its instruction
// source, invocable tools, outgoing handoff edges and input guardrails.
// Definitions are constructed once at registry build time and never mutated.
type Definition struct {
	name            string
	description     string
	instructions    Instruction
	tools           []tool.Tool
	handoffs        []Handoff
	inputGuardrails []*guardrail.Guardrail
}

// New creates an agent definition.
func New(name string, optFns ...func(o *Options)) *Definition {
	opts := Options{Instructions: NewInstructionFromText("You are " + name + ", a helpful AI assistant.")}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Definition{
		name:            name,
		description:     opts.Description,
		instructions:    opts.Instructions,
		tools:           opts.Tools,
		handoffs:        opts.Handoffs,
		inputGuardrails: opts.InputGuardrails,
	}
}

// Name returns the unique, stable agent name.
func (d *Definition) Name() string { return d.name }

// Description returns the handoff description shown in the roster.
func (d *Definition) Description() string { return d.description }

// Tools returns the agent's invocable tools in declaration order.
func (d *Definition) Tools() []tool.Tool { return d.tools }

// Handoffs returns the agent's outgoing handoff edges in declaration order.
func (d *Definition) Handoffs() []Handoff { return d.handoffs }

// InputGuardrails returns the agent's pre-run checks in declaration order.
func (d *Definition) InputGuardrails() []*guardrail.Guardrail { return d.inputGuardrails }

// ResolveInstructions produces the system prompt for a run by resolving the
// static or dynamic instruction source against the conversation context.
func (d *Definition) ResolveInstructions(conversation *core.ConversationContext) (string, error) {
	return d.instructions.Resolve(conversation)
}

// FindHandoff returns the configured handoff edge matching the target agent
// by name, if any.
func (d *Definition) FindHandoff(target string) (Handoff, bool) {
	for _, h := range d.handoffs {
		if h.Target == target {
			return h, true
		}
	}
	return Handoff{}, false
}

// FindTool returns the named tool, if the agent declares it.
func (d *Definition) FindTool(name string) (tool.Tool, bool) {
	for _, t := range d.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}
