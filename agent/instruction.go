package agent

import "github.com/promopro/chatmesh/core"

// InstructionFunc derives instruction text from the conversation context at
// run time. The core never parses or validates the produced text.
type InstructionFunc func(conversation *core.ConversationContext) (string, error)

// Instruction represents either a static instruction string or a dynamic
// function of the conversation context. This mirrors a union of
// string | provider in a Go-idiomatic way.
type Instruction struct {
	text string
	fn   InstructionFunc
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(fn InstructionFunc) Instruction { return Instruction{fn: fn} }

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.fn == nil }

// Resolve returns the instruction text, invoking the function if needed.
func (i Instruction) Resolve(conversation *core.ConversationContext) (string, error) {
	if i.fn != nil {
		return i.fn(conversation)
	}
	return i.text, nil
}
