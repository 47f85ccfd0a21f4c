// Package guardrail implements pre-run policy checks on user input. Each
// agent declares an ordered set of guardrails; the evaluator runs them before
// the reasoning runtime and short-circuits the turn when one trips.
package guardrail

import (
	"context"
	"fmt"

	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/internal/util"
)

// Result is the outcome of evaluating a single guardrail.
type Result struct {
	Reasoning         string `json:"reasoning"`
	TripwireTriggered bool   `json:"tripwire_triggered"`
}

// EvalFunc evaluates the latest user input against a policy. It receives the
// conversation context read-only; guardrails must not mutate business state.
type EvalFunc func(ctx context.Context, input string, conversation *core.ConversationContext) (Result, error)

// Guardrail is a named pre-run policy check. The name is stable across calls
// for the same guardrail and is the key used by audit assembly.
type Guardrail struct {
	name string
	fn   EvalFunc
}

// New creates a guardrail with an explicit display name.
func New(name string, fn EvalFunc) *Guardrail {
	return &Guardrail{name: name, fn: fn}
}

// NewFromFunc creates a guardrail named after a function-style identifier,
// humanized: "relevance_guardrail" yields "Relevance Guardrail".
func NewFromFunc(identifier string, fn EvalFunc) *Guardrail {
	return &Guardrail{name: util.Humanize(identifier), fn: fn}
}

// Name returns the stable display name of the guardrail.
func (g *Guardrail) Name() string { return g.name }

// Evaluate runs the check against the latest user input.
func (g *Guardrail) Evaluate(ctx context.Context, input string, conversation *core.ConversationContext) (Result, error) {
	return g.fn(ctx, input, conversation)
}

// Tripwire is the control-flow signal raised when a guardrail blocks a run.
// It is an expected condition, not a failure: callers detect it with
// errors.As and produce the fixed refusal response.
type Tripwire struct {
	Guardrail *Guardrail
	Result    Result
}

// Error implements the error interface.
func (t *Tripwire) Error() string {
	return fmt.Sprintf("guardrail %q tripwire triggered: %s", t.Guardrail.Name(), t.Result.Reasoning)
}

// Evaluate runs guardrails in declared order against the latest user input,
// short-circuiting at the first tripwire. A nil return means every guardrail
// passed. Guardrail evaluation failures are surfaced as plain errors and are
// fatal for the turn.
func Evaluate(ctx context.Context, guardrails []*Guardrail, input string, conversation *core.ConversationContext) error {
	for _, g := range guardrails {
		result, err := g.Evaluate(ctx, input, conversation)
		if err != nil {
			return fmt.Errorf("guardrail %q evaluation failed: %w", g.Name(), err)
		}
		if result.TripwireTriggered {
			return &Tripwire{Guardrail: g, Result: result}
		}
	}
	return nil
}
