package guardrail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/model"
)

// decision is the structured verdict a guardrail model is instructed to emit.
type decision struct {
	Reasoning string `json:"reasoning"`
	Flagged   bool   `json:"flagged"`
}

const decisionFormat = `Respond with a single JSON object and nothing else: ` +
	`{"reasoning": "<brief reasoning>", "flagged": <true if the message violates the policy, else false>}`

// NewModelGuardrail builds a guardrail whose verdict comes from a small model
// call. The instructions describe the policy; the model is asked to evaluate
// ONLY the latest user message and return a {reasoning, flagged} JSON object.
// The tripwire triggers when the model flags the message.
func NewModelGuardrail(name string, m model.Model, instructions string) *Guardrail {
	return New(name, func(ctx context.Context, input string, _ *core.ConversationContext) (Result, error) {
		resp, err := m.Complete(ctx, model.Request{
			Instructions: instructions + "\n\n" + decisionFormat,
			Messages:     []model.Message{{Role: "user", Text: input}},
		})
		if err != nil {
			return Result{}, fmt.Errorf("guardrail model call: %w", err)
		}
		verdict, err := parseDecision(resp.Text)
		if err != nil {
			return Result{}, err
		}
		return Result{Reasoning: verdict.Reasoning, TripwireTriggered: verdict.Flagged}, nil
	})
}

// parseDecision decodes the model verdict, tolerating markdown code fences
// around the JSON object.
func parseDecision(text string) (decision, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	var verdict decision
	if err := json.Unmarshal([]byte(trimmed), &verdict); err != nil {
		return decision{}, fmt.Errorf("guardrail model returned malformed verdict: %w", err)
	}
	return verdict, nil
}
