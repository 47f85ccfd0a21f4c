package guardrail

import (
	"time"

	"github.com/promopro/chatmesh/core"
)

// AuditEntry is one row of the guardrail audit returned with every turn
// response: the evaluation outcome (real or synthesized) of one guardrail
// declared by the responding agent.
type AuditEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Input     string `json:"input"`
	Reasoning string `json:"reasoning"`
	Passed    bool   `json:"passed"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// NewPassedEntry synthesizes a passed entry with empty reasoning for a
// guardrail that was never individually evaluated this turn.
func NewPassedEntry(name, input string) AuditEntry {
	return AuditEntry{
		ID:        core.NewID(),
		Name:      name,
		Input:     input,
		Passed:    true,
		Timestamp: time.Now().UnixMilli(),
	}
}

// BuildTripwireAudit builds audit entries for every guardrail declared by the
// agent that was about to run when the tripwire fired. The failing guardrail
// gets its real reasoning and passed=false; every other guardrail on the same
// agent gets passed=true with an empty reasoning string, since evaluation
// short-circuited before reaching it.
func BuildTripwireAudit(guardrails []*Guardrail, trip *Tripwire, input string) []AuditEntry {
	now := time.Now().UnixMilli()
	entries := make([]AuditEntry, 0, len(guardrails))
	for _, g := range guardrails {
		entry := AuditEntry{
			ID:        core.NewID(),
			Name:      g.Name(),
			Input:     input,
			Passed:    g != trip.Guardrail,
			Timestamp: now,
		}
		if g == trip.Guardrail {
			entry.Reasoning = trip.Result.Reasoning
		}
		entries = append(entries, entry)
	}
	return entries
}
