package orchestrator

import (
	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/guardrail"
)

// assembleAudit produces one audit entry per guardrail declared by the
// resulting active agent. Entries already recorded this turn are reused by
// name; the rest are synthesized as passed with empty reasoning. On the
// success path recorded is always empty (the tripwire path returns early),
// but the lookup stays generic.
func assembleAudit(resulting *agent.Definition, recorded []guardrail.AuditEntry, input string) []guardrail.AuditEntry {
	byName := make(map[string]guardrail.AuditEntry, len(recorded))
	for _, entry := range recorded {
		if _, ok := byName[entry.Name]; !ok {
			byName[entry.Name] = entry
		}
	}

	entries := make([]guardrail.AuditEntry, 0, len(resulting.InputGuardrails()))
	for _, g := range resulting.InputGuardrails() {
		if entry, ok := byName[g.Name()]; ok {
			entries = append(entries, entry)
			continue
		}
		entries = append(entries, guardrail.NewPassedEntry(g.Name(), input))
	}
	return entries
}
