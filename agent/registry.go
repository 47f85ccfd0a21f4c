package agent

// Summary denormalizes one agent for the client-facing roster: name,
// description, outgoing handoff target names, tool names and guardrail names.
type Summary struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Handoffs        []string `json:"handoffs"`
	Tools           []string `json:"tools"`
	InputGuardrails []string `json:"input_guardrails"`
}

// Registry is the process-wide, read-only catalog of agent definitions. The
// first registered agent is the designated entry ("triage") agent; lookups of
// unknown names resolve to it so the system stays routable.
type Registry struct {
	entry  *Definition
	agents []*Definition
	byName map[string]*Definition
}

// NewRegistry builds a registry from the entry agent followed by the
// remaining agents in roster order.
func NewRegistry(entry *Definition, others ...*Definition) *Registry {
	agents := append([]*Definition{entry}, others...)
	byName := make(map[string]*Definition, len(agents))
	for _, a := range agents {
		byName[a.Name()] = a
	}
	return &Registry{entry: entry, agents: agents, byName: byName}
}

// Entry returns the designated entry agent.
func (r *Registry) Entry() *Definition { return r.entry }

// Lookup resolves a name to its definition, defaulting to the entry agent
// when the name is unknown. It never fails.
func (r *Registry) Lookup(name string) *Definition {
	if a, ok := r.byName[name]; ok {
		return a
	}
	return r.entry
}

// Roster returns summaries for all registered agents in registration order.
// The listing is pure and independent of any session.
func (r *Registry) Roster() []Summary {
	summaries := make([]Summary, 0, len(r.agents))
	for _, a := range r.agents {
		s := Summary{
			Name:            a.Name(),
			Description:     a.Description(),
			Handoffs:        make([]string, 0, len(a.Handoffs())),
			Tools:           make([]string, 0, len(a.Tools())),
			InputGuardrails: make([]string, 0, len(a.InputGuardrails())),
		}
		for _, h := range a.Handoffs() {
			s.Handoffs = append(s.Handoffs, h.Target)
		}
		for _, t := range a.Tools() {
			s.Tools = append(s.Tools, t.Name())
		}
		for _, g := range a.InputGuardrails() {
			s.InputGuardrails = append(s.InputGuardrails, g.Name())
		}
		summaries = append(summaries, s)
	}
	return summaries
}
