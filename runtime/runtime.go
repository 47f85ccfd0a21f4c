// Package runtime implements the reasoning agent runtime: given an agent
// definition, the ordered input history and the mutable conversation context,
// it drives the model/tool loop and produces the ordered result items the
// orchestrator classifies. Handoff edges are exposed to the model as
// synthetic transfer tools; invoking one switches the active definition
// mid-run and fires the edge's transfer callback.
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/internal/util"
	"github.com/promopro/chatmesh/logging"
	"github.com/promopro/chatmesh/model"
	"github.com/promopro/chatmesh/tool"
)

// transferToolPrefix prefixes the synthetic tool exposed per handoff edge:
// an edge to "Promoselect Agent" surfaces as "transfer_to_promoselect_agent".
const transferToolPrefix = "transfer_to_"

// Options configures a ModelRuntime.
type Options struct {
	// MaxModelCalls bounds the number of model completions per run.
	MaxModelCalls int
	// Logger receives structured run/tool diagnostics.
	Logger logging.Logger
}

// ModelRuntime runs agents against a model.Model. It is stateless between
// runs and safe for concurrent use across conversations.
type ModelRuntime struct {
	registry      *agent.Registry
	llm           model.Model
	maxModelCalls int
	logger        logging.Logger
}

// New constructs a ModelRuntime with optional overrides.
func New(registry *agent.Registry, llm model.Model, optFns ...func(o *Options)) *ModelRuntime {
	opts := Options{MaxModelCalls: 10, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ModelRuntime{
		registry:      registry,
		llm:           llm,
		maxModelCalls: opts.MaxModelCalls,
		logger:        opts.Logger,
	}
}

// Run executes one reasoning run for the active agent. It returns the ordered
// result items plus the canonical compacted input log, or an error that is
// fatal for the turn. The caller bounds the run with ctx (timeout or
// cancellation).
func (r *ModelRuntime) Run(
	ctx context.Context,
	def *agent.Definition,
	inputLog []core.InputItem,
	conversation *core.ConversationContext,
) (*core.RunResult, error) {
	current := def
	messages := logToMessages(inputLog)

	var items []core.ResultItem

	for call := 0; call < r.maxModelCalls; call++ {
		instructions, err := current.ResolveInstructions(conversation)
		if err != nil {
			return nil, fmt.Errorf("resolve instructions for %q: %w", current.Name(), err)
		}

		resp, err := r.llm.Complete(ctx, model.Request{
			Instructions: instructions,
			Messages:     messages,
			Tools:        toolDefinitions(current),
		})
		if err != nil {
			return nil, fmt.Errorf("model call for %q: %w", current.Name(), err)
		}

		r.logger.Debug("runtime.model.completed",
			"agent", current.Name(),
			"tool_calls", len(resp.ToolCalls),
			"has_text", resp.Text != "")

		if resp.Text != "" {
			items = append(items, core.MessageItem{Agent: current.Name(), Text: resp.Text})
		}

		if len(resp.ToolCalls) == 0 {
			return &core.RunResult{
				NewItems: items,
				InputLog: compactLog(inputLog, items),
			}, nil
		}

		messages = append(messages, model.Message{
			Role:      "assistant",
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		results := model.Message{Role: "tool"}
		for _, tc := range resp.ToolCalls {
			if target, ok := r.transferTarget(current, tc.Name); ok {
				handoffItems, err := r.transfer(ctx, current, target, conversation)
				if err != nil {
					return nil, err
				}
				items = append(items, handoffItems...)
				results.ToolResults = append(results.ToolResults, model.ToolResult{
					CallID:  tc.ID,
					Name:    tc.Name,
					Content: fmt.Sprintf(`{"transferred": true, "agent": %q}`, target.Name()),
				})
				current = target
				continue
			}

			items = append(items, core.ToolCallItem{
				Agent:        current.Name(),
				ToolName:     tc.Name,
				RawArguments: tc.Arguments,
			})
			output, err := r.executeTool(ctx, current, tc, conversation)
			if err != nil {
				return nil, err
			}
			items = append(items, core.ToolCallOutputItem{Agent: current.Name(), Output: output})
			results.ToolResults = append(results.ToolResults, model.ToolResult{
				CallID:  tc.ID,
				Name:    tc.Name,
				Content: stringify(output),
			})
		}
		messages = append(messages, results)
	}

	return nil, fmt.Errorf("run for %q exceeded %d model calls", def.Name(), r.maxModelCalls)
}

// transferTarget resolves a synthetic transfer tool name against the current
// agent's handoff edges.
func (r *ModelRuntime) transferTarget(current *agent.Definition, toolName string) (*agent.Definition, bool) {
	if !strings.HasPrefix(toolName, transferToolPrefix) {
		return nil, false
	}
	slug := strings.TrimPrefix(toolName, transferToolPrefix)
	for _, h := range current.Handoffs() {
		if util.SnakeCase(h.Target) == slug {
			return r.registry.Lookup(h.Target), true
		}
	}
	return nil, false
}

// transfer records the handoff and fires the edge's OnTransfer callback,
// which is the only place business context changes hands during a transfer.
func (r *ModelRuntime) transfer(
	ctx context.Context,
	source, target *agent.Definition,
	conversation *core.ConversationContext,
) ([]core.ResultItem, error) {
	r.logger.Info("runtime.handoff", "source", source.Name(), "target", target.Name())

	items := []core.ResultItem{core.HandoffItem{
		SourceAgent: source.Name(),
		TargetAgent: target.Name(),
	}}
	if h, ok := source.FindHandoff(target.Name()); ok && h.OnTransfer != nil {
		if err := h.OnTransfer.Invoke(ctx, conversation); err != nil {
			return nil, fmt.Errorf("transfer callback %q: %w", h.OnTransfer.Name(), err)
		}
	}
	return items, nil
}

// executeTool decodes arguments and runs the named tool. Unknown tools and
// tool failures are fatal for the turn.
func (r *ModelRuntime) executeTool(
	ctx context.Context,
	current *agent.Definition,
	tc model.ToolCall,
	conversation *core.ConversationContext,
) (any, error) {
	t, ok := current.FindTool(tc.Name)
	if !ok {
		return nil, fmt.Errorf("agent %q has no tool %q", current.Name(), tc.Name)
	}

	args := map[string]any{}
	if tc.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			r.logger.Warn("runtime.tool.args_decode_failed", "tool", tc.Name, "error", err.Error())
			args = map[string]any{}
		}
	}

	output, err := t.Call(tool.NewToolContext(ctx, conversation, r.logger), args)
	if err != nil {
		return nil, fmt.Errorf("tool %q: %w", tc.Name, err)
	}
	return output, nil
}

// toolDefinitions exposes the agent's declared tools plus one synthetic
// transfer tool per handoff edge, as the model-facing capability set.
func toolDefinitions(def *agent.Definition) []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(def.Tools())+len(def.Handoffs()))
	for _, t := range def.Tools() {
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	for _, h := range def.Handoffs() {
		defs = append(defs, model.ToolDefinition{
			Name:        transferToolPrefix + util.SnakeCase(h.Target),
			Description: "Transfer the conversation to " + h.Target + " when it is better suited to help.",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		})
	}
	return defs
}

// logToMessages replays the compacted cross-turn log as model messages.
func logToMessages(inputLog []core.InputItem) []model.Message {
	messages := make([]model.Message, 0, len(inputLog))
	for _, item := range inputLog {
		messages = append(messages, model.Message{Role: item.Role, Text: item.Content})
	}
	return messages
}

// compactLog builds the canonical log persisted after the run: the prior log
// plus one assistant entry per produced message, preserving causal order.
// Intra-run tool traffic is not persisted; it is re-derivable from events and
// would otherwise bloat every future prompt.
func compactLog(inputLog []core.InputItem, items []core.ResultItem) []core.InputItem {
	compacted := make([]core.InputItem, len(inputLog), len(inputLog)+len(items))
	copy(compacted, inputLog)
	for _, item := range items {
		if msg, ok := item.(core.MessageItem); ok {
			compacted = append(compacted, core.NewAssistantInputItem(msg.Text))
		}
	}
	return compacted
}

// stringify renders a tool output for the model: strings pass through, other
// values are JSON encoded.
func stringify(output any) string {
	if s, ok := output.(string); ok {
		return s
	}
	if b, err := json.Marshal(output); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", output)
}
