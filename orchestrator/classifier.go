package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/tool"
)

// classification is the normalized output of one run: the client-facing
// messages, the audit event stream and the resulting active agent.
type classification struct {
	messages    []core.Message
	events      []core.Event
	activeAgent string
}

// classify maps the runtime's heterogeneous result items into the
// message/event taxonomy, processing items strictly in production order. The
// current-agent cursor starts at the session's active agent and advances on
// every handoff; its terminal value becomes the session's new active agent.
func classify(registry *agent.Registry, startAgent string, items []core.ResultItem) classification {
	out := classification{
		messages:    []core.Message{},
		events:      []core.Event{},
		activeAgent: startAgent,
	}

	for _, item := range items {
		switch it := item.(type) {
		case core.MessageItem:
			out.appendMessages(it)
		case core.HandoffItem:
			out.appendHandoff(registry, it)
		case core.ToolCallItem:
			out.appendToolCall(it)
		case core.ToolCallOutputItem:
			out.events = append(out.events, core.NewToolOutputEvent(it.Agent, stringifyOutput(it.Output), it.Output))
		}
	}

	return out
}

// appendMessages emits one message+event pair, or one pair per labeled line
// when the text carries the split marker. Agent attribution follows the
// item's originating agent, not the cursor.
func (c *classification) appendMessages(item core.MessageItem) {
	if !strings.Contains(item.Text, core.SplitMarker) {
		c.messages = append(c.messages, core.Message{Content: item.Text, Agent: item.Agent})
		c.events = append(c.events, core.NewMessageEvent(item.Agent, item.Text))
		return
	}
	for _, content := range parseSeparateMessages(item.Text) {
		c.messages = append(c.messages, core.Message{Content: content, Agent: item.Agent})
		c.events = append(c.events, core.NewMessageEvent(item.Agent, content))
	}
}

// appendHandoff emits the handoff event, surfaces a configured transfer
// callback as a tool_call event on the target agent, and advances the cursor.
func (c *classification) appendHandoff(registry *agent.Registry, item core.HandoffItem) {
	c.events = append(c.events, core.NewHandoffEvent(item.SourceAgent, item.TargetAgent))

	source := registry.Lookup(item.SourceAgent)
	if h, ok := source.FindHandoff(item.TargetAgent); ok && h.OnTransfer != nil {
		c.events = append(c.events, core.NewEvent(core.EventTypeToolCall, item.TargetAgent, h.OnTransfer.Name()))
	}

	c.activeAgent = item.TargetAgent
}

// appendToolCall emits the tool_call event with decoded-or-raw arguments and,
// for the designated UI-trigger tool, the extra selector signal message. That
// message is intentionally not mirrored as a second event.
func (c *classification) appendToolCall(item core.ToolCallItem) {
	c.events = append(c.events, core.NewToolCallEvent(item.Agent, item.ToolName, decodeToolArgs(item.RawArguments)))

	if item.ToolName == tool.BusinessSelectorToolName {
		c.messages = append(c.messages, core.Message{Content: tool.BusinessSelectorSignal, Agent: item.Agent})
	}
}

// parseSeparateMessages extracts the labeled sub-messages of a split-marker
// text, in line order, trimming content and dropping empty entries.
func parseSeparateMessages(text string) []string {
	var messages []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, core.SplitLabel) {
			continue
		}
		_, content, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			messages = append(messages, content)
		}
	}
	return messages
}

// decodeToolArgs decodes raw tool arguments as structured data, falling back
// to the opaque string. It never fails.
func decodeToolArgs(raw string) any {
	if raw == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	return decoded
}

// stringifyOutput renders a tool output for the event content field.
func stringifyOutput(output any) string {
	if s, ok := output.(string); ok {
		return s
	}
	if b, err := json.Marshal(output); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", output)
}
