// Package orchestrator implements the per-turn conversation protocol: session
// resolution, pre-run guardrail evaluation, runtime invocation, result item
// classification, context-diff detection, persistence and guardrail-audit
// assembly.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/guardrail"
	"github.com/promopro/chatmesh/logging"
	"github.com/promopro/chatmesh/session"
)

// RefusalMessage is the fixed reply returned when a guardrail tripwire blocks
// a turn.
const RefusalMessage = "Sorry, I can only answer questions related to promotional products."

// Runtime is the reasoning agent runtime contract the orchestrator consumes.
// A run either returns ordered result items plus the canonical compacted
// input log, or fails; a *guardrail.Tripwire failure is handled as expected
// control flow, any other error is fatal for the turn.
type Runtime interface {
	Run(
		ctx context.Context,
		def *agent.Definition,
		inputLog []core.InputItem,
		conversation *core.ConversationContext,
	) (*core.RunResult, error)
}

// TurnResponse is the client-facing outcome of one turn.
type TurnResponse struct {
	ConversationID string                 `json:"conversation_id"`
	CurrentAgent   string                 `json:"current_agent"`
	Messages       []core.Message         `json:"messages"`
	Events         []core.Event           `json:"events"`
	Context        map[string]any         `json:"context"`
	Agents         []agent.Summary        `json:"agents"`
	Guardrails     []guardrail.AuditEntry `json:"guardrails"`
}

// Options configures an Orchestrator.
type Options struct {
	// RuntimeTimeout bounds each runtime invocation; zero disables the bound.
	RuntimeTimeout time.Duration
	// Logger receives structured turn diagnostics.
	Logger logging.Logger
}

// Orchestrator composes the registry, session store and runtime into the
// turn-level state machine. Turns on different conversations run in
// parallel; turns on the same conversation are serialized through a
// per-conversation lock so they cannot race on the context snapshot or the
// persisted state.
type Orchestrator struct {
	registry       *agent.Registry
	store          core.SessionStore
	runtime        Runtime
	locks          *session.KeyedMutex
	runtimeTimeout time.Duration
	logger         logging.Logger
}

// New constructs an Orchestrator.
func New(registry *agent.Registry, store core.SessionStore, rt Runtime, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		registry:       registry,
		store:          store,
		runtime:        rt,
		locks:          session.NewKeyedMutex(),
		runtimeTimeout: opts.RuntimeTimeout,
		logger:         opts.Logger,
	}
}

// HandleTurn processes one inbound (conversationID, message) pair and returns
// the turn response. An empty conversationID or an unknown one starts a fresh
// conversation under a newly generated id.
func (o *Orchestrator) HandleTurn(ctx context.Context, conversationID, message string) (*TurnResponse, error) {
	sess, fresh, unlock, err := o.resolveSession(conversationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// A fresh conversation opened with an empty message just materializes the
	// session: no guardrail run, no runtime invocation.
	if fresh && message == "" {
		return o.emptyTurnResponse(sess), nil
	}

	sess.InputLog = append(sess.InputLog, core.NewUserInputItem(message))
	before := sess.Context.Snapshot()
	active := o.registry.Lookup(sess.ActiveAgent)

	if err := guardrail.Evaluate(ctx, active.InputGuardrails(), message, sess.Context); err != nil {
		var trip *guardrail.Tripwire
		if errors.As(err, &trip) {
			return o.refuseTurn(sess, active, trip, message)
		}
		return nil, err
	}

	result, err := o.invokeRuntime(ctx, active, sess)
	if err != nil {
		var trip *guardrail.Tripwire
		if errors.As(err, &trip) {
			return o.refuseTurn(sess, active, trip, message)
		}
		return nil, fmt.Errorf("runtime invocation for conversation %s: %w", sess.ConversationID, err)
	}

	outcome := classify(o.registry, sess.ActiveAgent, result.NewItems)

	after := sess.Context.Snapshot()
	if changes := core.DiffSnapshots(before, after); len(changes) > 0 {
		outcome.events = append(outcome.events, core.NewContextUpdateEvent(outcome.activeAgent, changes))
	}

	sess.InputLog = result.InputLog
	sess.ActiveAgent = outcome.activeAgent
	if err := o.store.Save(sess); err != nil {
		return nil, fmt.Errorf("persist session %s: %w", sess.ConversationID, err)
	}

	o.logger.Info("turn.completed",
		"conversation_id", sess.ConversationID,
		"active_agent", outcome.activeAgent,
		"messages", len(outcome.messages),
		"events", len(outcome.events))

	resulting := o.registry.Lookup(outcome.activeAgent)
	return &TurnResponse{
		ConversationID: sess.ConversationID,
		CurrentAgent:   outcome.activeAgent,
		Messages:       outcome.messages,
		Events:         outcome.events,
		Context:        after,
		Agents:         o.registry.Roster(),
		Guardrails:     assembleAudit(resulting, nil, message),
	}, nil
}

// resolveSession loads the session for id, creating a fresh one under a new
// id when the id is absent or unknown. The returned unlock releases the
// per-conversation turn lock.
func (o *Orchestrator) resolveSession(conversationID string) (sess *core.Session, fresh bool, unlock func(), err error) {
	if conversationID != "" {
		unlock = o.locks.Lock(conversationID)
		sess, err = o.store.Get(conversationID)
		if err == nil {
			return sess, false, unlock, nil
		}
		unlock()
		if !errors.Is(err, core.ErrSessionNotFound) {
			return nil, false, nil, fmt.Errorf("load session %s: %w", conversationID, err)
		}
	}

	id := core.NewID()
	unlock = o.locks.Lock(id)
	sess, err = o.store.Create(id, o.registry.Entry().Name())
	if err != nil {
		unlock()
		return nil, false, nil, fmt.Errorf("create session %s: %w", id, err)
	}
	o.logger.Info("session.created", "conversation_id", id, "entry_agent", sess.ActiveAgent)
	return sess, true, unlock, nil
}

// invokeRuntime runs the reasoning runtime under the configured timeout.
func (o *Orchestrator) invokeRuntime(ctx context.Context, active *agent.Definition, sess *core.Session) (*core.RunResult, error) {
	if o.runtimeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.runtimeTimeout)
		defer cancel()
	}
	return o.runtime.Run(ctx, active, sess.InputLog, sess.Context)
}

// refuseTurn handles a guardrail tripwire: the fixed refusal becomes the sole
// message, the refusal is appended to the log, the active agent stays
// unchanged and no events are emitted. The audit covers every guardrail
// declared by the agent that was about to run.
func (o *Orchestrator) refuseTurn(sess *core.Session, active *agent.Definition, trip *guardrail.Tripwire, message string) (*TurnResponse, error) {
	o.logger.Warn("turn.guardrail_tripwire",
		"conversation_id", sess.ConversationID,
		"guardrail", trip.Guardrail.Name(),
		"agent", active.Name())

	audit := guardrail.BuildTripwireAudit(active.InputGuardrails(), trip, message)

	sess.InputLog = append(sess.InputLog, core.NewAssistantInputItem(RefusalMessage))
	if err := o.store.Save(sess); err != nil {
		return nil, fmt.Errorf("persist session %s: %w", sess.ConversationID, err)
	}

	return &TurnResponse{
		ConversationID: sess.ConversationID,
		CurrentAgent:   active.Name(),
		Messages:       []core.Message{{Content: RefusalMessage, Agent: active.Name()}},
		Events:         []core.Event{},
		Context:        sess.Context.Snapshot(),
		Agents:         o.registry.Roster(),
		Guardrails:     audit,
	}, nil
}

// emptyTurnResponse materializes a fresh session without running anything.
func (o *Orchestrator) emptyTurnResponse(sess *core.Session) *TurnResponse {
	return &TurnResponse{
		ConversationID: sess.ConversationID,
		CurrentAgent:   sess.ActiveAgent,
		Messages:       []core.Message{},
		Events:         []core.Event{},
		Context:        sess.Context.Snapshot(),
		Agents:         o.registry.Roster(),
		Guardrails:     []guardrail.AuditEntry{},
	}
}
