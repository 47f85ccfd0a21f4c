// Package chatmesh provides a high-level façade over the conversation
// orchestrator and its services (agent registry, session store, model
// runtime and logging) enabling rapid construction of multi-agent chat
// systems. Most applications interact with this package by:
//  1. Creating a Chatmesh via New() with an agent registry and a model
//     (optionally overriding default in-memory services)
//  2. Calling HandleTurn per inbound user message
//
// The façade delegates turn processing to orchestrator.Orchestrator while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// session store and a structured logger.
package chatmesh

import (
	"context"
	"time"

	"github.com/promopro/chatmesh/agent"
	"github.com/promopro/chatmesh/core"
	"github.com/promopro/chatmesh/logging"
	"github.com/promopro/chatmesh/model"
	"github.com/promopro/chatmesh/orchestrator"
	"github.com/promopro/chatmesh/runtime"
	"github.com/promopro/chatmesh/session"
)

// Options configures the Chatmesh instance.
type Options struct {
	// SessionStore persists conversation state. Defaults to the in-memory
	// implementation if not provided.
	SessionStore core.SessionStore

	// Runtime executes agent reasoning runs. Defaults to the model-backed
	// runtime over the provided model.
	Runtime orchestrator.Runtime

	// RuntimeTimeout bounds each runtime invocation; zero disables the bound.
	RuntimeTimeout time.Duration

	// MaxModelCalls caps model round-trips per run in the default runtime.
	MaxModelCalls int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Chatmesh is the high-level façade aggregating the orchestrator and its
// services.
type Chatmesh struct {
	registry *agent.Registry
	orch     *orchestrator.Orchestrator
}

// New creates a Chatmesh over the given agent registry and model. Any unset
// service is initialized with its default implementation.
func New(registry *agent.Registry, m model.Model, optFns ...func(o *Options)) *Chatmesh {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	rt := opts.Runtime
	if rt == nil {
		rt = runtime.New(registry, m, func(o *runtime.Options) {
			if opts.MaxModelCalls > 0 {
				o.MaxModelCalls = opts.MaxModelCalls
			}
			o.Logger = opts.Logger
		})
	}

	orch := orchestrator.New(registry, opts.SessionStore, rt, func(o *orchestrator.Options) {
		o.RuntimeTimeout = opts.RuntimeTimeout
		o.Logger = opts.Logger
	})

	return &Chatmesh{registry: registry, orch: orch}
}

// Registry returns the agent registry backing this instance.
func (c *Chatmesh) Registry() *agent.Registry { return c.registry }

// Orchestrator exposes the underlying orchestrator, for callers that mount
// their own transport.
func (c *Chatmesh) Orchestrator() *orchestrator.Orchestrator { return c.orch }

// HandleTurn processes one inbound (conversationID, message) pair. An empty
// or unknown conversationID starts a fresh conversation under a new id.
func (c *Chatmesh) HandleTurn(ctx context.Context, conversationID, message string) (*orchestrator.TurnResponse, error) {
	return c.orch.HandleTurn(ctx, conversationID, message)
}
