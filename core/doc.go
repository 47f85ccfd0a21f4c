// Package core defines the shared data model of chatmesh: conversation
// sessions and their store contract, the business context carried across
// turns, the closed set of result items produced by a reasoning run, and the
// normalized message/event records surfaced to clients.
//
// The package has no dependencies on other chatmesh packages so every layer
// (agents, guardrails, runtime, orchestrator, stores) can share these types
// without import cycles.
package core
