// Package pipeline sequences the commit-message stages over a shared state.
//
// The orchestrator is deliberately dumb: it checks each stage's declared
// input on the state, runs the stage, and records failures without aborting.
// Error propagation happens through the state itself, because a stage that
// fails leaves its output unset and the next readiness check halts the run.
package pipeline
