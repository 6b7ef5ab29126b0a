// Package state defines the shared record that flows through the commit
// message pipeline.
//
// A State is created once per run, passed by pointer through the diff,
// summary, and commit stages, and discarded (or serialized with ToJSON for
// inspection) when the run ends. Each stage writes its output field at most
// once; AddError is append-only. ReadyFor implements the readiness table the
// orchestrator consults before running a stage.
package state
