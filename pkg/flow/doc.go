// Package flow implements the graph half of a minimal dataflow execution
// runtime: a topologically mutable graph of nodes with labeled input and
// output ports, connected port-to-port, with per-output latched values and
// per-input activation masks.
//
// # Overview
//
// A Flow owns a set of nodes. Each node declares, once at add time, an
// ordered list of inputs and an ordered list of outputs. Outputs may fan
// out to any number of inputs; an input accepts at most one incoming
// connection (single-sink). Pushing a value to an output latches it on the
// Flow; readers observe the latest latched value through a read-only
// reference-counted handle, never a copy of the payload.
//
// Inputs can be masked Active/Inactive. Masking never changes graph
// topology — a masked-but-connected input still reports its predecessor's
// value through InputValOf — it only changes whether that input's node
// gets scheduled when the predecessor output is pushed. See package
// executor for the scheduler that uses this.
//
// # Invariants
//
// The Flow maintains four adjacency structures (port_succ, port_pred,
// port_succ_masked, and node-granularity node_succ/node_pred) and
// guarantees, after every public operation that returns without error,
// that they agree with each other — see the package-level tests for the
// exact invariants.
//
// # Non-goals
//
// Flow has no persistence, performs no type checking beyond the coarse
// PortKind tag, and is not safe for concurrent use: a single Flow must be
// driven by one thread of control.
package flow
