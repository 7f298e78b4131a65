package flow

// Node is the contract a host implements to participate in a Flow. A node
// is a unit of computation with a fixed set of inputs and outputs; it is
// single-owner, mutated only by the Flow that holds it.
//
// Lifecycle: Init is called exactly once, when the Flow has assigned the
// node its id; InitInputs and InitOutputs are then queried exactly once
// each, and their results are frozen for the node's lifetime. OnPlaced,
// OnRemoved, and OnRebuilt are host-driven lifecycle hooks the core never
// calls itself — a host is free to leave OnRebuilt unused.
//
// OnUpdate is the only callback invoked during execution; see package
// executor for when and how often.
type Node[T any] interface {
	// Init is called once the Flow has assigned id to this node.
	Init(id NodeId)
	// InitInputs is queried once, immediately after Init. The returned
	// list is frozen: its length and order never change afterward.
	InitInputs() []NodeInput
	// InitOutputs is queried once, immediately after InitInputs. The
	// returned list is frozen.
	InitOutputs() []NodeOutput[T]

	OnPlaced()
	OnRemoved()
	OnRebuilt()

	// OnUpdate is called by an executor to run this node's computation.
	// It reads inputs through env.GetInp and records outputs through
	// env.SetOut; the executor latches those outputs and schedules
	// successors only after OnUpdate returns successfully.
	OnUpdate(env *InvocationEnv[T]) error
}
