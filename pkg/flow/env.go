package flow

// InvocationEnv is the per-update scratch object an executor constructs
// before calling a node's OnUpdate and consumes afterward. It is owned by
// the executor, not the Flow, and is passed by reference into exactly one
// OnUpdate call.
type InvocationEnv[T any] struct {
	inputs  []*Value[T]
	updates map[int]*Value[T]
	// order preserves the sequence outputs were pushed in, so that a
	// host enumerating env.Updates() sees them in push order even though
	// updates itself is a map.
	order []int
}

// NewInvocationEnv constructs an InvocationEnv from the current input
// values of the node about to be updated, in declaration order.
func NewInvocationEnv[T any](inputs []*Value[T]) *InvocationEnv[T] {
	return &InvocationEnv[T]{
		inputs:  inputs,
		updates: make(map[int]*Value[T]),
	}
}

// GetInp returns the stored value for input port, or nil if the input is
// unconnected or its predecessor has never pushed. It fails with
// CodeInvalidPort if port is out of range.
func (e *InvocationEnv[T]) GetInp(port int) (*Value[T], error) {
	if port < 0 || port >= len(e.inputs) {
		return nil, errInvalidPort("InvocationEnv.GetInp")
	}
	return e.inputs[port], nil
}

// SetOut records value for output port, overwriting any prior entry for
// that port within this update. Updates reports the pushed ports in the
// order SetOut was first called for each; SetOut never touches the Flow
// directly — the executor latches the recorded values once OnUpdate
// returns.
func (e *InvocationEnv[T]) SetOut(port int, value *Value[T]) {
	if _, exists := e.updates[port]; !exists {
		e.order = append(e.order, port)
	}
	e.updates[port] = value
}

// Updates returns the ports pushed to during this update, in the order
// SetOut was first called for each.
func (e *InvocationEnv[T]) Updates() []int {
	return e.order
}

// ValueAt returns the value recorded for port by a prior SetOut call in
// this update, or nil if none was recorded.
func (e *InvocationEnv[T]) ValueAt(port int) *Value[T] {
	return e.updates[port]
}
