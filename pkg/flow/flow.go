package flow

// Flow owns a set of nodes and the connections between their ports. It is
// the single owner of node objects and latched output values; only a Flow
// (and, transitively, an executor holding it) may mutate them. A Flow is
// not safe for concurrent use.
type Flow[T any] struct {
	nextID NodeId
	nodes  map[NodeId]*nodeRecord[T]

	portSucc       map[PortAlias]map[PortAlias]struct{}
	portPred       map[PortAlias]*PortAlias
	portSuccMasked map[PortAlias]map[PortAlias]struct{}

	nodeSucc map[NodeId]map[NodeId]struct{}
	nodePred map[NodeId]map[NodeId]struct{}
}

// New creates an empty Flow.
func New[T any]() *Flow[T] {
	return &Flow[T]{
		nodes:          make(map[NodeId]*nodeRecord[T]),
		portSucc:       make(map[PortAlias]map[PortAlias]struct{}),
		portPred:       make(map[PortAlias]*PortAlias),
		portSuccMasked: make(map[PortAlias]map[PortAlias]struct{}),
		nodeSucc:       make(map[NodeId]map[NodeId]struct{}),
		nodePred:       make(map[NodeId]map[NodeId]struct{}),
	}
}

// AddNode moves node into the Flow, assigns it a new NodeId, initializes
// it, and freezes its input/output descriptor lists. This never fails.
func (f *Flow[T]) AddNode(node Node[T]) NodeId {
	id := f.nextID
	f.nextID++

	node.Init(id)
	inputDescs := node.InitInputs()
	inputs := make([]inputSlot, len(inputDescs))
	for i, d := range inputDescs {
		inputs[i] = inputSlot{desc: d, state: Active}
	}

	rec := &nodeRecord[T]{
		id:      id,
		node:    node,
		inputs:  inputs,
		outputs: node.InitOutputs(),
	}

	f.nodeSucc[id] = make(map[NodeId]struct{})
	f.nodePred[id] = make(map[NodeId]struct{})
	for _, o := range rec.iterOut() {
		f.portSucc[o] = make(map[PortAlias]struct{})
		f.portSuccMasked[o] = make(map[PortAlias]struct{})
	}
	for _, i := range rec.iterIn() {
		f.portPred[i] = nil
	}

	f.nodes[id] = rec
	return id
}

// RemoveNode disconnects every edge incident to id, then drops the node
// record. The id is never reused.
func (f *Flow[T]) RemoveNode(id NodeId) error {
	const op = "RemoveNode"
	rec, ok := f.nodes[id]
	if !ok {
		return errNodeNotFound(op)
	}

	for _, in := range rec.iterIn() {
		if from := f.portPred[in]; from != nil {
			if err := f.Disconnect(*from, in); err != nil {
				return err
			}
		}
	}
	for _, out := range rec.iterOut() {
		for to := range f.portSucc[out] {
			if err := f.Disconnect(out, to); err != nil {
				return err
			}
		}
	}

	for _, in := range rec.iterIn() {
		delete(f.portPred, in)
	}
	for _, out := range rec.iterOut() {
		delete(f.portSucc, out)
		delete(f.portSuccMasked, out)
	}
	delete(f.nodeSucc, id)
	delete(f.nodePred, id)
	delete(f.nodes, id)
	return nil
}

func (f *Flow[T]) portKindOf(p PortAlias) (PortKind, bool) {
	rec, ok := f.nodes[p.Node]
	if !ok {
		return 0, false
	}
	switch p.Dir {
	case Out:
		if p.Index < 0 || p.Index >= len(rec.outputs) {
			return 0, false
		}
		return rec.outputs[p.Index].Kind, true
	default:
		if p.Index < 0 || p.Index >= len(rec.inputs) {
			return 0, false
		}
		return rec.inputs[p.Index].desc.Kind, true
	}
}

// Connect wires from (an output) to to (an input). Fails with
// CodeInvalidPort if either alias is unknown, out of range, or both name
// the same direction; with CodeInputAlreadyConnected if to already has an
// incoming edge; with CodePortTypesMismatch if the two ports' Kinds
// differ. On any failure, no state changes.
func (f *Flow[T]) Connect(from, to PortAlias) error {
	const op = "Connect"
	if from.Dir != Out || to.Dir != In {
		return errInvalidPort(op)
	}
	fromKind, ok := f.portKindOf(from)
	if !ok {
		return errInvalidPort(op)
	}
	toKind, ok := f.portKindOf(to)
	if !ok {
		return errInvalidPort(op)
	}
	pred, ok := f.portPred[to]
	if !ok {
		return errInvalidPort(op)
	}
	if pred != nil {
		return newErr(op, CodeInputAlreadyConnected, nil)
	}
	if fromKind != toKind {
		return newErr(op, CodePortTypesMismatch, nil)
	}

	f.portSucc[from][to] = struct{}{}
	if f.inputState(to) == Active {
		f.portSuccMasked[from][to] = struct{}{}
	}
	fromCopy := from
	f.portPred[to] = &fromCopy
	f.nodeSucc[from.Node][to.Node] = struct{}{}
	f.nodePred[to.Node][from.Node] = struct{}{}
	return nil
}

// Disconnect removes the edge between from and to from all adjacency
// maps. Fails with CodeInvalidPort only if one of the aliases is unknown;
// disconnecting two known-but-unconnected ports silently succeeds.
func (f *Flow[T]) Disconnect(from, to PortAlias) error {
	const op = "Disconnect"
	succ, ok := f.portSucc[from]
	if !ok {
		return errInvalidPort(op)
	}
	if _, ok := f.portPred[to]; !ok {
		return errInvalidPort(op)
	}
	if _, connected := succ[to]; !connected {
		return nil
	}

	delete(succ, to)
	delete(f.portSuccMasked[from], to)
	f.portPred[to] = nil
	for _, o := range f.nodes[from.Node].iterOut() {
		for in := range f.portSucc[o] {
			if in.Node == to.Node {
				return nil
			}
		}
	}
	delete(f.nodeSucc[from.Node], to.Node)
	delete(f.nodePred[to.Node], from.Node)
	return nil
}

func (f *Flow[T]) inputState(p PortAlias) InputState {
	rec := f.nodes[p.Node]
	return rec.inputs[p.Index].state
}

// SetOutputValOf latches v on node's port output slot. No successors are
// scheduled as a side effect; that is the executor's job.
func (f *Flow[T]) SetOutputValOf(id NodeId, port int, v *Value[T]) error {
	const op = "SetOutputValOf"
	rec, ok := f.nodes[id]
	if !ok {
		return errNodeNotFound(op)
	}
	if port < 0 || port >= len(rec.outputs) {
		return errInvalidPort(op)
	}
	rec.outputs[port].setVal(v)
	return nil
}

// OutputValOf returns the current latched value of node's output port, or
// nil if it has never been pushed.
func (f *Flow[T]) OutputValOf(id NodeId, port int) (*Value[T], error) {
	const op = "OutputValOf"
	rec, ok := f.nodes[id]
	if !ok {
		return nil, errNodeNotFound(op)
	}
	if port < 0 || port >= len(rec.outputs) {
		return nil, errInvalidPort(op)
	}
	return rec.outputs[port].getVal(), nil
}

// InputValOf returns the latched value of the output connected to node's
// input port, or nil if the input is unconnected. Fails with
// CodeInvalidPort if the port doesn't exist.
func (f *Flow[T]) InputValOf(id NodeId, port int) (*Value[T], error) {
	const op = "InputValOf"
	alias := PortAlias{Node: id, Dir: In, Index: port}
	pred, ok := f.portPred[alias]
	if !ok {
		return nil, errInvalidPort(op)
	}
	if pred == nil {
		return nil, nil
	}
	return f.OutputValOf(pred.Node, pred.Index)
}

// InputValuesOf returns node's per-input latched values, in declaration
// order.
func (f *Flow[T]) InputValuesOf(id NodeId) ([]*Value[T], error) {
	const op = "InputValuesOf"
	rec, ok := f.nodes[id]
	if !ok {
		return nil, errNodeNotFound(op)
	}
	vals := make([]*Value[T], len(rec.inputs))
	for i := range rec.inputs {
		v, err := f.InputValOf(id, i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// UpdateNode delegates to node's OnUpdate, wrapping any reported failure
// in CodeNodeError.
func (f *Flow[T]) UpdateNode(id NodeId, env *InvocationEnv[T]) error {
	const op = "UpdateNode"
	rec, ok := f.nodes[id]
	if !ok {
		return errNodeNotFound(op)
	}
	if err := rec.node.OnUpdate(env); err != nil {
		return newErr(op, CodeNodeError, err)
	}
	return nil
}

// MaskInputs updates the per-input Active/Inactive state of node id and
// recomputes port_succ_masked for every edge incident to its inputs.
// Fails with CodePortsMismatch if len(mask) doesn't match the node's
// input count.
func (f *Flow[T]) MaskInputs(id NodeId, mask []InputState) error {
	const op = "MaskInputs"
	rec, ok := f.nodes[id]
	if !ok {
		return errNodeNotFound(op)
	}
	if len(mask) != len(rec.inputs) {
		return newErr(op, CodePortsMismatch, nil)
	}

	for i, m := range mask {
		rec.inputs[i].state = m
		inAlias := PortAlias{Node: id, Dir: In, Index: i}
		pred := f.portPred[inAlias]
		if pred == nil {
			continue
		}
		out := *pred
		if m == Inactive {
			delete(f.portSuccMasked[out], inAlias)
		} else {
			f.portSuccMasked[out][inAlias] = struct{}{}
		}
	}
	return nil
}

// SuccNodesOfPort returns the distinct successor node ids connected to
// output out, in no particular order. When considerMasking is true, only
// targets whose input is currently Active are included.
func (f *Flow[T]) SuccNodesOfPort(out PortAlias, considerMasking bool) ([]NodeId, error) {
	const op = "SuccNodesOfPort"
	if out.Dir != Out {
		return nil, errInvalidPort(op)
	}
	m := f.portSucc
	if considerMasking {
		m = f.portSuccMasked
	}
	targets, ok := m[out]
	if !ok {
		return nil, errInvalidPort(op)
	}
	seen := make(map[NodeId]struct{}, len(targets))
	res := make([]NodeId, 0, len(targets))
	for t := range targets {
		if _, dup := seen[t.Node]; dup {
			continue
		}
		seen[t.Node] = struct{}{}
		res = append(res, t.Node)
	}
	return res, nil
}

// SuccNodesOfPorts returns the union of SuccNodesOfPort across ports.
func (f *Flow[T]) SuccNodesOfPorts(ports []PortAlias, considerMasking bool) ([]NodeId, error) {
	seen := make(map[NodeId]struct{})
	var res []NodeId
	for _, p := range ports {
		ids, err := f.SuccNodesOfPort(p, considerMasking)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			res = append(res, id)
		}
	}
	return res, nil
}

// NodeSucc returns the direct successor node ids of id at node
// granularity (derived from port_succ).
func (f *Flow[T]) NodeSucc(id NodeId) ([]NodeId, error) {
	const op = "NodeSucc"
	succ, ok := f.nodeSucc[id]
	if !ok {
		return nil, errNodeNotFound(op)
	}
	res := make([]NodeId, 0, len(succ))
	for n := range succ {
		res = append(res, n)
	}
	return res, nil
}

// NodePred returns the direct predecessor node ids of id.
func (f *Flow[T]) NodePred(id NodeId) ([]NodeId, error) {
	const op = "NodePred"
	pred, ok := f.nodePred[id]
	if !ok {
		return nil, errNodeNotFound(op)
	}
	res := make([]NodeId, 0, len(pred))
	for n := range pred {
		res = append(res, n)
	}
	return res, nil
}
