package executor

import (
	"testing"

	"github.com/dataflow-rt/flowcore/pkg/flow"
)

// The node types below reproduce the fixtures the original scheduler was
// validated against: a pass-through echo, a min/max combiner with fixed
// defaults, and a counter that saturates at a threshold. Expected values
// throughout this file come from running those same fixtures by hand.

type echoNode struct {
	id flow.NodeId
}

func (n *echoNode) Init(id flow.NodeId) { n.id = id }
func (n *echoNode) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{{Label: "in", Kind: flow.KindData}}
}
func (n *echoNode) InitOutputs() []flow.NodeOutput[int] {
	return []flow.NodeOutput[int]{{Label: "out", Kind: flow.KindData}}
}
func (n *echoNode) OnPlaced() {}
func (n *echoNode) OnRemoved() {}
func (n *echoNode) OnRebuilt() {}
func (n *echoNode) OnUpdate(env *flow.InvocationEnv[int]) error {
	v, err := env.GetInp(0)
	if err != nil {
		return err
	}
	if v == nil {
		v = flow.NewValue(42)
	}
	env.SetOut(0, v)
	return nil
}

const (
	minMaxLow  = 5
	minMaxHigh = 100
)

type minMaxNode struct {
	id flow.NodeId
}

func (n *minMaxNode) Init(id flow.NodeId) { n.id = id }
func (n *minMaxNode) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{
		{Label: "in0", Kind: flow.KindData},
		{Label: "in1", Kind: flow.KindData},
	}
}
func (n *minMaxNode) InitOutputs() []flow.NodeOutput[int] {
	return []flow.NodeOutput[int]{
		{Label: "min", Kind: flow.KindData},
		{Label: "max", Kind: flow.KindData},
	}
}
func (n *minMaxNode) OnPlaced() {}
func (n *minMaxNode) OnRemoved() {}
func (n *minMaxNode) OnRebuilt() {}
func (n *minMaxNode) OnUpdate(env *flow.InvocationEnv[int]) error {
	a, err := env.GetInp(0)
	if err != nil {
		return err
	}
	b, err := env.GetInp(1)
	if err != nil {
		return err
	}
	if a == nil && b == nil {
		env.SetOut(0, flow.NewValue(minMaxLow))
		env.SetOut(1, flow.NewValue(minMaxHigh))
		return nil
	}

	lo, hi := minMaxLow, minMaxHigh
	switch {
	case a != nil && b != nil:
		lo, hi = a.Get(), b.Get()
		if lo > hi {
			lo, hi = hi, lo
		}
	case a != nil:
		lo, hi = a.Get(), a.Get()
	case b != nil:
		lo, hi = b.Get(), b.Get()
	}
	env.SetOut(0, flow.NewValue(lo))
	env.SetOut(1, flow.NewValue(hi))
	return nil
}

const counterThreshold = 50

type counterNode struct {
	id flow.NodeId
}

func (n *counterNode) Init(id flow.NodeId) { n.id = id }
func (n *counterNode) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{{Label: "in", Kind: flow.KindData}}
}
func (n *counterNode) InitOutputs() []flow.NodeOutput[int] {
	return []flow.NodeOutput[int]{{Label: "out", Kind: flow.KindData}}
}
func (n *counterNode) OnPlaced() {}
func (n *counterNode) OnRemoved() {}
func (n *counterNode) OnRebuilt() {}
func (n *counterNode) OnUpdate(env *flow.InvocationEnv[int]) error {
	v, err := env.GetInp(0)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	cur := v.Get()
	if cur >= counterThreshold {
		return nil
	}
	env.SetOut(0, flow.NewValue(cur+1))
	return nil
}

func out(t *testing.T, f *flow.Flow[int], id flow.NodeId, port int) int {
	t.Helper()
	v, err := f.OutputValOf(id, port)
	if err != nil {
		t.Fatalf("OutputValOf(%d,%d): %v", id, port, err)
	}
	if v == nil {
		t.Fatalf("OutputValOf(%d,%d): no value latched", id, port)
	}
	return v.Get()
}

func TestTopoWithLoops_EchoChain(t *testing.T) {
	f := flow.New[int]()
	e0 := f.AddNode(&echoNode{})
	e1 := f.AddNode(&echoNode{})
	e2 := f.AddNode(&echoNode{})

	mustConnect(t, f, e0, 0, e1, 0)
	mustConnect(t, f, e1, 0, e2, 0)

	ex := New[int]()
	if err := ex.Invoke(f, e0); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	for _, id := range []flow.NodeId{e0, e1, e2} {
		if got := out(t, f, id, 0); got != 42 {
			t.Errorf("node %d out = %d, want 42", id, got)
		}
	}

	if err := f.SetOutputValOf(e1, 0, flow.NewValue(100)); err != nil {
		t.Fatalf("SetOutputValOf: %v", err)
	}
	if err := ex.Invoke(f, e2); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := out(t, f, e2, 0); got != 100 {
		t.Errorf("e2 out = %d, want 100", got)
	}
	if got := out(t, f, e0, 0); got != 42 {
		t.Errorf("e0 out = %d, want unchanged 42", got)
	}
}

// TestTopoWithLoops_TerminatingLoop wires a back-edge through a counter
// that saturates at counterThreshold, so the outer scheduling loop runs
// until the counter stops pushing new output.
func TestTopoWithLoops_TerminatingLoop(t *testing.T) {
	f := flow.New[int]()
	e0 := f.AddNode(&echoNode{})
	ctr := f.AddNode(&counterNode{})
	m0 := f.AddNode(&minMaxNode{})
	e1 := f.AddNode(&echoNode{})
	m1 := f.AddNode(&minMaxNode{})

	mustConnect(t, f, e0, 0, m0, 0)
	mustConnect(t, f, ctr, 0, m0, 1)
	mustConnect(t, f, m0, 0, e1, 0)
	mustConnect(t, f, e1, 0, m1, 0)
	mustConnect(t, f, m0, 1, m1, 1)
	mustConnect(t, f, m1, 1, ctr, 0)

	ex := New[int]()
	if err := ex.Invoke(f, e0); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	want := map[string]struct {
		id   flow.NodeId
		port int
		val  int
	}{
		"e0.out":  {e0, 0, 42},
		"m0.min":  {m0, 0, 42},
		"m0.max":  {m0, 1, counterThreshold},
		"e1.out":  {e1, 0, 42},
		"m1.min":  {m1, 0, 42},
		"m1.max":  {m1, 1, counterThreshold},
		"ctr.out": {ctr, 0, counterThreshold},
	}
	for name, w := range want {
		if got := out(t, f, w.id, w.port); got != w.val {
			t.Errorf("%s = %d, want %d", name, got, w.val)
		}
	}
}

// TestTopoWithLoops_Masking checks that a push into an Inactive input
// never schedules the node it targets, even though the value is still
// reachable once the mask is lifted and the node is reached another way.
func TestTopoWithLoops_Masking(t *testing.T) {
	f := flow.New[int]()
	e0 := f.AddNode(&echoNode{})
	ctr := f.AddNode(&counterNode{})
	m0 := f.AddNode(&minMaxNode{})

	mustConnect(t, f, e0, 0, ctr, 0)
	mustConnect(t, f, e0, 0, m0, 0)
	mustConnect(t, f, ctr, 0, m0, 1)

	ex := New[int]()

	if err := f.MaskInputs(m0, []flow.InputState{flow.Inactive, flow.Inactive}); err != nil {
		t.Fatalf("MaskInputs: %v", err)
	}
	if err := ex.Invoke(f, e0); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if v, _ := f.OutputValOf(m0, 0); v != nil {
		t.Errorf("m0.min latched %d with both inputs masked", v.Get())
	}
	if v, _ := f.OutputValOf(m0, 1); v != nil {
		t.Errorf("m0.max latched %d with both inputs masked", v.Get())
	}

	if err := f.MaskInputs(m0, []flow.InputState{flow.Active, flow.Inactive}); err != nil {
		t.Fatalf("MaskInputs: %v", err)
	}
	if err := ex.Invoke(f, ctr); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if v, _ := f.OutputValOf(m0, 0); v != nil {
		t.Errorf("m0.min latched %d with in1 still masked", v.Get())
	}
	if v, _ := f.OutputValOf(m0, 1); v != nil {
		t.Errorf("m0.max latched %d with in1 still masked", v.Get())
	}

	if err := f.MaskInputs(m0, []flow.InputState{flow.Active, flow.Active}); err != nil {
		t.Fatalf("MaskInputs: %v", err)
	}
	if err := ex.Invoke(f, ctr); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := out(t, f, m0, 0); got != 42 {
		t.Errorf("m0.min = %d, want 42", got)
	}
	if got := out(t, f, m0, 1); got != 43 {
		t.Errorf("m0.max = %d, want 43", got)
	}
}

// TestTopoWithLoops_MinMaxFanout reproduces a six-node diamond/fanout
// wiring rooted at an unconnected MinMax node, exercising SuccNodesOfPorts
// across multiple outgoing edges per port.
func TestTopoWithLoops_MinMaxFanout(t *testing.T) {
	f := flow.New[int]()
	var nodes [6]flow.NodeId
	for i := range nodes {
		nodes[i] = f.AddNode(&minMaxNode{})
	}
	n0, n1, n2, n3, n4, n5 := nodes[0], nodes[1], nodes[2], nodes[3], nodes[4], nodes[5]

	mustConnect(t, f, n0, 0, n1, 0)
	mustConnect(t, f, n0, 0, n1, 1)
	mustConnect(t, f, n0, 1, n2, 0)
	mustConnect(t, f, n0, 1, n2, 1)
	mustConnect(t, f, n0, 1, n3, 0)
	mustConnect(t, f, n0, 0, n3, 1)
	mustConnect(t, f, n0, 0, n4, 1)
	mustConnect(t, f, n0, 1, n4, 0)
	mustConnect(t, f, n3, 0, n5, 0)
	mustConnect(t, f, n4, 1, n5, 1)

	ex := New[int]()
	if err := ex.Invoke(f, n0); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	type want struct{ min, max int }
	wants := map[flow.NodeId]want{
		n0: {minMaxLow, minMaxHigh},
		n1: {minMaxLow, minMaxLow},
		n2: {minMaxHigh, minMaxHigh},
		n3: {minMaxLow, minMaxHigh},
		n4: {minMaxLow, minMaxHigh},
		n5: {minMaxLow, minMaxHigh},
	}
	for id, w := range wants {
		if got := out(t, f, id, 0); got != w.min {
			t.Errorf("node %d min = %d, want %d", id, got, w.min)
		}
		if got := out(t, f, id, 1); got != w.max {
			t.Errorf("node %d max = %d, want %d", id, got, w.max)
		}
	}
}

func mustConnect(t *testing.T, f *flow.Flow[int], from flow.NodeId, fromPort int, to flow.NodeId, toPort int) {
	t.Helper()
	err := f.Connect(
		flow.PortAlias{Node: from, Dir: flow.Out, Index: fromPort},
		flow.PortAlias{Node: to, Dir: flow.In, Index: toPort},
	)
	if err != nil {
		t.Fatalf("Connect(%d.%d -> %d.%d): %v", from, fromPort, to, toPort, err)
	}
}
