package examplenodes

import "github.com/dataflow-rt/flowcore/pkg/flow"

// MinMax has two inputs and two outputs (min, max); with both inputs
// absent it pushes its configured Low/High defaults. Present inputs are
// compared as float64 so the node works uniformly over whatever numeric
// kind a Flow[any] host carries. Grounded on the min_max fixture
// pkg/executor/executor_test.go validates TopoWithLoops against (and,
// transitively, on min_max::MinMax in the original Rust test suite).
type MinMax struct {
	id        flow.NodeId
	Low, High float64
}

// NewMinMax creates a MinMax with the given defaults.
func NewMinMax(low, high float64) *MinMax { return &MinMax{Low: low, High: high} }

func (n *MinMax) Init(id flow.NodeId) { n.id = id }
func (n *MinMax) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{
		{Label: "in0", Kind: flow.KindData},
		{Label: "in1", Kind: flow.KindData},
	}
}
func (n *MinMax) InitOutputs() []flow.NodeOutput[any] {
	return []flow.NodeOutput[any]{
		{Label: "min", Kind: flow.KindData},
		{Label: "max", Kind: flow.KindData},
	}
}
func (n *MinMax) OnPlaced() {}
func (n *MinMax) OnRemoved() {}
func (n *MinMax) OnRebuilt() {}

func (n *MinMax) OnUpdate(env *flow.InvocationEnv[any]) error {
	a, err := env.GetInp(0)
	if err != nil {
		return err
	}
	b, err := env.GetInp(1)
	if err != nil {
		return err
	}
	if a == nil && b == nil {
		env.SetOut(0, flow.NewValue[any](n.Low))
		env.SetOut(1, flow.NewValue[any](n.High))
		return nil
	}

	lo, hi := n.Low, n.High
	switch {
	case a != nil && b != nil:
		lo, hi = toFloat64(a.Get()), toFloat64(b.Get())
		if lo > hi {
			lo, hi = hi, lo
		}
	case a != nil:
		lo, hi = toFloat64(a.Get()), toFloat64(a.Get())
	case b != nil:
		lo, hi = toFloat64(b.Get()), toFloat64(b.Get())
	}
	env.SetOut(0, flow.NewValue[any](lo))
	env.SetOut(1, flow.NewValue[any](hi))
	return nil
}
