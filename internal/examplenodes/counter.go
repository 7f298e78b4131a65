package examplenodes

import "github.com/dataflow-rt/flowcore/pkg/flow"

// Counter increments a numeric input by one and pushes the result as
// long as the input itself is still below Threshold; once the input
// reaches Threshold it pushes nothing. That silence is what lets a
// back-edge through a Counter converge: spec.md §8 scenario 3 relies on
// exactly this node, and on the counter saturating at Threshold itself
// (an input of 49 against a threshold of 50 still pushes 50). Grounded
// on the ctr fixture pkg/executor/executor_test.go validates
// TopoWithLoops against (and, transitively, on ctr::Ctr in the original
// Rust test suite).
type Counter struct {
	id        flow.NodeId
	Threshold float64
}

// NewCounter creates a Counter that stops pushing once its input has
// reached threshold.
func NewCounter(threshold float64) *Counter { return &Counter{Threshold: threshold} }

func (n *Counter) Init(id flow.NodeId) { n.id = id }
func (n *Counter) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{{Label: "in", Kind: flow.KindData}}
}
func (n *Counter) InitOutputs() []flow.NodeOutput[any] {
	return []flow.NodeOutput[any]{{Label: "out", Kind: flow.KindData}}
}
func (n *Counter) OnPlaced() {}
func (n *Counter) OnRemoved() {}
func (n *Counter) OnRebuilt() {}

func (n *Counter) OnUpdate(env *flow.InvocationEnv[any]) error {
	v, err := env.GetInp(0)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	cur := toFloat64(v.Get())
	if cur >= n.Threshold {
		return nil
	}
	env.SetOut(0, flow.NewValue[any](cur+1))
	return nil
}
