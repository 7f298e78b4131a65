package examplenodes

import "github.com/dataflow-rt/flowcore/pkg/flow"

// Echo is a single-input, single-output node that passes its input
// through unchanged, or pushes Default when its input has never fired.
// Grounded on the echo fixture pkg/executor/executor_test.go validates
// TopoWithLoops against (and, transitively, on simple_echo::SimpleEcho in
// the original Rust test suite).
type Echo struct {
	id      flow.NodeId
	Default any
}

// NewEcho creates an Echo that pushes def when its input is absent.
func NewEcho(def any) *Echo { return &Echo{Default: def} }

func (n *Echo) Init(id flow.NodeId) { n.id = id }
func (n *Echo) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{{Label: "in", Kind: flow.KindData}}
}
func (n *Echo) InitOutputs() []flow.NodeOutput[any] {
	return []flow.NodeOutput[any]{{Label: "out", Kind: flow.KindData}}
}
func (n *Echo) OnPlaced() {}
func (n *Echo) OnRemoved() {}
func (n *Echo) OnRebuilt() {}

func (n *Echo) OnUpdate(env *flow.InvocationEnv[any]) error {
	v, err := env.GetInp(0)
	if err != nil {
		return err
	}
	if v == nil {
		env.SetOut(0, flow.NewValue[any](n.Default))
		return nil
	}
	env.SetOut(0, v)
	return nil
}
