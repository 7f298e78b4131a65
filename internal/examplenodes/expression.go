package examplenodes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dataflow-rt/flowcore/pkg/flow"
)

// Expression evaluates an expr-lang/expr program against its single input
// (exposed to the expression as the variable "input") and pushes the
// result. The compiled program is cached after its first run, same as
// ExprEngine's programCache. Grounded on
// pkg/expression.ExprEngine.EvaluateValue, trimmed to the single variable
// this runtime's node contract needs.
type Expression struct {
	id      flow.NodeId
	Program string

	compiled *vm.Program
}

// NewExpression creates an Expression node evaluating program.
func NewExpression(program string) *Expression {
	return &Expression{Program: program}
}

func (n *Expression) Init(id flow.NodeId) { n.id = id }
func (n *Expression) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{{Label: "in", Kind: flow.KindData}}
}
func (n *Expression) InitOutputs() []flow.NodeOutput[any] {
	return []flow.NodeOutput[any]{{Label: "out", Kind: flow.KindData}}
}
func (n *Expression) OnPlaced() {}
func (n *Expression) OnRemoved() {}
func (n *Expression) OnRebuilt() {}

func (n *Expression) OnUpdate(env *flow.InvocationEnv[any]) error {
	v, err := env.GetInp(0)
	if err != nil {
		return err
	}
	var input any
	if v != nil {
		input = v.Get()
	}

	if n.compiled == nil {
		program, err := expr.Compile(n.Program, expr.Env(map[string]any{"input": input}))
		if err != nil {
			return fmt.Errorf("examplenodes: compile expression %q: %w", n.Program, err)
		}
		n.compiled = program
	}

	out, err := expr.Run(n.compiled, map[string]any{"input": input})
	if err != nil {
		return fmt.Errorf("examplenodes: run expression %q: %w", n.Program, err)
	}
	env.SetOut(0, flow.NewValue[any](out))
	return nil
}
