package examplenodes

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dataflow-rt/flowcore/pkg/flow"
)

// SchemaGate validates its input against a JSON Schema and only pushes
// the value through when it validates; a failed validation is reported as
// a NodeError (so Invoke fails with flow.CodeNodeError and whatever sits
// downstream never gets scheduled) rather than silently swallowed.
// Grounded on pkg/executor.SchemaValidatorExecutor.Execute, trimmed to
// the single-input/single-output shape this runtime's node contract
// needs and to strict-only behavior (the teacher's lenient mode, which
// returns validation errors as data rather than failing, has no
// referent for a node whose only channel is pass-or-fail).
type SchemaGate struct {
	id     flow.NodeId
	Schema map[string]any

	loader gojsonschema.JSONLoader
}

// NewSchemaGate creates a SchemaGate validating against schema.
func NewSchemaGate(schema map[string]any) *SchemaGate {
	return &SchemaGate{Schema: schema}
}

func (n *SchemaGate) Init(id flow.NodeId) { n.id = id }
func (n *SchemaGate) InitInputs() []flow.NodeInput {
	return []flow.NodeInput{{Label: "in", Kind: flow.KindData}}
}
func (n *SchemaGate) InitOutputs() []flow.NodeOutput[any] {
	return []flow.NodeOutput[any]{{Label: "out", Kind: flow.KindData}}
}
func (n *SchemaGate) OnPlaced() {}
func (n *SchemaGate) OnRemoved() {}
func (n *SchemaGate) OnRebuilt() {}

func (n *SchemaGate) OnUpdate(env *flow.InvocationEnv[any]) error {
	v, err := env.GetInp(0)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}

	if n.loader == nil {
		schemaBytes, err := json.Marshal(n.Schema)
		if err != nil {
			return fmt.Errorf("examplenodes: marshal schema: %w", err)
		}
		n.loader = gojsonschema.NewBytesLoader(schemaBytes)
	}

	inputBytes, err := json.Marshal(v.Get())
	if err != nil {
		return fmt.Errorf("examplenodes: marshal input: %w", err)
	}
	result, err := gojsonschema.Validate(n.loader, gojsonschema.NewBytesLoader(inputBytes))
	if err != nil {
		return fmt.Errorf("examplenodes: validate: %w", err)
	}
	if !result.Valid() {
		descs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			descs = append(descs, e.Description())
		}
		return fmt.Errorf("examplenodes: schema validation failed: %v", descs)
	}

	env.SetOut(0, v)
	return nil
}
