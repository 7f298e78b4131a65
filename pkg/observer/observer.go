package observer

import (
	"context"
	"time"

	"github.com/dataflow-rt/flowcore/pkg/flow"
)

// EventType identifies the stage of execution an Event reports.
type EventType string

const (
	EventInvocationStart EventType = "invocation_start"
	EventInvocationEnd   EventType = "invocation_end"

	EventSchedulingPass EventType = "scheduling_pass"

	EventNodeStart   EventType = "node_start"
	EventNodeSuccess EventType = "node_success"
	EventNodeFailure EventType = "node_failure"
)

// ExecutionStatus is the outcome an Event reports, for events that have one.
type ExecutionStatus string

const (
	StatusStarted ExecutionStatus = "started"
	StatusSuccess ExecutionStatus = "success"
	StatusFailure ExecutionStatus = "failure"
)

// Event carries the metadata for a single execution event.
type Event struct {
	Type      EventType       `json:"type"`
	Status    ExecutionStatus `json:"status,omitempty"`
	Timestamp time.Time       `json:"timestamp"`

	// FlowID is a host-supplied label for the Flow being driven; the
	// runtime itself assigns Flows no identity.
	FlowID string `json:"flow_id,omitempty"`

	// HasNode reports whether NodeID is meaningful for this event — a
	// node-level event always sets it, a scheduling-pass or invocation
	// event never does.
	HasNode bool        `json:"-"`
	NodeID  flow.NodeId `json:"node_id,omitempty"`

	// PassSize is set on EventSchedulingPass: the number of nodes in the
	// topological order just computed for that pass.
	PassSize int `json:"pass_size,omitempty"`

	ElapsedTime time.Duration `json:"elapsed_time,omitempty"`
	Error       error         `json:"error,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Observer receives notifications about stages of flow execution.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
