package executor

import "errors"

// Sentinel errors TopoWithLoops reports when a configured limit trips.
var (
	// Timeout errors
	ErrInvocationTimeout = errors.New("executor: invocation exceeded MaxInvocationTime")
	ErrNodeUpdateTimeout = errors.New("executor: node update exceeded MaxNodeUpdateTime")

	// Runaway-loop errors
	ErrMaxSchedulingPasses     = errors.New("executor: exceeded MaxSchedulingPasses without draining the queue")
	ErrMaxNodeUpdatesPerInvoke = errors.New("executor: exceeded MaxNodeUpdatesPerInvoke")
)
