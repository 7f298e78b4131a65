package executor

import (
	"context"
	"time"

	"github.com/dataflow-rt/flowcore/pkg/config"
	"github.com/dataflow-rt/flowcore/pkg/flow"
)

// Hooks lets a caller observe scheduling activity without the executor
// importing any concrete logging or metrics package; a host can wire
// pkg/observer and pkg/telemetry into these callbacks, as cmd/flowdemo
// does. The zero value (all fields nil) disables every hook.
type Hooks struct {
	// OnPass fires once per outer-loop iteration with the size of the
	// topological order just computed for that pass.
	OnPass func(ctx context.Context, passLen int)
	// OnNodeUpdate fires after a node has been updated and its successors
	// enqueued, reporting how many output ports it pushed to.
	OnNodeUpdate func(ctx context.Context, id flow.NodeId, pushedPorts int)
}

// TopoWithLoops is the back-edge-tolerant scheduler: it drives a Flow from
// a seed node by repeatedly computing a topological order over whatever is
// currently pending and draining it, picking up anything a back-edge
// queued for the next pass.
type TopoWithLoops[T any] struct {
	hooks  Hooks
	limits *config.Config
}

// New creates a TopoWithLoops with no hooks installed and no limits
// enforced (equivalent to config.Unbounded()).
func New[T any]() *TopoWithLoops[T] {
	return &TopoWithLoops[T]{limits: config.Unbounded()}
}

// WithHooks returns e with hooks installed, for chaining off New.
func (e *TopoWithLoops[T]) WithHooks(hooks Hooks) *TopoWithLoops[T] {
	e.hooks = hooks
	return e
}

// WithLimits returns e with limits installed, for chaining off New. A nil
// limits disables every bound, same as config.Unbounded().
func (e *TopoWithLoops[T]) WithLimits(limits *config.Config) *TopoWithLoops[T] {
	if limits == nil {
		limits = config.Unbounded()
	}
	e.limits = limits
	return e
}

// Invoke drives f starting from seed until no queued node remains. It is
// equivalent to InvokeContext(context.Background(), f, seed).
func (e *TopoWithLoops[T]) Invoke(f *flow.Flow[T], seed flow.NodeId) error {
	return e.InvokeContext(context.Background(), f, seed)
}

// InvokeContext is Invoke with a context threaded through to any installed
// Hooks. The context is never otherwise consulted: a running update is not
// cancellable mid-pass, matching the node contract's synchronous OnUpdate.
func (e *TopoWithLoops[T]) InvokeContext(ctx context.Context, f *flow.Flow[T], seed flow.NodeId) error {
	q := newOrderedMaskedQueue()
	q.enqueue(seed)

	start := time.Now()
	passes := 0
	updates := 0

	for !q.isEmpty() {
		if e.limits.MaxInvocationTime > 0 && time.Since(start) > e.limits.MaxInvocationTime {
			return ErrInvocationTimeout
		}
		if e.limits.MaxSchedulingPasses > 0 && passes >= e.limits.MaxSchedulingPasses {
			return ErrMaxSchedulingPasses
		}
		passes++

		order, err := topo(q.snapshotQueued(), f)
		if err != nil {
			return err
		}
		q.setMask(order)
		if e.hooks.OnPass != nil {
			e.hooks.OnPass(ctx, len(order))
		}

		for {
			n, ok := q.dequeue()
			if !ok {
				break
			}
			if e.limits.MaxNodeUpdatesPerInvoke > 0 && updates >= e.limits.MaxNodeUpdatesPerInvoke {
				return ErrMaxNodeUpdatesPerInvoke
			}
			updates++
			if err := e.updateOne(ctx, f, n, q); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateOne fetches n's current inputs, runs its update, latches whatever
// it pushed, and enqueues the successors reached through active inputs.
func (e *TopoWithLoops[T]) updateOne(ctx context.Context, f *flow.Flow[T], n flow.NodeId, q *orderedMaskedQueue) error {
	inputs, err := f.InputValuesOf(n)
	if err != nil {
		return err
	}
	env := flow.NewInvocationEnv(inputs)

	updateStart := time.Now()
	err = f.UpdateNode(n, env)
	if e.limits.MaxNodeUpdateTime > 0 && time.Since(updateStart) > e.limits.MaxNodeUpdateTime {
		return ErrNodeUpdateTimeout
	}
	if err != nil {
		return err
	}

	updated := env.Updates()
	ports := make([]flow.PortAlias, len(updated))
	for i, p := range updated {
		ports[i] = flow.PortAlias{Node: n, Dir: flow.Out, Index: p}
	}
	succ, err := f.SuccNodesOfPorts(ports, true)
	if err != nil {
		return err
	}
	for _, s := range succ {
		q.enqueue(s)
	}

	for _, p := range updated {
		if err := f.SetOutputValOf(n, p, env.ValueAt(p)); err != nil {
			return err
		}
	}

	if e.hooks.OnNodeUpdate != nil {
		e.hooks.OnNodeUpdate(ctx, n, len(updated))
	}
	return nil
}
