// Package executor implements TopoWithLoops, the scheduler that drives a
// flow.Flow from a seed node.
//
// # Algorithm
//
// TopoWithLoops maintains an OrderedMaskedQueue of pending node ids. It
// runs two nested loops: the outer loop recomputes a topological order
// (ignoring back-edges) over whatever is currently queued and installs it
// as the queue's mask; the inner loop drains the queue in that order,
// updating each dequeued node, enqueueing any successor that received a
// push through an active input, and latching the node's pushed outputs
// onto the Flow.
//
// Draining the inner loop to empty before recomputing the mask is what
// gives update order a topological guarantee on acyclic regions while
// still making progress across a back-edge. Every dequeue scans the mask
// from its start, so a node that a back-edge re-enqueues during a pass is
// updated again within that same pass when it is part of the mask; only a
// queued node missing from the mask waits for the next outer-loop pass.
// On an acyclic graph each node is therefore updated at most once per
// pass; around a cycle a node may be updated several times in one pass.
//
// Termination on a cyclic graph is the node author's responsibility:
// TopoWithLoops keeps running exactly as long as some node's update keeps
// pushing output through an active input.
package executor
