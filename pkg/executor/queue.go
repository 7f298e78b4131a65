package executor

import "github.com/dataflow-rt/flowcore/pkg/flow"

// orderedMaskedQueue holds a set of pending node ids (queued) re-ordered
// for dequeue by a separately supplied mask. Duplicates enqueued more
// than once are silently absorbed by the underlying set. Enqueues issued
// after setMask take effect immediately: dequeue always walks the current
// mask against the current queued set.
type orderedMaskedQueue struct {
	mask   []flow.NodeId
	queued map[flow.NodeId]struct{}
}

func newOrderedMaskedQueue() *orderedMaskedQueue {
	return &orderedMaskedQueue{queued: make(map[flow.NodeId]struct{})}
}

func (q *orderedMaskedQueue) enqueue(n flow.NodeId) {
	q.queued[n] = struct{}{}
}

// dequeue returns the first id in mask that is still queued, removing it
// from the queued set, or false if no such id exists.
func (q *orderedMaskedQueue) dequeue() (flow.NodeId, bool) {
	for _, n := range q.mask {
		if _, ok := q.queued[n]; ok {
			delete(q.queued, n)
			return n, true
		}
	}
	return 0, false
}

func (q *orderedMaskedQueue) isEmpty() bool {
	return len(q.queued) == 0
}

func (q *orderedMaskedQueue) setMask(mask []flow.NodeId) {
	q.mask = mask
}

// snapshotQueued returns a copy of the ids currently owing an update, for
// feeding into topo without exposing the live set.
func (q *orderedMaskedQueue) snapshotQueued() map[flow.NodeId]struct{} {
	cp := make(map[flow.NodeId]struct{}, len(q.queued))
	for n := range q.queued {
		cp[n] = struct{}{}
	}
	return cp
}
