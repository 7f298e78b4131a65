// Package examplenodes implements a handful of flow.Node[any] capable of
// exercising the flow/executor core end to end: a pass-through echo, a
// min/max combiner, a threshold counter for back-edge termination, and two
// nodes that lean on third-party libraries for real work (expression
// evaluation and JSON Schema validation). None of this is part of the
// core; a host embedding pkg/flow and pkg/executor supplies its own node
// types the same way.
package examplenodes
