// Package config centralizes the runtime limits a host may want to place
// on flow execution: how long an invocation or a single node update may
// run and how many passes or node updates one invocation may perform
// before the executor gives up and reports an error instead of spinning
// forever, plus graph-size bounds (MaxNodes, MaxEdges) that the executor
// does not check itself.
package config
