// Command flowdemo is the in-repo stand-in for the "host application"
// this runtime is meant to be embedded in. It builds a handful of flows
// out of internal/examplenodes, drives each with a TopoWithLoops
// executor wired to structured logging and OpenTelemetry metrics, and
// prints the latched outputs.
//
// Usage:
//
//	flowdemo [flags]
//
// Flags:
//
//	-scenario string
//	    Which scenario to run: echo-chain, minmax-fanout, terminating-loop,
//	    masking, or all (default "all")
//	-log-level string
//	    Minimum log level: debug, info, warn, error (default "info")
//	-pretty
//	    Render logs as text instead of JSON
//
// Example:
//
//	# Run every scenario with default logging
//	flowdemo
//
//	# Run just the terminating-loop scenario with verbose, readable logs
//	flowdemo -scenario terminating-loop -log-level debug -pretty
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dataflow-rt/flowcore/internal/examplenodes"
	"github.com/dataflow-rt/flowcore/pkg/config"
	"github.com/dataflow-rt/flowcore/pkg/executor"
	"github.com/dataflow-rt/flowcore/pkg/flow"
	"github.com/dataflow-rt/flowcore/pkg/logging"
	"github.com/dataflow-rt/flowcore/pkg/observer"
	"github.com/dataflow-rt/flowcore/pkg/telemetry"
)

// scenario bundles a built flow with the seed to invoke it from and a
// display label for each node worth printing afterward.
type scenario struct {
	flow   *flow.Flow[any]
	seed   flow.NodeId
	labels map[flow.NodeId]string
}

func main() {
	scenarioFlag := flag.String("scenario", "all", "Which scenario to run: echo-chain, minmax-fanout, terminating-loop, masking, or all")
	logLevel := flag.String("log-level", "info", "Minimum log level: debug, info, warn, error")
	pretty := flag.Bool("pretty", false, "Render logs as text instead of JSON")
	flag.Parse()

	logger := logging.New(logging.Config{Level: *logLevel, Pretty: *pretty})

	ctx := context.Background()
	telemetryProvider, err := telemetry.NewProvider(ctx, telemetry.DefaultConfig())
	if err != nil {
		logger.Fatalf("init telemetry: %v", err)
	}
	defer func() {
		if err := telemetryProvider.Shutdown(ctx); err != nil {
			logger.Warnf("shutdown telemetry: %v", err)
		}
	}()

	manager := observer.NewManager()
	manager.Register(observer.NewLoggingObserver(logger))

	builders := map[string]func() scenario{
		"echo-chain":       buildEchoChain,
		"minmax-fanout":    buildMinMaxFanout,
		"terminating-loop": buildTerminatingLoop,
		"masking":          buildMasking,
	}
	order := []string{"echo-chain", "minmax-fanout", "terminating-loop", "masking"}

	names := order
	if *scenarioFlag != "all" {
		if _, ok := builders[*scenarioFlag]; !ok {
			fmt.Fprintf(os.Stderr, "unknown scenario %q\n", *scenarioFlag)
			os.Exit(1)
		}
		names = []string{*scenarioFlag}
	}

	limits := config.Default()
	for _, name := range names {
		run(ctx, name, builders[name](), limits, manager, telemetryProvider)
	}
}

// run invokes s.flow from s.seed with hooks wired to both the observer
// manager and telemetry, then prints every labeled node's latched
// output.
func run(ctx context.Context, name string, s scenario, limits *config.Config, manager *observer.Manager, telemetryProvider *telemetry.Provider) {
	flowID := uuid.NewString()
	fmt.Printf("=== %s (flow %s) ===\n", name, flowID)

	hooks := executor.Hooks{
		OnPass: func(ctx context.Context, passLen int) {
			manager.Notify(ctx, observer.Event{Type: observer.EventSchedulingPass, FlowID: flowID, PassSize: passLen})
			telemetryProvider.RecordSchedulingPass(ctx, passLen)
		},
		OnNodeUpdate: func(ctx context.Context, id flow.NodeId, pushedPorts int) {
			manager.Notify(ctx, observer.Event{Type: observer.EventNodeSuccess, Status: observer.StatusSuccess, FlowID: flowID, HasNode: true, NodeID: id})
			telemetryProvider.RecordNodeUpdate(ctx, strconv.FormatUint(uint64(id), 10), 0, pushedPorts)
		},
	}

	ex := executor.New[any]().WithHooks(hooks).WithLimits(limits)

	manager.Notify(ctx, observer.Event{Type: observer.EventInvocationStart, Status: observer.StatusStarted, FlowID: flowID})
	start := time.Now()
	err := ex.Invoke(s.flow, s.seed)
	telemetryProvider.RecordInvocation(ctx, flowID, time.Since(start), err == nil)
	status := observer.StatusSuccess
	if err != nil {
		status = observer.StatusFailure
	}
	manager.Notify(ctx, observer.Event{Type: observer.EventInvocationEnd, Status: status, FlowID: flowID, Error: err})

	if err != nil {
		fmt.Printf("  invoke failed: %v\n", err)
		return
	}
	for id, label := range s.labels {
		v, _ := s.flow.OutputValOf(id, 0)
		if v == nil {
			fmt.Printf("  %s = <empty>\n", label)
			continue
		}
		fmt.Printf("  %s = %v\n", label, v.Get())
	}
}

// buildEchoChain reproduces spec.md §8 scenario 1: three echo nodes
// chained output-to-input.
func buildEchoChain() scenario {
	f := flow.New[any]()
	e0 := f.AddNode(examplenodes.NewEcho(42))
	e1 := f.AddNode(examplenodes.NewEcho(42))
	e2 := f.AddNode(examplenodes.NewEcho(42))
	connect(f, e0, 0, e1, 0)
	connect(f, e1, 0, e2, 0)
	return scenario{f, e0, map[flow.NodeId]string{e0: "e0.out", e1: "e1.out", e2: "e2.out"}}
}

// buildMinMaxFanout reproduces spec.md §8 scenario 2: six MinMax nodes
// wired in a fanout-and-diamond shape rooted at an unconnected node.
func buildMinMaxFanout() scenario {
	f := flow.New[any]()
	var nodes [6]flow.NodeId
	for i := range nodes {
		nodes[i] = f.AddNode(examplenodes.NewMinMax(5, 100))
	}
	n0, n1, n2, n3, n4, n5 := nodes[0], nodes[1], nodes[2], nodes[3], nodes[4], nodes[5]

	connect(f, n0, 0, n1, 0)
	connect(f, n0, 0, n1, 1)
	connect(f, n0, 1, n2, 0)
	connect(f, n0, 1, n2, 1)
	connect(f, n0, 1, n3, 0)
	connect(f, n0, 0, n3, 1)
	connect(f, n0, 0, n4, 1)
	connect(f, n0, 1, n4, 0)
	connect(f, n3, 0, n5, 0)
	connect(f, n4, 1, n5, 1)

	labels := make(map[flow.NodeId]string, len(nodes))
	for i, id := range nodes {
		labels[id] = fmt.Sprintf("n%d.min", i)
	}
	return scenario{f, n0, labels}
}

// buildTerminatingLoop reproduces spec.md §8 scenario 3: an echo, a
// counter saturating at 50, and two MinMax nodes wired through a
// back-edge from the second MinMax's max output to the counter.
func buildTerminatingLoop() scenario {
	f := flow.New[any]()
	e0 := f.AddNode(examplenodes.NewEcho(42))
	ctr := f.AddNode(examplenodes.NewCounter(50))
	m0 := f.AddNode(examplenodes.NewMinMax(5, 100))
	e1 := f.AddNode(examplenodes.NewEcho(42))
	m1 := f.AddNode(examplenodes.NewMinMax(5, 100))

	connect(f, e0, 0, m0, 0)
	connect(f, ctr, 0, m0, 1)
	connect(f, m0, 0, e1, 0)
	connect(f, e1, 0, m1, 0)
	connect(f, m0, 1, m1, 1)
	connect(f, m1, 1, ctr, 0)

	labels := map[flow.NodeId]string{
		e0: "e0.out", ctr: "ctr.out", m0: "m0.min", e1: "e1.out", m1: "m1.min",
	}
	return scenario{f, e0, labels}
}

// buildMasking reproduces spec.md §8 scenario 4: masking m0's inputs
// suppresses scheduling through them without breaking the connection.
func buildMasking() scenario {
	f := flow.New[any]()
	e0 := f.AddNode(examplenodes.NewEcho(42))
	ctr := f.AddNode(examplenodes.NewCounter(50))
	m0 := f.AddNode(examplenodes.NewMinMax(5, 100))

	connect(f, e0, 0, ctr, 0)
	connect(f, e0, 0, m0, 0)
	connect(f, ctr, 0, m0, 1)

	if err := f.MaskInputs(m0, []flow.InputState{flow.Inactive, flow.Inactive}); err != nil {
		panic(err)
	}
	return scenario{f, e0, map[flow.NodeId]string{e0: "e0.out", ctr: "ctr.out", m0: "m0.min"}}
}

func connect(f *flow.Flow[any], from flow.NodeId, fromPort int, to flow.NodeId, toPort int) {
	err := f.Connect(
		flow.PortAlias{Node: from, Dir: flow.Out, Index: fromPort},
		flow.PortAlias{Node: to, Dir: flow.In, Index: toPort},
	)
	if err != nil {
		panic(fmt.Sprintf("connect %d.%d -> %d.%d: %v", from, fromPort, to, toPort, err))
	}
}
