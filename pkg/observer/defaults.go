package observer

import (
	"context"
	"fmt"

	"github.com/dataflow-rt/flowcore/pkg/logging"
)

// NoOpObserver ignores every event.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}

// LoggingObserver renders events through a *logging.Logger, at a level
// chosen by the event's type and status.
type LoggingObserver struct {
	logger *logging.Logger
}

// NewLoggingObserver wraps logger in an Observer.
func NewLoggingObserver(logger *logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

func (o *LoggingObserver) OnEvent(ctx context.Context, event Event) {
	l := o.logger
	if event.FlowID != "" {
		l = l.WithField("flow_id", event.FlowID)
	}
	if event.HasNode {
		l = l.WithNodeID(event.NodeID)
	}
	if event.Error != nil {
		l = l.WithError(event.Error)
	}

	msg := fmt.Sprintf("%s %s", event.Type, event.Status)
	switch event.Type {
	case EventInvocationEnd:
		if event.Error != nil {
			l.Warn(msg)
		} else {
			l.Info(msg)
		}
	case EventNodeFailure:
		l.Warn(msg)
	case EventSchedulingPass:
		l.WithField("pass_size", event.PassSize).Debug(msg)
	default:
		l.Debug(msg)
	}
}

// Manager fans an event out to every registered Observer, each in its own
// goroutine so a slow or panicking observer never blocks or derails
// scheduling.
type Manager struct {
	observers []Observer
}

// NewManager creates an observer manager with no observers registered.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds observer to the manager.
func (m *Manager) Register(o Observer) {
	if o != nil {
		m.observers = append(m.observers, o)
	}
}

// HasObservers reports whether any observer is registered.
func (m *Manager) HasObservers() bool {
	return len(m.observers) > 0
}

// Notify delivers event to every registered observer asynchronously,
// recovering any panic raised from within an observer.
func (m *Manager) Notify(ctx context.Context, event Event) {
	for _, o := range m.observers {
		obs := o
		go func() {
			defer func() { recover() }()
			obs.OnEvent(ctx, event)
		}()
	}
}
