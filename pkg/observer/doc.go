// Package observer implements the Observer pattern for flow execution
// monitoring, letting a host track invocation and node-update activity
// without the scheduler depending on any particular logging or metrics
// backend.
package observer
