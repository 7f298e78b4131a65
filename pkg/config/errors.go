package config

import "errors"

var (
	ErrInvalidInvocationTime    = errors.New("config: MaxInvocationTime must be >= 0")
	ErrInvalidNodeUpdateTime    = errors.New("config: MaxNodeUpdateTime must be >= 0")
	ErrInvalidMaxSchedulingPass = errors.New("config: MaxSchedulingPasses must be >= 0")
	ErrInvalidMaxNodeUpdates    = errors.New("config: MaxNodeUpdatesPerInvoke must be >= 0")
	ErrInvalidMaxNodes          = errors.New("config: MaxNodes must be >= 0")
	ErrInvalidMaxEdges          = errors.New("config: MaxEdges must be >= 0")
)
