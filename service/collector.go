package service

// Collector receives per-operation outcome signals for metrics.
type Collector interface {
	Operation(op string, err error)
}

// NoOpCollector implementation
type NoOpCollector struct{}

func (NoOpCollector) Operation(string, error) {}
