package stop

// Handler decides whether iterative training should be stopped early.
// Implementations may keep per-instance mutable state (a check history);
// an instance is owned by a single training loop and must not be shared
// across concurrent callers.
type Handler interface {
	// Check evaluates the measured values for the given epoch and returns
	// true if training should stop. Multiple calls per epoch are allowed,
	// each with any subset of the recognized metrics.
	Check(epoch int, values Measurement) (bool, error)
}

// NoopHandler never stops. It is a placeholder policy for callers that want
// early stopping disabled without special-casing the training loop.
type NoopHandler struct{}

func (NoopHandler) Check(_ int, _ Measurement) (bool, error) {
	return false, nil
}
