package stop

// SequentialHandler combines an ordered list of child handlers. The
// aggregate decision is the logical OR of the child decisions. Every child
// observes every check call -- children keep their own history, so skipping
// a child after another has already voted to stop would desynchronize it
// from the true epoch sequence.
type SequentialHandler struct {
	handlers []Handler
}

// NewSequentialHandler creates a SequentialHandler over the given children.
// With no children the handler never stops. Children may themselves be
// SequentialHandlers.
func NewSequentialHandler(handlers ...Handler) *SequentialHandler {
	return &SequentialHandler{handlers: handlers}
}

// Check fans the call out to every child in order and ORs the results.
// A child error aborts the fan-out and is returned unchanged.
func (sh *SequentialHandler) Check(epoch int, values Measurement) (bool, error) {
	stop := false
	for _, h := range sh.handlers {
		s, err := h.Check(epoch, values)
		if err != nil {
			return false, err
		}
		stop = stop || s
	}
	return stop, nil
}
