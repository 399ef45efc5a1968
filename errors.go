package flow

// StopError is a Writer's way of asking Pipe to treat a write failure as a
// graceful early stop instead of a hard error, per §4.6 and §9's
// "exception-for-control-flow" redesign note: a dedicated result variant
// instead of throwing a sentinel exception type.
type StopError struct {
	Reason StopReason
}

func (e *StopError) Error() string {
	return "flow: stop requested: " + e.Reason.String()
}

func asStopError(err error) (*StopError, bool) {
	se, ok := err.(*StopError)
	return se, ok
}
