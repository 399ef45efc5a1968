package flow

// Recorder is an optional observability hook that devices and combinators
// call with internal state changes. flow itself never logs; a Recorder is
// the only way to see queue depth, buffer occupancy, or drop counts from
// the outside. The zero value of any type that implements Recorder is
// expected to be safe for concurrent use, since devices call it while
// holding their own internal lock.
type Recorder interface {
	// ObserveQueueDepth reports the current number of buffered values in a
	// Queue, after a Put or Write.
	ObserveQueueDepth(depth int)

	// ObserveBufferLen reports the current number of buffered values in a
	// Buffer combinator.
	ObserveBufferLen(name string, length int)

	// IncDropped reports that a lossy operation (Queue.Put, under the name
	// "queue") discarded a value instead of enqueueing it.
	IncDropped(name string)
}

// noopRecorder is the default Recorder: every device falls back to it so
// that a bare flow.Reader chain pays nothing for observability it never
// asked for.
type noopRecorder struct{}

func (noopRecorder) ObserveQueueDepth(int)        {}
func (noopRecorder) ObserveBufferLen(string, int) {}
func (noopRecorder) IncDropped(string)            {}
