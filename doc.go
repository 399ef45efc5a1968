// Package flow provides a pull-based streaming pipeline: composable readers
// and writers that transport, transform, fan-out, fan-in, and parallelize
// streams of typed values, with deterministic resource release on early
// termination.
//
// # Readers and writers
//
// A [Reader] is pulled: its consumer calls Read repeatedly until it returns
// ok=false (end of stream) or a non-nil error. A [Writer] is pushed to: its
// producer calls Write for each value and Close to signal end. Both sides
// expose Stop, which asks the other end to release any held resources.
//
// Nothing is pulled until a sink calls Read. Combinators such as [Map] and
// [Filter] are plain wrappers around an upstream Reader and do not start any
// goroutine of their own; they synchronously forward the caller's Read call
// upstream and transform the result in place. Combinators that coordinate
// with work outside the caller's Read use different primitives: [Transform]
// and [FromSeq2] hand values over through a one-slot handshake
// (internal/rendezvous); [Buffer], [Dup], [Fork] and [Queue] guard shared
// state with a mutex and condition variable; [Parallel], [Dequeue] and
// [Join] use goroutines and channels.
//
// # Stop reasons
//
// Termination propagates through a [StopReason]: [None] is advisory and
// does not affect sibling branches of a fan-out; [Silent]() is a collective,
// error-free shutdown; [Err] is a collective abort that every sibling
// surfaces on its next Read. See [Dup] and [Fork] for where this matters.
//
// # Invariants
//
//   - At most one Read may be in flight on a given Reader at a time; callers
//     must serialize their own pulls.
//   - Once a Reader returns ok=false, every subsequent Read also returns
//     ok=false (end-stickiness).
//   - Stop may be called any number of times; only the first call has an
//     effect (stop-idempotence).
//   - Reaching end through normal reads releases resources exactly as if
//     Stop(None) had been called.
//
// # Error handling
//
// Stream errors are always values, and flow is never silent about them: an
// upstream failure surfaces on the reader's next Read and is never
// swallowed by an intermediate stage. Only misuse at construction panics
// (a non-positive [NewQueue] capacity, an unsupported [Predicate] type). flow itself does no logging; callers
// who want visibility into internal device state (queue depth, buffer
// occupancy) can supply a Recorder, which defaults to a no-op. See
// metrics.go.
package flow
