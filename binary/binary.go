// Package binary wraps a []byte-chunked flow.Reader into a byte-oriented
// reader with exact-length reads, a peek/unread cursor, and endian-aware
// numeric helpers, per §4.8. It is a consumer of the core package, not
// part of it: the core only needs to make this implementable.
package binary

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/mccutchen/flow"
)

// ErrUnreadTooMuch is returned by Reader.Unread when asked to rewind past
// what the most recent Read actually consumed.
var ErrUnreadTooMuch = errors.New("binary: unread exceeds last read")

// Reader adapts a chunked byte reader into one that reads exact lengths.
// It keeps every byte it has ever pulled from src in buf, so that Unread
// can always rewind — §4.8 does not bound how far back Unread may reach,
// only that it must not exceed the size of the last accepted read.
type Reader struct {
	src         flow.Reader[[]byte]
	buf         []byte
	pos         int
	lastReadLen int
	eof         bool
	eofErr      error
}

// NewReader wraps src (typically flow.NewByteReader or the output of
// flow.Concat over several) as a byte-oriented Reader.
func NewReader(src flow.Reader[[]byte]) *Reader {
	return &Reader{src: src}
}

// fill pulls chunks from src until buf holds at least pos+n bytes, or src
// ends/errors.
func (r *Reader) fill(n int) error {
	for !r.eof && len(r.buf)-r.pos < n {
		chunk, ok, err := r.src.Read()
		if err != nil {
			r.eof = true
			r.eofErr = err
			return err
		}
		if !ok {
			r.eof = true
			return nil
		}
		r.buf = append(r.buf, chunk...)
	}
	return nil
}

// Read returns exactly n bytes, or fewer only once the source is
// exhausted. A short read is only ever the final read of the stream.
func (r *Reader) Read(n int) ([]byte, error) {
	if err := r.fill(n); err != nil {
		return nil, err
	}

	avail := len(r.buf) - r.pos
	if avail > n {
		avail = n
	}

	out := make([]byte, avail)
	copy(out, r.buf[r.pos:r.pos+avail])
	r.pos += avail
	r.lastReadLen = avail
	return out, nil
}

// Peek is like Read but does not advance the cursor.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.fill(n); err != nil {
		return nil, err
	}
	avail := len(r.buf) - r.pos
	if avail > n {
		avail = n
	}
	out := make([]byte, avail)
	copy(out, r.buf[r.pos:r.pos+avail])
	return out, nil
}

// PeekAll pulls the remainder of src into the buffer and returns every
// byte not yet consumed, without advancing the cursor.
func (r *Reader) PeekAll() ([]byte, error) {
	for !r.eof {
		chunk, ok, err := r.src.Read()
		if err != nil {
			r.eof = true
			r.eofErr = err
			return nil, err
		}
		if !ok {
			r.eof = true
			break
		}
		r.buf = append(r.buf, chunk...)
	}
	out := make([]byte, len(r.buf)-r.pos)
	copy(out, r.buf[r.pos:])
	return out, nil
}

// Unread rewinds the cursor by n bytes, which must not exceed the length
// of the most recently accepted Read.
func (r *Reader) Unread(n int) error {
	if n > r.lastReadLen || n > r.pos {
		return ErrUnreadTooMuch
	}
	r.pos -= n
	r.lastReadLen -= n
	return nil
}

// Stop forwards to the underlying chunk reader.
func (r *Reader) Stop(reason flow.StopReason) error {
	return r.src.Stop(reason)
}

func (r *Reader) readExact(n int) ([]byte, error) {
	b, err := r.Read(n)
	if err != nil {
		return nil, err
	}
	if len(b) < n {
		return nil, errUnexpectedEOF
	}
	return b, nil
}

var errUnexpectedEOF = errors.New("binary: unexpected end of stream")

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Uint16BE() (uint16, error) {
	b, err := r.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) Uint16LE() (uint16, error) {
	b, err := r.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Int16BE() (int16, error) {
	v, err := r.Uint16BE()
	return int16(v), err
}

func (r *Reader) Int16LE() (int16, error) {
	v, err := r.Uint16LE()
	return int16(v), err
}

func (r *Reader) Uint32BE() (uint32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) Uint32LE() (uint32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Int32BE() (int32, error) {
	v, err := r.Uint32BE()
	return int32(v), err
}

func (r *Reader) Int32LE() (int32, error) {
	v, err := r.Uint32LE()
	return int32(v), err
}

func (r *Reader) Float32BE() (float32, error) {
	v, err := r.Uint32BE()
	return math.Float32frombits(v), err
}

func (r *Reader) Float32LE() (float32, error) {
	v, err := r.Uint32LE()
	return math.Float32frombits(v), err
}

func (r *Reader) Float64BE() (float64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) Float64LE() (float64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

const defaultBufSize = 16384

// Writer buffers up to bufSize bytes (default 16384) before flushing to
// sink, and provides the same endian-aware numeric helpers in reverse.
type Writer struct {
	sink    flow.Writer[[]byte]
	bufSize int
	buf     []byte
}

// WriterOption configures NewWriter.
type WriterOption func(*Writer)

// WithBufSize overrides the default flush threshold.
func WithBufSize(n int) WriterOption {
	return func(w *Writer) { w.bufSize = n }
}

func NewWriter(sink flow.Writer[[]byte], opts ...WriterOption) *Writer {
	w := &Writer{sink: sink, bufSize: defaultBufSize}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) Write(b []byte) error {
	w.buf = append(w.buf, b...)
	if len(w.buf) >= w.bufSize {
		return w.Flush()
	}
	return nil
}

func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	err := w.sink.Write(w.buf)
	w.buf = w.buf[:0]
	return err
}

func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.sink.Close()
}

func (w *Writer) Uint8(v uint8) error {
	return w.Write([]byte{v})
}

func (w *Writer) Uint16BE(v uint16) error {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return w.Write(b)
}

func (w *Writer) Uint16LE(v uint16) error {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return w.Write(b)
}

func (w *Writer) Uint32BE(v uint32) error {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return w.Write(b)
}

func (w *Writer) Uint32LE(v uint32) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return w.Write(b)
}

func (w *Writer) Float64BE(v float64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
	return w.Write(b)
}

func (w *Writer) Float64LE(v float64) error {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	return w.Write(b)
}
