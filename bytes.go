package flow

import (
	"strings"
	"sync"
)

const defaultChunkSize = 1024

// ChunkReaderOption configures NewByteReader / NewStringReader.
type ChunkReaderOption func(*chunkReaderConfig)

type chunkReaderConfig struct {
	size     int
	sizeFunc func() int
}

// WithChunkSize sets a fixed chunk size (default 1024), matching §4.7.
func WithChunkSize(n int) ChunkReaderOption {
	return func(c *chunkReaderConfig) {
		c.size = n
		c.sizeFunc = nil
	}
}

// WithChunkSizeFunc sets a closure called before every chunk to pick its
// size, matching §4.7's "chunkSize may be a closure for randomized sizes."
func WithChunkSizeFunc(f func() int) ChunkReaderOption {
	return func(c *chunkReaderConfig) {
		c.sizeFunc = f
	}
}

// NewByteReader slices data into chunks of []byte, in order, matching
// §4.7's buffer reader device.
func NewByteReader(data []byte, opts ...ChunkReaderOption) Reader[[]byte] {
	cfg := chunkReaderConfig{size: defaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	var mu sync.Mutex
	pos := 0

	return NewReader(func() ([]byte, bool, error) {
		mu.Lock()
		defer mu.Unlock()

		if pos >= len(buf) {
			return nil, false, nil
		}

		n := cfg.size
		if cfg.sizeFunc != nil {
			n = cfg.sizeFunc()
		}
		if n <= 0 {
			n = defaultChunkSize
		}

		end := pos + n
		if end > len(buf) {
			end = len(buf)
		}

		chunk := make([]byte, end-pos)
		copy(chunk, buf[pos:end])
		pos = end
		return chunk, true, nil
	}, nil)
}

// NewStringReader slices s into chunks of string, in order, matching
// §4.7's string reader device.
func NewStringReader(s string, opts ...ChunkReaderOption) Reader[string] {
	byteR := NewByteReader([]byte(s), opts...)
	return NewReader(func() (string, bool, error) {
		b, ok, err := byteR.Read()
		if !ok || err != nil {
			return "", ok, err
		}
		return string(b), true, nil
	}, func(reason StopReason) error {
		return byteR.Stop(reason)
	})
}

// NewByteWriter is a concatenating sink for []byte chunks.
func NewByteWriter() Accumulator[[]byte, []byte] {
	w := &byteWriter{}
	w.Writer = NewWriter(func(v []byte, end bool) error {
		if !end {
			w.mu.Lock()
			w.buf = append(w.buf, v...)
			w.mu.Unlock()
		}
		return nil
	}, nil)
	return w
}

type byteWriter struct {
	Writer[[]byte]
	mu  sync.Mutex
	buf []byte
}

func (w *byteWriter) Result() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// NewStringWriter is a concatenating sink for string chunks.
func NewStringWriter() Accumulator[string, string] {
	w := &stringWriter{}
	w.Writer = NewWriter(func(v string, end bool) error {
		if !end {
			w.mu.Lock()
			w.sb.WriteString(v)
			w.mu.Unlock()
		}
		return nil
	}, nil)
	return w
}

type stringWriter struct {
	Writer[string]
	mu sync.Mutex
	sb strings.Builder
}

func (w *stringWriter) Result() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sb.String()
}
