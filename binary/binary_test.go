package binary

import (
	"testing"

	"github.com/mccutchen/flow"
)

func TestReadExactLengths(t *testing.T) {
	r := NewReader(flow.NewArrayReader([][]byte{{0x01, 0x02}, {0x03}, {0x04, 0x05, 0x06}}))

	b, err := r.Read(3)
	if err != nil || string(b) != string([]byte{0x01, 0x02, 0x03}) {
		t.Fatalf("Read(3) = %v, %v", b, err)
	}

	b, err = r.Read(3)
	if err != nil || string(b) != string([]byte{0x04, 0x05, 0x06}) {
		t.Fatalf("Read(3) = %v, %v", b, err)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewReader(flow.NewArrayReader([][]byte{{0xAA, 0xBB, 0xCC}}))

	peeked, err := r.Peek(2)
	if err != nil || string(peeked) != string([]byte{0xAA, 0xBB}) {
		t.Fatalf("Peek(2) = %v, %v", peeked, err)
	}

	b, err := r.Read(2)
	if err != nil || string(b) != string(peeked) {
		t.Fatalf("Read(2) after Peek(2) = %v, %v, want %v", b, err, peeked)
	}
}

func TestUnreadRewindsWithinBounds(t *testing.T) {
	r := NewReader(flow.NewArrayReader([][]byte{{0x01, 0x02, 0x03}}))

	if _, err := r.Read(2); err != nil {
		t.Fatalf("Read(2) err = %v", err)
	}
	if err := r.Unread(1); err != nil {
		t.Fatalf("Unread(1) err = %v", err)
	}
	b, err := r.Read(2)
	if err != nil || string(b) != string([]byte{0x02, 0x03}) {
		t.Fatalf("Read(2) after Unread(1) = %v, %v", b, err)
	}
}

func TestUnreadTooMuchFails(t *testing.T) {
	r := NewReader(flow.NewArrayReader([][]byte{{0x01, 0x02}}))
	if _, err := r.Read(1); err != nil {
		t.Fatalf("Read(1) err = %v", err)
	}
	if err := r.Unread(5); err != ErrUnreadTooMuch {
		t.Fatalf("Unread(5) err = %v, want ErrUnreadTooMuch", err)
	}
}

func TestNumericHelpersRoundTrip(t *testing.T) {
	acc := flow.NewArrayWriter[[]byte]()
	w := NewWriter(acc)

	if err := w.Uint32BE(0xDEADBEEF); err != nil {
		t.Fatalf("Uint32BE write err = %v", err)
	}
	if err := w.Float64LE(3.5); err != nil {
		t.Fatalf("Float64LE write err = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}

	r := NewReader(flow.NewArrayReader(acc.Result()))
	got, err := r.Uint32BE()
	if err != nil || got != 0xDEADBEEF {
		t.Fatalf("Uint32BE() = %x, %v, want DEADBEEF", got, err)
	}
	f, err := r.Float64LE()
	if err != nil || f != 3.5 {
		t.Fatalf("Float64LE() = %v, %v, want 3.5", f, err)
	}
}
