package flow_test

import (
	. "github.com/mccutchen/flow"

	"testing"
)

func TestPeekableReadFollowsPeek(t *testing.T) {
	p := Peekable[int](numbers(3))

	peeked, ok, err := p.Peek()
	if err != nil || !ok || peeked != 0 {
		t.Fatalf("Peek() = %v, %v, %v", peeked, ok, err)
	}

	v, ok, err := p.Read()
	if err != nil || !ok || v != peeked {
		t.Fatalf("Read() after Peek() = %v, %v, %v; want %v", v, ok, err, peeked)
	}

	ExpectIntSlice(t, mustToArray(t, p), []int{1, 2})
}

func TestPeekableUnreadIsLIFO(t *testing.T) {
	p := Peekable[int](numbers(3))

	v, _, _ := p.Read() // 0
	p.Unread(100)
	p.Unread(200)

	ExpectIntSlice(t, mustToArray(t, p), []int{200, 100, 1, 2})
	_ = v
}
