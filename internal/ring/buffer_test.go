package ring

import (
	"testing"
)

func expectValue[A comparable](t *testing.T, actual, expected A) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

func makeRwHelpers(buf *Buffer[int]) (read func(t *testing.T, cnt int), write func(t *testing.T, cnt int)) {
	var ir, iw int

	write = func(t *testing.T, cnt int) {
		t.Helper()
		for k := 0; k < cnt; k++ {
			buf.Write(iw)
			iw++
		}
	}

	read = func(t *testing.T, cnt int) {
		t.Helper()

		if ir >= iw {
			_, ok := buf.Read()
			expectValue(t, ok, false)
			return
		}

		for k := 0; k < cnt; k++ {
			v, ok := buf.Read()

			if ir < iw {
				expectValue(t, ok, true)
				expectValue(t, v, ir)
				ir++
			} else {
				expectValue(t, ok, false)
			}
		}
	}

	return
}

func TestReadWrite(t *testing.T) {
	var buf Buffer[int]
	read, write := makeRwHelpers(&buf)

	expectValue(t, buf.Len(), 0)
	expectValue(t, buf.Cap(), 0)

	read(t, 5) // read from empty buffer

	expectValue(t, buf.Len(), 0)
	expectValue(t, buf.Cap(), 0)

	write(t, 100)

	expectValue(t, buf.Len(), 100)
	expectValue(t, buf.Cap(), 128)

	read(t, 50)

	expectValue(t, buf.Len(), 50)
	expectValue(t, buf.Cap(), 128)

	write(t, 50)

	expectValue(t, buf.Len(), 100)
	expectValue(t, buf.Cap(), 128)

	read(t, 100)

	expectValue(t, buf.Len(), 0)
	expectValue(t, buf.Cap(), 128)
}

func TestGrowWrapsAroundThenDoubles(t *testing.T) {
	var buf Buffer[int]
	read, write := makeRwHelpers(&buf)

	write(t, 120)
	read(t, 120)
	write(t, 20)

	if buf.offset+buf.size < len(buf.data) {
		t.Fatalf("test is not properly set up, buffer must be wrapped around")
	}

	expectValue(t, buf.Len(), 20)
	expectValue(t, buf.Cap(), 128)

	write(t, 200)
	expectValue(t, buf.Len(), 220)
	expectValue(t, buf.Cap(), 256)

	read(t, 220)
	expectValue(t, buf.Len(), 0)
}

func TestZeroValueBufferIsUsable(t *testing.T) {
	var buf Buffer[string]

	_, ok := buf.Read()
	expectValue(t, ok, false)

	buf.Write("a")
	buf.Write("b")
	expectValue(t, buf.Len(), 2)

	v, ok := buf.Read()
	expectValue(t, ok, true)
	expectValue(t, v, "a")
}
