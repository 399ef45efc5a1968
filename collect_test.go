package flow_test

import (
	. "github.com/mccutchen/flow"

	"testing"
)

func TestToArrayMaterializes(t *testing.T) {
	got, err := ToArray[int](numbers(5))
	if err != nil {
		t.Fatalf("ToArray() err = %v", err)
	}
	ExpectIntSlice(t, got, []int{0, 1, 2, 3, 4})
}

func TestReadAllBytesConcatenates(t *testing.T) {
	r := NewArrayReader([][]byte{[]byte("ab"), []byte("cd"), []byte("e")})
	got, err := ReadAllBytes(r)
	if err != nil || string(got) != "abcde" {
		t.Fatalf("ReadAllBytes() = %q, %v", got, err)
	}
}

func TestReadAllStringConcatenates(t *testing.T) {
	r := NewArrayReader([]string{"foo", "bar"})
	got, err := ReadAllString(r)
	if err != nil || got != "foobar" {
		t.Fatalf("ReadAllString() = %q, %v", got, err)
	}
}

func TestCompareOrdersLexically(t *testing.T) {
	c, err := Compare[int](numbers(3), numbers(3))
	if err != nil || c != 0 {
		t.Fatalf("Compare(equal) = %d, %v, want 0, nil", c, err)
	}

	c, err = Compare[int](NewArrayReader([]int{1, 2}), NewArrayReader([]int{1, 3}))
	if err != nil || c >= 0 {
		t.Fatalf("Compare([1,2],[1,3]) = %d, %v, want negative", c, err)
	}

	c, err = Compare[int](NewArrayReader([]int{1}), NewArrayReader([]int{1, 2}))
	if err != nil || c >= 0 {
		t.Fatalf("Compare(shorter,longer) = %d, %v, want negative", c, err)
	}
}
