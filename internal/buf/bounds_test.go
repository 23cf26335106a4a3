package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(20, 40); !ok || sum != 60 {
		t.Fatalf("AddOverflowSafe(20,40)=%d,%v want 60,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if got, ok := MulOverflowSafe(3, 18); !ok || got != 54 {
		t.Fatalf("MulOverflowSafe(3,18)=%d,%v want 54,true", got, ok)
	}
	if got, ok := MulOverflowSafe(0, 18); !ok || got != 0 {
		t.Fatalf("zero count should be fine, got %d,%v", got, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 18); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 18); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestCheckTable(t *testing.T) {
	end, err := CheckTable(100, 20, 2, 40)
	if err != nil || end != 100 {
		t.Fatalf("CheckTable exact fit = %d,%v want 100,nil", end, err)
	}
	if _, err := CheckTable(99, 20, 2, 40); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckTable(100, -1, 1, 1); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckTable(100, 0, -1, 1); err == nil {
		t.Fatalf("expected negative count error")
	}
	if _, err := CheckTable(math.MaxInt, math.MaxInt-10, 1, 18); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 4, 1) {
		t.Fatalf("Has should be true for the last byte")
	}
	if Has(data, 2, 0) {
		t.Fatalf("empty ranges are never valid")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
	if _, ok := Slice(data, 5, 1); ok {
		t.Fatalf("Slice should reject offset == len")
	}
}

func TestAlignUp(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, 2: 2, 67: 68, 68: 68}
	for in, want := range cases {
		if got := AlignUp(in, 2); got != want {
			t.Fatalf("AlignUp(%d,2)=%d want %d", in, got, want)
		}
	}
}
