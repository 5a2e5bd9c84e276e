package pangfish

import "testing"

func TestQ0Q1ArePermutations(t *testing.T) {
	checkPermutation(t, "q0", q0)
	checkPermutation(t, "q1", q1)
}

func checkPermutation(t *testing.T, name string, table [256]byte) {
	t.Helper()
	var seen [256]bool
	for _, v := range table {
		if seen[v] {
			t.Fatalf("%s is not a permutation: value %d appears more than once", name, v)
		}
		seen[v] = true
	}
}

func TestQ0Q1Distinct(t *testing.T) {
	differ := false
	for i := 0; i < 256; i++ {
		if q0[i] != q1[i] {
			differ = true
			break
		}
	}
	if !differ {
		t.Error("q0 and q1 should not be identical permutations")
	}
}

func TestRor4(t *testing.T) {
	tests := []struct {
		x    byte
		n    uint
		want byte
	}{
		{0x1, 1, 0x8},
		{0x8, 1, 0x4},
		{0xF, 2, 0xF},
		{0x0, 3, 0x0},
	}
	for _, tt := range tests {
		if got := ror4(tt.x, tt.n); got != tt.want {
			t.Errorf("ror4(0x%X, %d) = 0x%X, want 0x%X", tt.x, tt.n, got, tt.want)
		}
	}
}
