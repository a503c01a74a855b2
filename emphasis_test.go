package bionic

import "testing"

func TestBoldCount(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{6, 2},
		{7, 2},
		{8, 3},
		{10, 4},
		{11, 4},
		{15, 6},
		{20, 8},
		{23, 9},
	}
	for _, tt := range tests {
		if got := BoldCount(tt.n); got != tt.want {
			t.Errorf("BoldCount(%d) = %d; want %d", tt.n, got, tt.want)
		}
	}
}

func TestBoldCount_MatchesFloatRule(t *testing.T) {
	for n := 5; n <= 10000; n++ {
		want := max(1, int(float64(n)*0.4))
		if got := BoldCount(n); got != want {
			t.Fatalf("BoldCount(%d) = %d; want %d", n, got, want)
		}
	}
}

func TestBoldCount_Monotonic(t *testing.T) {
	prev := 0
	for n := 0; n <= 1000; n++ {
		got := BoldCount(n)
		if got < prev {
			t.Fatalf("BoldCount(%d) = %d < BoldCount(%d) = %d", n, got, n-1, prev)
		}
		if n >= 1 && (got < 1 || got > n) {
			t.Fatalf("BoldCount(%d) = %d out of [1, n]", n, got)
		}
		prev = got
	}
}
