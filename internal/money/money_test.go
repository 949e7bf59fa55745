package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{118500, 118500},
		{17.9, 17.9},
		{0.005, 0.01},
		{95600.004, 95600},
		{-3.456, -3.46},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestArithmeticAvoidsFloatDrift(t *testing.T) {
	// 0.1 + 0.2 must not leak binary noise into committed amounts.
	if got := Add(0.1, 0.2); got != 0.3 {
		t.Fatalf("Add(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Sub(119500, 118500); got != 1000 {
		t.Fatalf("Sub = %v, want 1000", got)
	}
	if got := Mul(3950, 30); got != 118500 {
		t.Fatalf("Mul = %v, want 118500", got)
	}
}
