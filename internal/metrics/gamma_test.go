package metrics

import (
	"math"
	"testing"
)

func TestIgamcKnownIdentities(t *testing.T) {
	// Q(1, x) = e^-x
	for _, x := range []float64{0.1, 0.5, 1, 2, 5, 10} {
		got := igamc(1, x)
		want := math.Exp(-x)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("igamc(1, %v) = %v, want %v", x, got, want)
		}
	}

	// Q(0.5, x) = erfc(sqrt(x))
	for _, x := range []float64{0.01, 0.25, 1, 4, 9} {
		got := igamc(0.5, x)
		want := math.Erfc(math.Sqrt(x))
		if math.Abs(got-want) > 1e-10 {
			t.Errorf("igamc(0.5, %v) = %v, want %v", x, got, want)
		}
	}
}

func TestIgamcBounds(t *testing.T) {
	if got := igamc(3, 0); got != 1 {
		t.Errorf("igamc(a, 0) = %v, want 1", got)
	}
	if got := igamc(2, 1e6); got > 1e-10 {
		t.Errorf("igamc(2, huge) = %v, want ~0", got)
	}
	if !math.IsNaN(igamc(-1, 2)) {
		t.Error("expected NaN for non-positive a")
	}
}

func TestChiSquareP(t *testing.T) {
	// With 2 degrees of freedom the survival function is exp(-x/2).
	for _, x := range []float64{0.5, 1, 3, 10} {
		got := chiSquareP(x, 2)
		want := math.Exp(-x / 2)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("chiSquareP(%v, 2) = %v, want %v", x, got, want)
		}
	}

	// The median of chi-square with many dof sits near dof.
	p := chiSquareP(255, 255)
	if p < 0.3 || p > 0.7 {
		t.Errorf("chiSquareP(255, 255) = %v, expected near 0.5", p)
	}
}
