package chaos

import "math"

// Sine is the 1-D map x' = |μ·sin(πx)|, folded back into [0,1) when
// the magnitude exceeds one.
type Sine struct{ Mu float64 }

// Step advances the map one iteration.
func (m Sine) Step(x float64) float64 {
	x = math.Abs(m.Mu * math.Sin(math.Pi*x))
	if x > 1.0 {
		x -= math.Floor(x)
	}
	return x
}

// Iterate advances the map n iterations and returns the final state.
func (m Sine) Iterate(x float64, n int) float64 {
	for i := 0; i < n; i++ {
		x = m.Step(x)
	}
	return x
}
