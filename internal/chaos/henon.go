package chaos

// HenonState is the 2-D state of the Hénon map.
type HenonState struct{ X, Y float64 }

// Henon is the map x' = 1 - a·x² + y, y' = b·x. Classic chaotic
// parameters are a=1.4, b=0.3.
type Henon struct{ A, B float64 }

// Step advances the map one iteration.
func (m Henon) Step(s HenonState) HenonState {
	return HenonState{
		X: 1 - m.A*s.X*s.X + s.Y,
		Y: m.B * s.X,
	}
}

// Trajectory iterates n steps and collects the x-coordinate of each.
// The permutation stage sorts these values to order cipher blocks.
func (m Henon) Trajectory(s HenonState, n int) []float64 {
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		s = m.Step(s)
		xs[i] = s.X
	}
	return xs
}
