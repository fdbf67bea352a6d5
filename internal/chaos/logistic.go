package chaos

// Logistic is the 1-D logistic map x' = r·x·(1-x).
type Logistic struct{ R float64 }

// Step advances the map one iteration.
func (m Logistic) Step(x float64) float64 {
	return m.R * x * (1 - x)
}

// Iterate advances the map n iterations and returns the final state.
func (m Logistic) Iterate(x float64, n int) float64 {
	for i := 0; i < n; i++ {
		x = m.Step(x)
	}
	return x
}
