package chaos

// LorenzDt is the fixed integration step. The step is deliberately not
// adaptive: two runs from the same state must execute the exact same
// floating-point operations in the same order.
const LorenzDt = 0.01

// LorenzState is a point in the Lorenz phase space.
type LorenzState struct{ X, Y, Z float64 }

// Lorenz is the continuous system
//
//	dx/dt = σ(y - x)
//	dy/dt = x(ρ - z) - y
//	dz/dt = xy - βz
//
// integrated with explicit Euler at [LorenzDt].
type Lorenz struct{ Sigma, Rho, Beta float64 }

// Step advances the system by one Euler step. The derivative terms are
// evaluated from the incoming state before any component is updated.
func (m Lorenz) Step(s LorenzState) LorenzState {
	dx := m.Sigma * (s.Y - s.X)
	dy := s.X*(m.Rho-s.Z) - s.Y
	dz := s.X*s.Y - m.Beta*s.Z
	return LorenzState{
		X: s.X + LorenzDt*dx,
		Y: s.Y + LorenzDt*dy,
		Z: s.Z + LorenzDt*dz,
	}
}

// Trajectory integrates n steps from s and returns every visited state.
// This feeds the attractor export; the cipher path never materializes
// full trajectories.
func (m Lorenz) Trajectory(s LorenzState, n int) []LorenzState {
	traj := make([]LorenzState, n)
	for i := 0; i < n; i++ {
		s = m.Step(s)
		traj[i] = s
	}
	return traj
}
