package chaos

import "math"

// Fold scales for the unbounded maps. |x|/scale is reduced to its
// fractional part so every mixer input lands in [0,1). The constants
// roughly match the attractor extents and must never change: they are
// part of the keystream definition.
const (
	henonFoldScale  = 1.5
	lorenzFoldScale = 50.0
)

// Weights is the ordered (α, β, γ, δ) mixing vector, applied to the
// logistic, Hénon, Lorenz and sine outputs in that order.
type Weights [4]float64

// DefaultWeights mixes all four maps equally.
func DefaultWeights() Weights { return Weights{0.25, 0.25, 0.25, 0.25} }

// Normalized returns the weights scaled to sum to 1. A vector that
// sums to zero is replaced with equal weights rather than dividing
// by zero.
func (w Weights) Normalized() Weights {
	sum := w[0] + w[1] + w[2] + w[3]
	if sum == 0 {
		return DefaultWeights()
	}
	return Weights{w[0] / sum, w[1] / sum, w[2] / sum, w[3] / sum}
}

func frac(x float64) float64 { return x - math.Floor(x) }

// Mix combines one output from each map into a single scalar in [0,1).
// The logistic and sine values are already bounded; the Hénon and
// Lorenz coordinates are folded first. Weights are used exactly as
// given. Normalization is the caller's decision, made once.
func Mix(logistic, henonX, lorenzX, sine float64, w Weights) float64 {
	h := frac(math.Abs(henonX) / henonFoldScale)
	l := frac(math.Abs(lorenzX) / lorenzFoldScale)
	return frac(w[0]*logistic + w[1]*h + w[2]*l + w[3]*sine)
}

// InitialConditions seeds all four maps. The key derivation layer
// computes these from the seed hash; the zero value is not usable.
type InitialConditions struct {
	LogisticX float64
	HenonX    float64
	HenonY    float64
	LorenzX   float64
	LorenzY   float64
	LorenzZ   float64
	SineX     float64
}

// DefaultInitialConditions matches the documented reference orbit,
// used by analyses that do not involve a seed.
func DefaultInitialConditions() InitialConditions {
	return InitialConditions{
		LogisticX: 0.5,
		HenonX:    0.1,
		HenonY:    0.1,
		LorenzX:   1.0,
		LorenzY:   1.0,
		LorenzZ:   1.0,
		SineX:     0.5,
	}
}

// Hybrid evolves the four maps side by side and exposes their mixed
// scalar output. The maps run independently; coupling happens only in
// [Mix]. Hybrid is a value type: copying one forks the orbit.
type Hybrid struct {
	logistic Logistic
	henon    Henon
	lorenz   Lorenz
	sine     Sine

	weights Weights

	logisticX float64
	henonS    HenonState
	lorenzS   LorenzState
	sineX     float64
}

// NewHybrid builds a hybrid system from explicit parameters, weights
// and initial conditions. Weights are stored as handed in.
func NewHybrid(p Params, w Weights, ic InitialConditions) Hybrid {
	return Hybrid{
		logistic:  Logistic{R: p.LogisticR},
		henon:     Henon{A: p.HenonA, B: p.HenonB},
		lorenz:    Lorenz{Sigma: p.LorenzSigma, Rho: p.LorenzRho, Beta: p.LorenzBeta},
		sine:      Sine{Mu: p.SineMu},
		weights:   w,
		logisticX: ic.LogisticX,
		henonS:    HenonState{X: ic.HenonX, Y: ic.HenonY},
		lorenzS:   LorenzState{X: ic.LorenzX, Y: ic.LorenzY, Z: ic.LorenzZ},
		sineX:     ic.SineX,
	}
}

// Step advances every map one iteration and returns the mixed scalar.
func (h *Hybrid) Step() float64 {
	h.logisticX = h.logistic.Step(h.logisticX)
	h.henonS = h.henon.Step(h.henonS)
	h.lorenzS = h.lorenz.Step(h.lorenzS)
	h.sineX = h.sine.Step(h.sineX)
	return Mix(h.logisticX, h.henonS.X, h.lorenzS.X, h.sineX, h.weights)
}

// BurnIn discards n iterations to shed initial-condition transients.
func (h *Hybrid) BurnIn(n int) {
	for i := 0; i < n; i++ {
		h.Step()
	}
}

// LorenzTrajectory integrates the hybrid's Lorenz component from its
// current state without disturbing the hybrid orbit.
func (h *Hybrid) LorenzTrajectory(n int) []LorenzState {
	return h.lorenz.Trajectory(h.lorenzS, n)
}
