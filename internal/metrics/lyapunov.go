package metrics

import (
	"fmt"
	"math"

	"github.com/vivekjain488/Butterfly/internal/chaos"
)

// DefaultLyapunovIterations is the estimation horizon per map.
const DefaultLyapunovIterations = 5000

// lorenzPerturbation is the initial separation for the two-trajectory
// Lorenz estimate.
const lorenzPerturbation = 1e-8

// LyapunovResult is the λ₁ estimate for one map.
type LyapunovResult struct {
	Lambda  float64 `json:"lambda"`
	Chaotic bool    `json:"chaotic"`
}

// Lyapunov estimates the largest exponent for the named map. A
// positive λ₁ means nearby orbits diverge exponentially: chaos.
func Lyapunov(name chaos.MapName, params chaos.Params, iterations int) (LyapunovResult, error) {
	if iterations <= 0 {
		iterations = DefaultLyapunovIterations
	}

	var lambda float64
	switch name {
	case chaos.MapLogistic:
		lambda = lyapunovLogistic(params.LogisticR, iterations)
	case chaos.MapHenon:
		lambda = lyapunovHenon(params.HenonA, params.HenonB, iterations)
	case chaos.MapLorenz:
		lambda = lyapunovLorenz(chaos.Lorenz{Sigma: params.LorenzSigma, Rho: params.LorenzRho, Beta: params.LorenzBeta}, iterations)
	case chaos.MapSine:
		lambda = lyapunovSine(params.SineMu, iterations)
	default:
		return LyapunovResult{}, fmt.Errorf("lyapunov: unknown map %q", name)
	}

	return LyapunovResult{Lambda: lambda, Chaotic: lambda > 0}, nil
}

// lyapunovLogistic uses the exact 1-D formula
// λ = lim (1/n) Σ log|f'(xᵢ)| with f'(x) = r - 2rx.
func lyapunovLogistic(r float64, n int) float64 {
	m := chaos.Logistic{R: r}
	x := 0.5
	sum := 0.0
	for i := 0; i < n; i++ {
		x = m.Step(x)
		d := math.Abs(r - 2*r*x)
		if d > 1e-12 {
			sum += math.Log(d)
		}
	}
	return sum / float64(n)
}

// lyapunovSine applies the same derivative-sum method with
// f'(x) = μπ·cos(πx); the magnitude fold does not change |f'|.
func lyapunovSine(mu float64, n int) float64 {
	m := chaos.Sine{Mu: mu}
	x := 0.5
	sum := 0.0
	for i := 0; i < n; i++ {
		x = m.Step(x)
		d := math.Abs(mu * math.Pi * math.Cos(math.Pi*x))
		if d > 1e-12 {
			sum += math.Log(d)
		}
	}
	return sum / float64(n)
}

// lyapunovHenon evolves a tangent vector under the Jacobian
//
//	J = | -2ax  1 |
//	    |   b   0 |
//
// renormalizing every step and accumulating the log growth.
func lyapunovHenon(a, b float64, n int) float64 {
	m := chaos.Henon{A: a, B: b}
	s := chaos.HenonState{X: 0.1, Y: 0.1}

	vx, vy := 1.0, 0.0
	sum := 0.0
	for i := 0; i < n; i++ {
		nvx := -2*a*s.X*vx + vy
		nvy := b * vx
		norm := math.Hypot(nvx, nvy)
		if norm > 1e-12 {
			sum += math.Log(norm)
			vx, vy = nvx/norm, nvy/norm
		}
		s = m.Step(s)
	}
	return sum / float64(n)
}

// lyapunovLorenz runs a reference and a perturbed trajectory through
// the Euler integrator, renormalizing the separation back to ε each
// step and averaging the log growth over elapsed time.
func lyapunovLorenz(m chaos.Lorenz, n int) float64 {
	ref := chaos.LorenzState{X: 1, Y: 1, Z: 1}
	per := chaos.LorenzState{X: 1 + lorenzPerturbation, Y: 1, Z: 1}

	sum := 0.0
	count := 0
	for i := 0; i < n; i++ {
		ref = m.Step(ref)
		per = m.Step(per)

		dx := per.X - ref.X
		dy := per.Y - ref.Y
		dz := per.Z - ref.Z
		sep := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if sep > 1e-12 {
			sum += math.Log(sep / lorenzPerturbation)
			count++

			scale := lorenzPerturbation / sep
			per = chaos.LorenzState{
				X: ref.X + dx*scale,
				Y: ref.Y + dy*scale,
				Z: ref.Z + dz*scale,
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / (float64(count) * chaos.LorenzDt)
}
