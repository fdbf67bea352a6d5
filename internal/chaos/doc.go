// Package chaos provides the chaotic map library and the hybrid mixer.
//
// Four maps form a closed set, addressed by [MapName]:
//
//   - [Logistic]: x' = r·x·(1-x), 1-D discrete
//   - [Henon]: x' = 1 - a·x² + y, y' = b·x, 2-D discrete
//   - [Lorenz]: the Lorenz system, integrated with a fixed explicit
//     Euler step (Δt = 0.01) so the operation sequence is reproducible
//   - [Sine]: x' = |μ·sin(πx)|, 1-D discrete
//
// All step functions are pure: state goes in by value, the next state
// comes out. The package performs no runtime clamping of parameters;
// [Params.Validate] reports values outside the chaotic regime and the
// caller decides what to do with that.
//
// [Hybrid] couples the four maps into a single scalar stream in [0,1)
// via [Mix], the weighted mod-1 combination used by key derivation.
package chaos
