// Package metrics measures whether the chaotic source behaves
// cryptographically.
//
// Four independent analyses, all read-only over their inputs:
//
//   - [ShannonEntropy] / [AnalyzeEntropy]: bits/byte of a sample plus
//     block-wise trend
//   - [Lyapunov]: largest-exponent estimate per map; λ₁ > 0 is chaos
//   - [Avalanche]: ciphertext bit-flip distribution under single-bit
//     seed perturbations, ideally near 50%
//   - [RunSuite]: an SP 800-22 style randomness battery with per-test
//     verdicts and an aggregate pass rate
//
// Every report is a snapshot computed fresh per call; nothing here
// mutates cipher or derivation state.
package metrics
