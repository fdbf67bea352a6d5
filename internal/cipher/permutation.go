package cipher

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/vivekjain488/Butterfly/internal/chaos"
)

// permWarmup is how many Hénon iterations are discarded before the
// trajectory samples that define the permutation.
const permWarmup = 64

// Permutation derives a bijection over block indices {0..n-1} from the
// Hénon map seeded by the first 16 key bytes. Block positions are
// sorted by their trajectory value; ties keep the original index order
// so the mapping is well-defined for any input.
func Permutation(key []byte, params chaos.Params, n int) []int {
	if n <= 0 {
		return nil
	}

	m := chaos.Henon{A: params.HenonA, B: params.HenonB}
	s := henonSeed(key)
	for i := 0; i < permWarmup; i++ {
		s = m.Step(s)
	}
	xs := m.Trajectory(s, n)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return xs[perm[i]] < xs[perm[j]]
	})
	return perm
}

// henonSeed maps key bytes into the Hénon basin the same way the key
// derivation maps preseed bytes.
func henonSeed(key []byte) chaos.HenonState {
	var buf [16]byte
	copy(buf[:], key)
	u := func(off int) float64 {
		return float64(binary.BigEndian.Uint64(buf[off:off+8])) / math.Ldexp(1, 64)
	}
	return chaos.HenonState{
		X: u(0)*0.4 - 0.2,
		Y: u(8)*0.4 - 0.2,
	}
}
