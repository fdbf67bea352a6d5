package chaos

import (
	"math"
	"testing"
)

func TestLogisticStep(t *testing.T) {
	m := Logistic{R: 3.99}
	got := m.Step(0.5)
	want := 3.99 * 0.5 * 0.5
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLogisticStaysBounded(t *testing.T) {
	m := Logistic{R: 3.99}
	x := 0.5
	for i := 0; i < 10000; i++ {
		x = m.Step(x)
		if x < 0 || x > 1 {
			t.Fatalf("escaped unit interval at iteration %d: %v", i, x)
		}
	}
}

func TestHenonStep(t *testing.T) {
	m := Henon{A: 1.4, B: 0.3}
	s := m.Step(HenonState{X: 0.1, Y: 0.1})
	wantX := 1 - 1.4*0.01 + 0.1
	wantY := 0.3 * 0.1
	if math.Abs(s.X-wantX) > 1e-15 || math.Abs(s.Y-wantY) > 1e-15 {
		t.Errorf("expected (%v, %v), got (%v, %v)", wantX, wantY, s.X, s.Y)
	}
}

func TestHenonTrajectoryLength(t *testing.T) {
	m := Henon{A: 1.4, B: 0.3}
	xs := m.Trajectory(HenonState{X: 0.1, Y: 0.1}, 64)
	if len(xs) != 64 {
		t.Fatalf("expected 64 samples, got %d", len(xs))
	}
}

func TestLorenzStepEuler(t *testing.T) {
	m := Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0}
	s := m.Step(LorenzState{X: 1, Y: 1, Z: 1})

	// One hand-computed Euler step from (1,1,1).
	wantX := 1 + LorenzDt*(10*(1-1))
	wantY := 1 + LorenzDt*(1*(28-1)-1)
	wantZ := 1 + LorenzDt*(1*1-8.0/3.0*1)

	if s.X != wantX || s.Y != wantY || s.Z != wantZ {
		t.Errorf("expected (%v,%v,%v), got (%v,%v,%v)", wantX, wantY, wantZ, s.X, s.Y, s.Z)
	}
}

func TestLorenzDeterminism(t *testing.T) {
	m := Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0}
	a := LorenzState{X: 1, Y: 1, Z: 1}
	b := a
	for i := 0; i < 5000; i++ {
		a = m.Step(a)
		b = m.Step(b)
	}
	if a != b {
		t.Errorf("identical orbits diverged: %+v vs %+v", a, b)
	}
}

func TestSineStepBounded(t *testing.T) {
	m := Sine{Mu: 0.99}
	x := 0.5
	for i := 0; i < 10000; i++ {
		x = m.Step(x)
		if x < 0 || x >= 1.0000001 {
			t.Fatalf("escaped [0,1] at iteration %d: %v", i, x)
		}
	}
}

func TestMixRange(t *testing.T) {
	w := DefaultWeights()
	tests := []struct {
		name                         string
		logistic, henon, lorenz, sin float64
	}{
		{"typical", 0.3, -1.2, 14.7, 0.8},
		{"large lorenz", 0.9, 0.4, -123.5, 0.1},
		{"zeros", 0, 0, 0, 0},
		{"edge", 0.999999, 1.49, 49.9, 0.999999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Mix(tt.logistic, tt.henon, tt.lorenz, tt.sin, w)
			if s < 0 || s >= 1 {
				t.Errorf("mix out of [0,1): %v", s)
			}
		})
	}
}

func TestWeightsNormalized(t *testing.T) {
	w := Weights{2, 1, 1, 0}.Normalized()
	sum := w[0] + w[1] + w[2] + w[3]
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("expected sum 1, got %v", sum)
	}
	if math.Abs(w[0]-0.5) > 1e-12 {
		t.Errorf("expected first weight 0.5, got %v", w[0])
	}

	zero := Weights{}.Normalized()
	if zero != DefaultWeights() {
		t.Errorf("zero-sum weights should fall back to equal mixing, got %v", zero)
	}
}

func TestHybridDeterminism(t *testing.T) {
	p := DefaultParams()
	ic := DefaultInitialConditions()

	a := NewHybrid(p, DefaultWeights(), ic)
	b := NewHybrid(p, DefaultWeights(), ic)

	for i := 0; i < 5000; i++ {
		if va, vb := a.Step(), b.Step(); va != vb {
			t.Fatalf("hybrids diverged at step %d: %v vs %v", i, va, vb)
		}
	}
}

func TestHybridCopyForksOrbit(t *testing.T) {
	a := NewHybrid(DefaultParams(), DefaultWeights(), DefaultInitialConditions())
	a.BurnIn(100)

	b := a // value copy
	va := a.Step()
	vb := b.Step()
	if va != vb {
		t.Errorf("copies should agree on the next step: %v vs %v", va, vb)
	}
}

func TestHybridOutputInUnitInterval(t *testing.T) {
	h := NewHybrid(DefaultParams(), DefaultWeights(), DefaultInitialConditions())
	for i := 0; i < 20000; i++ {
		if s := h.Step(); s < 0 || s >= 1 {
			t.Fatalf("output out of [0,1) at step %d: %v", i, s)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	if warns := DefaultParams().Validate(); len(warns) != 0 {
		t.Errorf("defaults should be in regime, got %v", warns)
	}

	p := DefaultParams()
	p.LogisticR = 2.5
	p.SineMu = 0.5
	warns := p.Validate()
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warns), warns)
	}
	if warns[0].Param != "logistic_r" {
		t.Errorf("expected logistic_r flagged first, got %s", warns[0].Param)
	}
}

func TestParseMapName(t *testing.T) {
	for _, name := range AllMaps() {
		if _, err := ParseMapName(string(name)); err != nil {
			t.Errorf("valid name rejected: %s", name)
		}
	}
	if _, err := ParseMapName("tent"); err == nil {
		t.Error("expected error for unknown map")
	}
}
