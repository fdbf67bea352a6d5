package chaos

import "fmt"

// MapName identifies one of the four maps in the closed set.
type MapName string

const (
	MapLogistic MapName = "logistic"
	MapHenon    MapName = "henon"
	MapLorenz   MapName = "lorenz"
	MapSine     MapName = "sine"
)

// AllMaps lists every map name in mixing order.
func AllMaps() []MapName {
	return []MapName{MapLogistic, MapHenon, MapLorenz, MapSine}
}

// ParseMapName validates a map name string.
func ParseMapName(s string) (MapName, error) {
	switch MapName(s) {
	case MapLogistic, MapHenon, MapLorenz, MapSine:
		return MapName(s), nil
	}
	return "", fmt.Errorf("unknown map: %q", s)
}

// Params holds the scalar configuration for all four maps. Field names
// and defaults follow the wire format consumed by the caller layer.
type Params struct {
	LogisticR   float64 `yaml:"logistic_r" json:"logistic_r"`
	HenonA      float64 `yaml:"henon_a" json:"henon_a"`
	HenonB      float64 `yaml:"henon_b" json:"henon_b"`
	LorenzSigma float64 `yaml:"lorenz_sigma" json:"lorenz_sigma"`
	LorenzRho   float64 `yaml:"lorenz_rho" json:"lorenz_rho"`
	LorenzBeta  float64 `yaml:"lorenz_beta" json:"lorenz_beta"`
	SineMu      float64 `yaml:"sine_mu" json:"sine_mu"`
}

// DefaultParams returns the canonical chaotic settings.
func DefaultParams() Params {
	return Params{
		LogisticR:   3.99,
		HenonA:      1.4,
		HenonB:      0.3,
		LorenzSigma: 10.0,
		LorenzRho:   28.0,
		LorenzBeta:  8.0 / 3.0,
		SineMu:      0.99,
	}
}

// RangeWarning flags a parameter outside the regime the security
// analysis assumes. It is advisory: the maps still iterate.
type RangeWarning struct {
	Param string
	Value float64
	Min   float64
	Max   float64
}

func (w RangeWarning) String() string {
	return fmt.Sprintf("%s=%g outside chaotic regime [%g, %g]", w.Param, w.Value, w.Min, w.Max)
}

// Chaotic regime bounds for the discrete maps. The Lorenz parameters
// have no simple interval; the canonical σ=10, ρ=28, β=8/3 attractor
// is assumed and only gross sign errors are flagged.
const (
	LogisticRMin = 3.57
	LogisticRMax = 4.0
	HenonAMin    = 1.0
	HenonAMax    = 1.8
	HenonBMin    = 0.1
	HenonBMax    = 0.5
	SineMuMin    = 0.8
	SineMuMax    = 1.0
)

// Validate reports every parameter outside its chaotic regime. An
// empty slice means the configuration is in the assumed ranges.
func (p Params) Validate() []RangeWarning {
	var warns []RangeWarning
	if p.LogisticR < LogisticRMin || p.LogisticR > LogisticRMax {
		warns = append(warns, RangeWarning{"logistic_r", p.LogisticR, LogisticRMin, LogisticRMax})
	}
	if p.HenonA < HenonAMin || p.HenonA > HenonAMax {
		warns = append(warns, RangeWarning{"henon_a", p.HenonA, HenonAMin, HenonAMax})
	}
	if p.HenonB < HenonBMin || p.HenonB > HenonBMax {
		warns = append(warns, RangeWarning{"henon_b", p.HenonB, HenonBMin, HenonBMax})
	}
	if p.LorenzSigma <= 0 {
		warns = append(warns, RangeWarning{"lorenz_sigma", p.LorenzSigma, 0, 0})
	}
	if p.LorenzRho <= 1 {
		warns = append(warns, RangeWarning{"lorenz_rho", p.LorenzRho, 1, 0})
	}
	if p.LorenzBeta <= 0 {
		warns = append(warns, RangeWarning{"lorenz_beta", p.LorenzBeta, 0, 0})
	}
	if p.SineMu < SineMuMin || p.SineMu > SineMuMax {
		warns = append(warns, RangeWarning{"sine_mu", p.SineMu, SineMuMin, SineMuMax})
	}
	return warns
}
