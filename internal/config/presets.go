package config

// Presets are named starting points. Each is a full config built from
// DefaultConfig with a handful of fields overridden, so file or flag
// overrides still apply afterwards.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"fast": func() *Config {
		cfg := DefaultConfig()
		cfg.Analysis.LyapunovIterations = 2000
		cfg.Analysis.AvalancheTrials = 20
		cfg.Analysis.EntropySampleBytes = 2000
		cfg.Analysis.StatisticalBytes = 4000
		return cfg
	},
	"paranoid": func() *Config {
		cfg := DefaultConfig()
		cfg.BurnIn = 4 * DefaultBurnIn
		cfg.StrictParams = true
		cfg.Analysis.LyapunovIterations = 20000
		cfg.Analysis.AvalancheTrials = 200
		cfg.Analysis.EntropySampleBytes = 20000
		cfg.Analysis.StatisticalBytes = 40000
		return cfg
	},
	"logistic-heavy": func() *Config {
		cfg := DefaultConfig()
		cfg.Mixing = MixingConfig{Logistic: 0.55, Henon: 0.15, Lorenz: 0.15, Sine: 0.15}
		return cfg
	},
	"lorenz-heavy": func() *Config {
		cfg := DefaultConfig()
		cfg.Mixing = MixingConfig{Logistic: 0.15, Henon: 0.15, Lorenz: 0.55, Sine: 0.15}
		cfg.Params.LorenzRho = 32.0
		return cfg
	},
	"edge-of-chaos": func() *Config {
		cfg := DefaultConfig()
		cfg.Params.LogisticR = 3.62
		cfg.Params.SineMu = 0.88
		return cfg
	},
}

func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
