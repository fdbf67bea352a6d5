package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/ckdf"
	"github.com/vivekjain488/Butterfly/internal/metrics"
)

const (
	DefaultBurnIn            = ckdf.MinBurnIn
	DefaultMaxPlaintextBytes = 1 << 20
	DefaultMaxStreamBytes    = 1 << 20
	DefaultMaxTrials         = 500
	DefaultMaxPoints         = 200000
)

type Config struct {
	Params       chaos.Params   `yaml:"params"`
	Mixing       MixingConfig   `yaml:"mixing"`
	BurnIn       int            `yaml:"burn_in"`
	StrictParams bool           `yaml:"strict_params"`
	Analysis     AnalysisConfig `yaml:"analysis"`
	Budget       BudgetConfig   `yaml:"budget"`
	LogLevel     string         `yaml:"log_level"`
}

// MixingConfig holds the raw per-map weights from the config file.
// Normalization happens inside derivation, not here.
type MixingConfig struct {
	Logistic float64 `yaml:"logistic"`
	Henon    float64 `yaml:"henon"`
	Lorenz   float64 `yaml:"lorenz"`
	Sine     float64 `yaml:"sine"`
}

type AnalysisConfig struct {
	EntropySampleBytes int                  `yaml:"entropy_sample_bytes"`
	EntropyBlockSize   int                  `yaml:"entropy_block_size"`
	EntropyBands       metrics.EntropyBands `yaml:"entropy_bands"`
	LyapunovIterations int                  `yaml:"lyapunov_iterations"`
	AvalancheTrials    int                  `yaml:"avalanche_trials"`
	StatisticalBytes   int                  `yaml:"statistical_bytes"`
}

// BudgetConfig caps request sizes so a single call cannot pin a core
// for an unbounded amount of time.
type BudgetConfig struct {
	MaxPlaintextBytes int `yaml:"max_plaintext_bytes"`
	MaxStreamBytes    int `yaml:"max_stream_bytes"`
	MaxTrials         int `yaml:"max_trials"`
	MaxPoints         int `yaml:"max_points"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: chaos.DefaultParams(),
		Mixing: MixingConfig{
			Logistic: 0.25,
			Henon:    0.25,
			Lorenz:   0.25,
			Sine:     0.25,
		},
		BurnIn: DefaultBurnIn,
		Analysis: AnalysisConfig{
			EntropySampleBytes: 5000,
			EntropyBlockSize:   metrics.DefaultEntropyBlockSize,
			EntropyBands:       metrics.DefaultEntropyBands(),
			LyapunovIterations: metrics.DefaultLyapunovIterations,
			AvalancheTrials:    metrics.DefaultAvalancheTrials,
			StatisticalBytes:   10000,
		},
		Budget: BudgetConfig{
			MaxPlaintextBytes: DefaultMaxPlaintextBytes,
			MaxStreamBytes:    DefaultMaxStreamBytes,
			MaxTrials:         DefaultMaxTrials,
			MaxPoints:         DefaultMaxPoints,
		},
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.BurnIn < ckdf.MinBurnIn {
		return fmt.Errorf("burn_in %d below minimum %d", c.BurnIn, ckdf.MinBurnIn)
	}
	w := c.Weights()
	sum := 0.0
	for _, wi := range w {
		if wi < 0 {
			return fmt.Errorf("mixing weights must be non-negative, got %v", w)
		}
		sum += wi
	}
	if sum == 0 {
		return fmt.Errorf("mixing weights must not all be zero")
	}
	if c.Budget.MaxPlaintextBytes <= 0 || c.Budget.MaxStreamBytes <= 0 {
		return fmt.Errorf("budget limits must be positive")
	}
	return nil
}

func (c *Config) Weights() chaos.Weights {
	return chaos.Weights{c.Mixing.Logistic, c.Mixing.Henon, c.Mixing.Lorenz, c.Mixing.Sine}
}

func (c *Config) DeriveOptions() ckdf.Options {
	return ckdf.Options{BurnIn: c.BurnIn}
}
