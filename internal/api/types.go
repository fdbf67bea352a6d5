package api

import (
	"encoding/json"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/metrics"
)

// Requests leave params and mixing optional; nil means "use the
// configured defaults". Responses echo what was actually used so a
// caller can reproduce the result.

type EncryptRequest struct {
	Plaintext string        `json:"plaintext"`
	Seed      string        `json:"seed"`
	Params    *chaos.Params `json:"params,omitempty"`
	Mixing    *[4]float64   `json:"mixing,omitempty"`
}

type EncryptResponse struct {
	Ciphertext string       `json:"ciphertext"`
	Length     int          `json:"length"`
	Params     chaos.Params `json:"params_used"`
	Warnings   []string     `json:"warnings,omitempty"`
}

type DecryptRequest struct {
	Ciphertext string        `json:"ciphertext"`
	Seed       string        `json:"seed"`
	Params     *chaos.Params `json:"params,omitempty"`
	Mixing     *[4]float64   `json:"mixing,omitempty"`
}

type DecryptResponse struct {
	Plaintext string   `json:"plaintext"`
	Warnings  []string `json:"warnings,omitempty"`
}

type DeriveKeyRequest struct {
	Seed   string        `json:"seed"`
	Salt   string        `json:"salt,omitempty"`
	Params *chaos.Params `json:"params,omitempty"`
	Mixing *[4]float64   `json:"mixing,omitempty"`
}

type DeriveKeyResponse struct {
	Key       string       `json:"key"`
	KeyLength int          `json:"key_length"`
	Salt      string       `json:"salt"`
	Params    chaos.Params `json:"params_used"`
	Warnings  []string     `json:"warnings,omitempty"`
}

type EntropyRequest struct {
	Seed   string        `json:"seed"`
	Length int           `json:"length"`
	Params *chaos.Params `json:"params,omitempty"`
	Mixing *[4]float64   `json:"mixing,omitempty"`
}

type EntropyResponse struct {
	metrics.EntropyReport
	Warnings []string `json:"warnings,omitempty"`
}

type LyapunovRequest struct {
	Maps       []string      `json:"maps"`
	Params     *chaos.Params `json:"params,omitempty"`
	Iterations int           `json:"iterations,omitempty"`
}

// LyapunovResponse maps each requested map name to its estimate.
type LyapunovResponse map[string]metrics.LyapunovResult

type AvalancheRequest struct {
	Seed      string        `json:"seed"`
	Plaintext string        `json:"plaintext"`
	Trials    int           `json:"n_trials"`
	Params    *chaos.Params `json:"params,omitempty"`
	Mixing    *[4]float64   `json:"mixing,omitempty"`
}

type AvalancheResponse struct {
	metrics.AvalancheReport
	Warnings []string `json:"warnings,omitempty"`
}

type StatisticalRequest struct {
	Seed   string        `json:"seed"`
	Length int           `json:"length"`
	Params *chaos.Params `json:"params,omitempty"`
	Mixing *[4]float64   `json:"mixing,omitempty"`
}

// StatisticalResponse serializes each test under its own key with the
// summary alongside, the flat shape the caller layer charts directly.
type StatisticalResponse struct {
	Tests   map[string]metrics.TestResult
	Summary metrics.SuiteSummary
}

func (r StatisticalResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Tests)+1)
	for name, res := range r.Tests {
		out[name] = res
	}
	out["summary"] = r.Summary
	return json.Marshal(out)
}

type AttractorRequest struct {
	Points int           `json:"n_points"`
	Params *chaos.Params `json:"params,omitempty"`
}

type AttractorResponse struct {
	Points  [][3]float64 `json:"points"`
	NPoints int          `json:"n_points"`
}
