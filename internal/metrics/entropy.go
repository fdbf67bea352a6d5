package metrics

import "math"

// EntropyTarget is the maximum Shannon entropy of a byte stream.
const EntropyTarget = 8.0

// DefaultEntropyBlockSize is the chunk size for block-wise entropy.
const DefaultEntropyBlockSize = 16

// EntropyBands are the quality thresholds in bits/byte. They are
// policy, not physics, so they come from configuration.
type EntropyBands struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
}

// DefaultEntropyBands returns the standard banding.
func DefaultEntropyBands() EntropyBands {
	return EntropyBands{Excellent: 7.99, Good: 7.5}
}

// Quality maps an entropy value to its band name.
func (b EntropyBands) Quality(h float64) string {
	switch {
	case h >= b.Excellent:
		return "Excellent"
	case h >= b.Good:
		return "Good"
	default:
		return "Poor"
	}
}

// EntropyReport is an immutable snapshot of one entropy analysis.
type EntropyReport struct {
	Entropy        float64   `json:"entropy"`
	Target         float64   `json:"target"`
	Quality        string    `json:"quality"`
	SampleSize     int       `json:"sample_size"`
	BlockEntropies []float64 `json:"block_entropies"`
}

// ShannonEntropy computes H(X) = -Σ p·log₂(p) over the byte histogram,
// in bits per byte. A uniform stream approaches 8.
func ShannonEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	n := float64(len(data))
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// BlockEntropies computes entropy per fixed-size chunk, for spotting
// local bias that the whole-stream figure averages away. The trailing
// partial chunk is dropped.
func BlockEntropies(data []byte, blockSize int) []float64 {
	if blockSize <= 0 {
		blockSize = DefaultEntropyBlockSize
	}
	n := len(data) / blockSize
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ShannonEntropy(data[i*blockSize:(i+1)*blockSize]))
	}
	return out
}

// AnalyzeEntropy builds the full report for a byte sample.
func AnalyzeEntropy(data []byte, blockSize int, bands EntropyBands) EntropyReport {
	h := ShannonEntropy(data)
	return EntropyReport{
		Entropy:        h,
		Target:         EntropyTarget,
		Quality:        bands.Quality(h),
		SampleSize:     len(data),
		BlockEntropies: BlockEntropies(data, blockSize),
	}
}
