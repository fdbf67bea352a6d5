package metrics

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/ckdf"
)

func TestShannonEntropyConstant(t *testing.T) {
	if h := ShannonEntropy(make([]byte, 1000)); h != 0 {
		t.Errorf("constant stream: expected 0, got %v", h)
	}
}

func TestShannonEntropyTwoSymbols(t *testing.T) {
	data := bytes.Repeat([]byte{0, 1}, 500)
	h := ShannonEntropy(data)
	if math.Abs(h-1.0) > 1e-9 {
		t.Errorf("two equiprobable symbols: expected 1 bit, got %v", h)
	}
}

func TestShannonEntropyUniform(t *testing.T) {
	// Every byte value exactly once: maximal entropy.
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	h := ShannonEntropy(data)
	if math.Abs(h-8.0) > 1e-9 {
		t.Errorf("uniform histogram: expected 8 bits/byte, got %v", h)
	}
}

func TestShannonEntropyEmpty(t *testing.T) {
	if h := ShannonEntropy(nil); h != 0 {
		t.Errorf("empty stream: expected 0, got %v", h)
	}
}

func TestKeystreamEntropyBound(t *testing.T) {
	mat, err := ckdf.Derive(context.Background(), "entropy-bound-seed",
		chaos.DefaultParams(), chaos.DefaultWeights(), 5000, ckdf.Options{})
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	h := ShannonEntropy(mat.Keystream)
	if h < 7.9 {
		t.Errorf("keystream entropy %v below 7.9 bits/byte", h)
	}
}

func TestBlockEntropies(t *testing.T) {
	data := make([]byte, 100)
	blocks := BlockEntropies(data, 16)
	if len(blocks) != 6 {
		t.Fatalf("expected 6 full blocks, got %d", len(blocks))
	}
	for i, h := range blocks {
		if h != 0 {
			t.Errorf("block %d: expected 0 for zero data, got %v", i, h)
		}
	}
}

func TestEntropyBandsQuality(t *testing.T) {
	bands := DefaultEntropyBands()
	tests := []struct {
		h    float64
		want string
	}{
		{7.999, "Excellent"},
		{7.99, "Excellent"},
		{7.6, "Good"},
		{7.5, "Good"},
		{6.0, "Poor"},
		{0, "Poor"},
	}
	for _, tt := range tests {
		if got := bands.Quality(tt.h); got != tt.want {
			t.Errorf("quality(%v) = %s, want %s", tt.h, got, tt.want)
		}
	}
}

func TestAnalyzeEntropyReport(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	rep := AnalyzeEntropy(data, 0, DefaultEntropyBands())
	if rep.SampleSize != 256 {
		t.Errorf("sample size %d", rep.SampleSize)
	}
	if rep.Target != EntropyTarget {
		t.Errorf("target %v", rep.Target)
	}
	if len(rep.BlockEntropies) != 256/DefaultEntropyBlockSize {
		t.Errorf("block count %d", len(rep.BlockEntropies))
	}
}
