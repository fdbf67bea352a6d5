package metrics

import (
	"bytes"
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/ckdf"
)

func keystreamBytes(t *testing.T, seed string, n int) []byte {
	t.Helper()
	mat, err := ckdf.Derive(context.Background(), seed,
		chaos.DefaultParams(), chaos.DefaultWeights(), n, ckdf.Options{})
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	return mat.Keystream
}

func TestSuiteOnKeystream(t *testing.T) {
	if testing.Short() {
		t.Skip("full battery is slow")
	}
	g := NewWithT(t)

	// Aggregate over several seeds: the battery runs at a 1%
	// significance level, so a single marginal verdict on one fixed
	// stream is expected noise; systemic bias is not.
	seeds := []string{"battery-seed-1", "battery-seed-2", "battery-seed-3"}
	totalPassed, totalRun := 0, 0
	for _, seed := range seeds {
		rep := RunSuite(keystreamBytes(t, seed, 10000))

		g.Expect(rep.Tests).To(HaveLen(7))
		g.Expect(rep.Summary.TotalTests).To(Equal(7))
		g.Expect(rep.Summary.Passed + rep.Summary.Failed).To(Equal(7))

		totalPassed += rep.Summary.Passed
		totalRun += rep.Summary.TotalTests
	}

	passRate := 100 * float64(totalPassed) / float64(totalRun)
	g.Expect(passRate).To(BeNumerically(">", 95.0))
}

func TestSuiteRejectsConstantStream(t *testing.T) {
	g := NewWithT(t)

	rep := RunSuite(make([]byte, 4096))
	g.Expect(rep.Tests["frequency"].Passed).To(BeFalse())
	g.Expect(rep.Tests["chi_square"].Passed).To(BeFalse())
	g.Expect(rep.Summary.PassRate).To(BeNumerically("<", 50.0))
}

func TestSuiteRejectsRepeatingPattern(t *testing.T) {
	g := NewWithT(t)

	rep := RunSuite(bytes.Repeat([]byte{0, 1, 2, 3}, 2500))
	g.Expect(rep.Tests["chi_square"].Passed).To(BeFalse())
	g.Expect(rep.Tests["autocorrelation"].Passed).To(BeFalse())
}

func TestFrequencyTestBalanced(t *testing.T) {
	g := NewWithT(t)

	// Perfectly alternating bits are balanced for monobit purposes.
	res := FrequencyTest(bytes.Repeat([]byte{0, 1}, 5000))
	g.Expect(res.Passed).To(BeTrue())
	g.Expect(res.PValue).To(BeNumerically("~", 1.0, 1e-9))
}

func TestRunsTestAlternating(t *testing.T) {
	g := NewWithT(t)

	// Strict alternation has the maximum possible number of runs and
	// must fail the runs test despite passing monobit.
	res := RunsTest(bytes.Repeat([]byte{0, 1}, 5000))
	g.Expect(res.Passed).To(BeFalse())
}

func TestSerialTestUniformPatterns(t *testing.T) {
	g := NewWithT(t)

	res := SerialTest(nil, 2)
	g.Expect(res.Passed).To(BeFalse(), "empty stream cannot pass")

	stream := keystreamBytes(t, "serial-seed", 2000)
	res = SerialTest(bitsOf(stream), 2)
	g.Expect(res.Statistic).To(BeNumerically(">=", 0))
}

func TestBlockFrequencyShortSequence(t *testing.T) {
	g := NewWithT(t)

	res := BlockFrequencyTest(make([]byte, 10), 128)
	g.Expect(res.Passed).To(BeFalse())
}

func TestBitsOf(t *testing.T) {
	g := NewWithT(t)

	bits := bitsOf([]byte{0xA5})
	g.Expect(bits).To(Equal([]byte{1, 0, 1, 0, 0, 1, 0, 1}))
}
