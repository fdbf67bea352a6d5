// Package viz renders analysis reports for the terminal using lipgloss
// styles and asciigraph plots.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/vivekjain488/Butterfly/internal/metrics"
)

const graphWidth = 60

func line(label string, format string, args ...any) string {
	return LabelStyle.Render(label) + ValueStyle.Render(fmt.Sprintf(format, args...)) + "\n"
}

// RenderEntropy formats an entropy report with a block-entropy plot.
func RenderEntropy(rep metrics.EntropyReport) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Entropy Analysis") + "\n")
	sb.WriteString(line("Shannon entropy", "%.4f bits/byte", rep.Entropy))
	sb.WriteString(line("Target", "%.2f bits/byte", rep.Target))
	sb.WriteString(line("Sample size", "%d bytes", rep.SampleSize))
	sb.WriteString(LabelStyle.Render("Quality") + QualityStyle(rep.Quality).Render(rep.Quality) + "\n")

	if len(rep.BlockEntropies) >= 2 {
		plot := asciigraph.Plot(rep.BlockEntropies,
			asciigraph.Height(8),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("per-block entropy"))
		sb.WriteString(GraphStyle.Render(plot) + "\n")
	}
	return sb.String()
}

// RenderAvalanche formats an avalanche report.
func RenderAvalanche(rep metrics.AvalancheReport) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Avalanche Effect") + "\n")
	sb.WriteString(line("Mean flip", "%.2f%%", rep.MeanFlipPercentage))
	sb.WriteString(line("Std deviation", "%.2f%%", rep.StdFlipPercentage))
	sb.WriteString(line("Min / max flips", "%d / %d bits", rep.MinFlip, rep.MaxFlip))
	sb.WriteString(line("Bits per trial", "%d", rep.TotalBits))
	sb.WriteString(LabelStyle.Render("Quality") + QualityStyle(rep.Quality).Render(rep.Quality) + "\n")
	sb.WriteString(HelpStyle.Render("ideal mean is 50%: one seed bit should flip half the ciphertext") + "\n")
	return sb.String()
}

// RenderLyapunov formats per-map exponent estimates.
func RenderLyapunov(results map[string]metrics.LyapunovResult) string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Lyapunov Exponents") + "\n")
	for _, name := range names {
		res := results[name]
		verdict := "chaotic"
		style := passStyle
		if !res.Chaotic {
			verdict = "not chaotic"
			style = failStyle
		}
		sb.WriteString(LabelStyle.Render(name) +
			ValueStyle.Render(fmt.Sprintf("λ = %+.4f  ", res.Lambda)) +
			style.Render(verdict) + "\n")
	}
	return sb.String()
}

// RenderStatistical formats the randomness suite with per-test verdicts.
func RenderStatistical(tests map[string]metrics.TestResult, summary metrics.SuiteSummary) string {
	names := make([]string, 0, len(tests))
	for name := range tests {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Statistical Test Suite") + "\n")
	for _, name := range names {
		res := tests[name]
		sb.WriteString(LabelStyle.Render(name) +
			PassFail(res.Passed) +
			ValueStyle.Render(fmt.Sprintf("  p = %.4f", res.PValue)) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(line("Passed", "%d / %d", summary.Passed, summary.TotalTests))
	sb.WriteString(LabelStyle.Render("Pass rate") +
		QualityStyle(passRateQuality(summary.PassRate)).Render(fmt.Sprintf("%.1f%%", summary.PassRate)) + "\n")
	return sb.String()
}

// RenderWarnings formats degraded-security warnings, or nothing.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(WarningStyle.Render("warning: "+w) + "\n")
	}
	return sb.String()
}

func passRateQuality(rate float64) string {
	switch {
	case rate >= 95:
		return "Excellent"
	case rate >= 80:
		return "Good"
	default:
		return "Poor"
	}
}
