// Package live is a terminal monitor that watches the hybrid mixer
// converge: it streams raw bytes from the chaotic source and plots the
// running Shannon entropy as the sample grows.
package live

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/ckdf"
	"github.com/vivekjain488/Butterfly/internal/metrics"
	"github.com/vivekjain488/Butterfly/internal/viz"
)

const (
	bytesPerTick    = 256
	historyCapacity = 600
	graphHeight     = 10
	graphWidth      = 60
)

type TickMsg time.Time

// Model holds the mixer state and the entropy history for the plot.
type Model struct {
	seed    string
	params  chaos.Params
	weights chaos.Weights
	burnIn  int

	hybrid  chaos.Hybrid
	sample  []byte
	history []float64
	running bool
	steps   int
}

func NewModel(seed string, params chaos.Params, weights chaos.Weights, burnIn int) Model {
	m := Model{
		seed:    seed,
		params:  params,
		weights: weights,
		burnIn:  burnIn,
		history: make([]float64, 0, historyCapacity),
		running: true,
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	ic := ckdf.InitialConditions(m.seed, ckdf.SaltFor(m.seed))
	m.hybrid = chaos.NewHybrid(m.params, m.weights.Normalized(), ic)
	m.hybrid.BurnIn(m.burnIn)
	m.sample = m.sample[:0]
	m.history = m.history[:0]
	m.steps = 0
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < bytesPerTick; i++ {
				m.sample = append(m.sample, byte(255*m.hybrid.Step()))
			}
			m.steps += bytesPerTick
			m.history = append(m.history, metrics.ShannonEntropy(m.sample))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(viz.HeaderStyle.Render("Keystream Entropy Monitor") + "\n")

	entropy := 0.0
	if len(m.history) > 0 {
		entropy = m.history[len(m.history)-1]
	}
	status := "running"
	if !m.running {
		status = "paused"
	}

	sb.WriteString(viz.LabelStyle.Render("Bytes sampled") + viz.ValueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	sb.WriteString(viz.LabelStyle.Render("Entropy") + viz.ValueStyle.Render(fmt.Sprintf("%.4f / 8.0 bits/byte", entropy)) + "\n")
	sb.WriteString(viz.LabelStyle.Render("Status") + viz.ValueStyle.Render(status) + "\n")

	if len(m.history) >= 2 {
		plot := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("entropy convergence"))
		sb.WriteString(viz.GraphStyle.Render(plot) + "\n")
	}

	sb.WriteString(viz.HelpStyle.Render("space pause · r reset · q quit") + "\n")
	return sb.String()
}

// Run starts the monitor in the alternate screen.
func Run(seed string, params chaos.Params, weights chaos.Weights, burnIn int) error {
	p := tea.NewProgram(NewModel(seed, params, weights, burnIn), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
