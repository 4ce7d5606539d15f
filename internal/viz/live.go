package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type TickMsg time.Time

// Live animates a completed sweep, revealing the evaluation grid
// sample by sample.
type Live struct {
	title   string
	times   []float64
	series  [][]float64
	head    int
	rate    time.Duration
	running bool
}

func NewLive(title string, times []float64, series [][]float64, fps int) Live {
	if fps <= 0 {
		fps = 30
	}
	return Live{
		title:   title,
		times:   times,
		series:  series,
		head:    2,
		rate:    time.Second / time.Duration(fps),
		running: true,
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(m.rate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				return m, m.tick()
			}
			return m, nil
		case "r":
			m.head = 2
			return m, nil
		}
	case TickMsg:
		if m.running && m.head < len(m.times) {
			m.head++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Live) View() string {
	status := "playing"
	if !m.running {
		status = PausedStyle.Render("paused")
	}

	view := HeaderStyle.Render(m.title) + "\n"
	view += SweepWindow(m.series, m.head, fmt.Sprintf("t = %.4f", m.times[m.head-1])) + "\n"
	view += Row("status", status) + "\n"
	view += Row("sample", fmt.Sprintf("%d / %d", m.head, len(m.times))) + "\n"
	view += Legend(len(m.series)) + "\n"
	view += HelpStyle.Render("space pause · r restart · q quit")
	return view
}

// RunLive starts the viewer and blocks until the user quits.
func RunLive(title string, times []float64, series [][]float64, fps int) error {
	p := tea.NewProgram(NewLive(title, times, series, fps))
	_, err := p.Run()
	return err
}
