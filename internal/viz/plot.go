package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	plotHeight = 16
	plotWidth  = 72
)

// Sweep renders one series per body over the evaluation grid.
func Sweep(series [][]float64, caption string) string {
	if len(series) == 0 {
		return ""
	}
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
	return GraphStyle.Render(graph)
}

// SweepWindow renders the first n samples of every series, padding the
// frame so the live viewer keeps a stable width while it fills in.
func SweepWindow(series [][]float64, n int, caption string) string {
	if len(series) == 0 || n < 2 {
		return ""
	}
	window := make([][]float64, len(series))
	for i, row := range series {
		if n > len(row) {
			n = len(row)
		}
		window[i] = row[:n]
	}
	graph := asciigraph.PlotMany(window,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
	return GraphStyle.Render(graph)
}

// Legend names each plotted body.
func Legend(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += "  "
		}
		s += fmt.Sprintf("body%d", i)
	}
	return HelpStyle.Render(s)
}
