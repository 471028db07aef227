// Package render draws laid out diagrams for terminals and browsers.
package render

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/vic/tromp/pkg/diagram"
)

// TextOptions configures Text.
type TextOptions struct {
	// Color styles each primitive kind; without it the output is plain.
	Color bool
}

var (
	abstractionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	variableStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	applicationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	freeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	barRune  = '─'
	lineRune = '│'
	freeRune = '•'
)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// Text draws d with box-drawing characters. Each grid column is two
// characters wide and each grid row two lines tall; application connectors
// sit on the odd line just above the row they join.
func Text(d *diagram.Diagram, opts TextOptions) string {
	cols := 2 * max(d.Width, 1)
	rows := 2*d.Height + 1
	canvas := make([][]cell, rows)
	for i := range canvas {
		canvas[i] = make([]cell, cols)
		for j := range canvas[i] {
			canvas[i][j] = cell{r: ' '}
		}
	}
	set := func(row, col int, r rune, style *lipgloss.Style) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		canvas[row][col] = cell{r: r, style: style}
	}

	for _, l := range d.Links {
		if l.Kind != diagram.Abstraction {
			continue
		}
		from, to := l.Points[0], l.Points[len(l.Points)-1]
		for c := 2 * from.X; c <= 2*to.X+1; c++ {
			set(2*from.Y, c, barRune, &abstractionStyle)
		}
	}
	for _, l := range d.Links {
		if l.Kind != diagram.Application {
			continue
		}
		from, to := l.Points[0], l.Points[len(l.Points)-1]
		for c := 2 * from.X; c <= 2*to.X; c++ {
			set(2*from.Y-1, c, barRune, &applicationStyle)
		}
	}
	for _, l := range d.Links {
		if l.Kind != diagram.Variable {
			continue
		}
		from, to := l.Points[0], l.Points[len(l.Points)-1]
		for r := 2*from.Y + 1; r <= 2*to.Y; r++ {
			set(r, 2*from.X, lineRune, &variableStyle)
		}
	}
	for _, n := range d.Nodes {
		if n.Kind == diagram.Variable && n.Free {
			set(2*n.Y, 2*n.X, freeRune, &freeStyle)
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(renderLine(line, opts.Color))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// renderLine styles runs of cells sharing a style and drops trailing blanks.
func renderLine(line []cell, color bool) string {
	end := len(line)
	for end > 0 && line[end-1].r == ' ' {
		end--
	}
	line = line[:end]

	var sb strings.Builder
	for i := 0; i < len(line); {
		j := i
		var run strings.Builder
		for j < len(line) && line[j].style == line[i].style {
			run.WriteRune(line[j].r)
			j++
		}
		if line[i].style != nil {
			sb.WriteString(line[i].style.Render(run.String()))
		} else {
			sb.WriteString(run.String())
		}
		i = j
	}
	if !color {
		return ansi.Strip(sb.String())
	}
	return sb.String()
}

// Labels lists the labelled nodes of d, one per line, as `kind x,y name`.
// Text has no room for names inside the canvas, so callers print these
// below it.
func Labels(d *diagram.Diagram) string {
	var sb strings.Builder
	for _, n := range d.Nodes {
		if n.Label == "" {
			continue
		}
		kind := n.Kind.String()
		sb.WriteString(kind)
		sb.WriteString(strings.Repeat(" ", max(0, 12-ansi.StringWidth(kind))))
		sb.WriteString(strconv.Itoa(n.X))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(n.Y))
		sb.WriteByte(' ')
		sb.WriteString(n.Label)
		sb.WriteByte('\n')
	}
	return sb.String()
}
