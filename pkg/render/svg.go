package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/vic/tromp/pkg/diagram"
)

var svgStroke = map[diagram.Kind]string{
	diagram.Abstraction: "#5f5fff",
	diagram.Variable:    "#00d787",
	diagram.Application: "#ffaf00",
}

// SVG writes d as a standalone SVG document. Grid points are scaled by the
// diagram unit and shifted half a unit so lines sit in the middle of their
// column; abstraction bars cover their full columns.
func SVG(w io.Writer, d *diagram.Diagram) error {
	bw := bufio.NewWriter(w)
	u := d.Unit
	width := float64(max(d.Width, 1)) * u
	height := float64(d.Height+1) * u

	center := func(p diagram.Point) (float64, float64) {
		x, y := d.Scale(p)
		return x + u/2, y + u/2
	}

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `<g stroke-width="%g" stroke-linecap="square" fill="none">`+"\n", u/5)

	for _, l := range d.Links {
		from, to := l.Points[0], l.Points[len(l.Points)-1]
		x1, y1 := center(from)
		x2, y2 := center(to)
		if l.Kind == diagram.Abstraction {
			x1 -= u / 2
			x2 += u / 2
		}
		fmt.Fprintf(bw, `<line class="%s" x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s"/>`+"\n",
			l.Kind, x1, y1, x2, y2, svgStroke[l.Kind])
	}
	fmt.Fprintln(bw, `</g>`)

	for _, n := range d.Nodes {
		if n.Kind == diagram.Variable && n.Free {
			cx, cy := center(diagram.Point{X: n.X, Y: n.Y})
			fmt.Fprintf(bw, `<circle class="free" cx="%g" cy="%g" r="%g" fill="#ff0000"/>`+"\n", cx, cy, u/4)
		}
		if n.Label != "" {
			x, y := d.Scale(diagram.Point{X: n.X, Y: n.Y})
			fmt.Fprintf(bw, `<text class="%s" x="%g" y="%g" font-size="%g">%s</text>`+"\n",
				n.Kind, x, y+u/3, u/2, html.EscapeString(n.Label))
		}
	}

	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}
