// Package diagram lays out de Bruijn terms as Tromp diagrams on an integer
// grid.
//
// Abstractions are horizontal bars spanning the columns of their body,
// variables are vertical lines dropping from the row of their binder, and
// applications join the two sides with a horizontal connector. Coordinates
// are grid indices; Diagram.Scale turns them into renderer units.
package diagram

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Kind tags nodes and links.
type Kind int

const (
	Abstraction Kind = iota
	Variable
	Application
)

func (k Kind) String() string {
	switch k {
	case Abstraction:
		return "abstraction"
	case Variable:
		return "variable"
	case Application:
		return "application"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "abstraction":
		*k = Abstraction
	case "variable":
		*k = Variable
	case "application":
		*k = Application
	default:
		return fmt.Errorf("unknown diagram kind %q", text)
	}
	return nil
}

// LinkStyle chooses where an application connector attaches.
type LinkStyle int

const (
	// Leftmost joins the leftmost variable column of each side, on the row
	// just below the application. This is the standard convention.
	Leftmost LinkStyle = iota
	// NearestDeepest joins the rightmost variable of the function side and
	// the leftmost variable of the argument side, on the deeper of their
	// rows.
	NearestDeepest
)

func (s LinkStyle) String() string {
	switch s {
	case Leftmost:
		return "leftmost"
	case NearestDeepest:
		return "nearest-deepest"
	default:
		return fmt.Sprintf("LinkStyle(%d)", int(s))
	}
}

// ParseLinkStyle accepts "leftmost" or "nearest-deepest"; "nearestDeepest"
// and "NEAREST_DEEPEST" work too.
func ParseLinkStyle(s string) (LinkStyle, error) {
	switch strcase.ToKebab(strings.TrimSpace(s)) {
	case "leftmost", "standard", "":
		return Leftmost, nil
	case "nearest-deepest", "nearest", "alternative":
		return NearestDeepest, nil
	default:
		return Leftmost, fmt.Errorf("unknown link style %q (want leftmost or nearest-deepest)", s)
	}
}

// Options configures Layout.
type Options struct {
	// Unit is the size of one grid unit handed to renderers.
	Unit float64
	// LinkStyle is the application connector convention.
	LinkStyle LinkStyle
	// ShowNames copies the original binder and variable names into the
	// node labels.
	ShowNames bool
}

// DefaultOptions returns a unit of 10, leftmost links and no labels.
func DefaultOptions() Options {
	return Options{Unit: 10, LinkStyle: Leftmost}
}

// Point is a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node is a positioned primitive.
type Node struct {
	ID    int    `json:"id"`
	Kind  Kind   `json:"kind"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Width int    `json:"width"`
	Index int    `json:"index"`
	Free  bool   `json:"free,omitempty"`
	Label string `json:"label,omitempty"`
}

// Link is a polyline between nodes. From and To are node ids; To is -1 for
// abstraction bars, which belong to a single node.
type Link struct {
	ID     int     `json:"id"`
	Kind   Kind    `json:"kind"`
	Points []Point `json:"points"`
	From   int     `json:"from"`
	To     int     `json:"to"`
}

// Diagram is the layout of one term. Rows run from 0 to Height inclusive.
type Diagram struct {
	Nodes  []Node  `json:"nodes"`
	Links  []Link  `json:"links"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Unit   float64 `json:"unit"`
}

// Scale converts a grid point to renderer units.
func (d *Diagram) Scale(p Point) (float64, float64) {
	return float64(p.X) * d.Unit, float64(p.Y) * d.Unit
}

// Node returns the node with the given id.
func (d *Diagram) Node(id int) (Node, bool) {
	if id < 0 || id >= len(d.Nodes) {
		return Node{}, false
	}
	return d.Nodes[id], true
}

// LinksTo returns the links of kind whose To endpoint is node id.
func (d *Diagram) LinksTo(kind Kind, id int) []Link {
	var res []Link
	for _, l := range d.Links {
		if l.Kind == kind && l.To == id {
			res = append(res, l)
		}
	}
	return res
}
