package diagram

import (
	"log/slog"

	"github.com/vic/tromp/pkg/debruijn"
	"github.com/vic/tromp/pkg/lambda"
)

// Size is the extent of a term in grid units.
type Size struct {
	Width  int
	Height int
}

// Dims computes the extent of term without placing anything. The width is
// the number of variable occurrences.
func Dims(term debruijn.Term) (Size, error) {
	if err := debruijn.Validate(term); err != nil {
		return Size{}, err
	}
	return dims(term), nil
}

func dims(term debruijn.Term) Size {
	switch t := term.(type) {
	case debruijn.Var:
		return Size{Width: 1, Height: 0}
	case debruijn.Lam:
		body := dims(t.Body)
		return Size{Width: body.Width, Height: body.Height + 1}
	case debruijn.App:
		fun, arg := dims(t.Fun), dims(t.Arg)
		return Size{Width: fun.Width + arg.Width, Height: max(fun.Height, arg.Height) + 1}
	default:
		return Size{}
	}
}

// LayoutNamed converts term to de Bruijn form, keeping free variables, and
// lays it out.
func LayoutNamed(term lambda.Term, opts Options) (*Diagram, error) {
	db, err := debruijn.FromNamed(term, debruijn.WithPolicy(debruijn.Permissive))
	if err != nil {
		return nil, err
	}
	return Layout(db, opts)
}

// Layout places term on the grid. The same term and options always give
// the same diagram, ids included.
func Layout(term debruijn.Term, opts Options) (*Diagram, error) {
	size, err := Dims(term)
	if err != nil {
		return nil, err
	}
	if opts.Unit <= 0 {
		opts.Unit = DefaultOptions().Unit
	}

	b := &builder{
		opts: opts,
		d: &Diagram{
			Nodes:  []Node{},
			Links:  []Link{},
			Width:  size.Width,
			Height: size.Height,
			Unit:   opts.Unit,
		},
	}
	b.place(term, 0, 0)

	slog.Debug("laid out diagram",
		"width", b.d.Width,
		"height", b.d.Height,
		"nodes", len(b.d.Nodes),
		"links", len(b.d.Links))
	return b.d, nil
}

type binder struct {
	row  int
	node int
}

// builder is the mutable state of a single Layout call.
type builder struct {
	opts    Options
	d       *Diagram
	binders []binder
}

// placed describes a laid out subterm: its root node, the columns it
// consumed, and the positions of its leftmost and rightmost variables.
type placed struct {
	root  int
	width int
	first Point
	last  Point
}

func (b *builder) addNode(n Node) int {
	n.ID = len(b.d.Nodes)
	b.d.Nodes = append(b.d.Nodes, n)
	return n.ID
}

func (b *builder) addLink(l Link) {
	l.ID = len(b.d.Links)
	b.d.Links = append(b.d.Links, l)
}

func (b *builder) label(name string) string {
	if b.opts.ShowNames {
		return name
	}
	return ""
}

func (b *builder) place(term debruijn.Term, x, y int) placed {
	switch t := term.(type) {
	case debruijn.Var:
		bound := t.Index >= 0 && t.Index < len(b.binders)
		id := b.addNode(Node{
			Kind:  Variable,
			X:     x,
			Y:     y,
			Width: 1,
			Index: t.Index,
			Free:  !bound,
			Label: b.label(t.Name),
		})
		if bound {
			bd := b.binders[len(b.binders)-1-t.Index]
			b.addLink(Link{
				Kind:   Variable,
				Points: []Point{{X: x, Y: bd.row}, {X: x, Y: y}},
				From:   bd.node,
				To:     id,
			})
		}
		at := Point{X: x, Y: y}
		return placed{root: id, width: 1, first: at, last: at}

	case debruijn.Lam:
		id := b.addNode(Node{Kind: Abstraction, X: x, Y: y, Label: b.label(t.Name)})

		b.binders = append(b.binders, binder{row: y, node: id})
		body := b.place(t.Body, x, y+1)
		b.binders = b.binders[:len(b.binders)-1]

		b.d.Nodes[id].Width = body.width
		b.addLink(Link{
			Kind:   Abstraction,
			Points: []Point{{X: x, Y: y}, {X: x + body.width - 1, Y: y}},
			From:   id,
			To:     -1,
		})
		return placed{root: id, width: body.width, first: body.first, last: body.last}

	case debruijn.App:
		id := b.addNode(Node{Kind: Application, X: x, Y: y})

		fun := b.place(t.Fun, x, y+1)
		arg := b.place(t.Arg, x+fun.width, y+1)
		width := fun.width + arg.width
		b.d.Nodes[id].Width = width

		var from, to Point
		switch b.opts.LinkStyle {
		case NearestDeepest:
			row := max(y+1, fun.last.Y, arg.first.Y)
			from = Point{X: fun.last.X, Y: row}
			to = Point{X: arg.first.X, Y: row}
		default:
			from = Point{X: fun.first.X, Y: y + 1}
			to = Point{X: arg.first.X, Y: y + 1}
		}
		b.addLink(Link{
			Kind:   Application,
			Points: []Point{from, to},
			From:   fun.root,
			To:     arg.root,
		})
		return placed{root: id, width: width, first: fun.first, last: arg.last}

	default:
		return placed{}
	}
}
