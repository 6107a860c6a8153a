package expr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidNode indicates a node that is nil, holds an out-of-range
	// primitive, or holds a primitive not allowed in its position.
	ErrInvalidNode = errors.New("expr: invalid node")

	// ErrMissingChild indicates a combinator with a nil child.
	ErrMissingChild = errors.New("expr: combinator child is nil")
)

// Coord is an evaluation point, normally with every component in [-1, 1].
type Coord struct {
	X, Y, T float64
}

// Node is an expression tree node. The only implementations are *Leaf and
// *Combinator.
type Node interface {
	Eval(c Coord) float64
	Prim() Primitive
	Children() []Node
	String() string

	sealed()
}

type Leaf struct {
	Op Primitive
}

func NewLeaf(op Primitive) *Leaf { return &Leaf{Op: op} }

func (l *Leaf) Eval(c Coord) float64 { return l.Op.Apply(c.X, c.Y, c.T) }
func (l *Leaf) Prim() Primitive      { return l.Op }
func (l *Leaf) Children() []Node     { return nil }
func (l *Leaf) String() string       { return l.Op.Name() }
func (l *Leaf) sealed()              {}

// Combinator applies Op to the results of its three children, which stand in
// for (x, y, t).
type Combinator struct {
	Op   Primitive
	Args [3]Node
}

func NewCombinator(op Primitive, a, b, c Node) *Combinator {
	return &Combinator{Op: op, Args: [3]Node{a, b, c}}
}

func (n *Combinator) Eval(c Coord) float64 {
	a := n.Args[0].Eval(c)
	b := n.Args[1].Eval(c)
	t := n.Args[2].Eval(c)
	return n.Op.Apply(a, b, t)
}

func (n *Combinator) Prim() Primitive { return n.Op }

func (n *Combinator) Children() []Node {
	return []Node{n.Args[0], n.Args[1], n.Args[2]}
}

func (n *Combinator) String() string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func (n *Combinator) sealed() {}

func writeNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Leaf:
		sb.WriteString(v.Op.Name())
	case *Combinator:
		sb.WriteString(v.Op.Name())
		sb.WriteByte('(')
		for i, arg := range v.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			if arg == nil {
				sb.WriteString("<nil>")
				continue
			}
			writeNode(sb, arg)
		}
		sb.WriteByte(')')
	}
}

// Validate checks that n is a well-formed tree: leaves hold leaf primitives,
// combinators hold combinator primitives and three non-nil children.
func Validate(n Node) error {
	return validate(n, 0)
}

func validate(n Node, level int) error {
	switch v := n.(type) {
	case *Leaf:
		if v == nil {
			return nilNodeError(level)
		}
		if !v.Op.IsLeaf() {
			return nodeError(level, n)
		}
	case *Combinator:
		if v == nil {
			return nilNodeError(level)
		}
		if !v.Op.IsCombinator() {
			return nodeError(level, n)
		}
		for i, arg := range v.Args {
			if arg == nil {
				return fmt.Errorf("%w: argument %d at level %d", ErrMissingChild, i, level)
			}
			if err := validate(arg, level+1); err != nil {
				return err
			}
		}
	default:
		return nilNodeError(level)
	}
	return nil
}

func nilNodeError(level int) error {
	return fmt.Errorf("%w: nil node at level %d", ErrInvalidNode, level)
}

func nodeError(level int, n Node) error {
	return fmt.Errorf("%w: %s at level %d", ErrInvalidNode, n.Prim(), level)
}

// Walk visits every node in pre order with its level (root is 0). Returning
// false from fn skips that node's children.
func Walk(n Node, fn func(n Node, level int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, level int, fn func(Node, int) bool) {
	if n == nil || !fn(n, level) {
		return
	}
	for _, c := range n.Children() {
		walk(c, level+1, fn)
	}
}

// Depth is the number of nodes on the longest root-to-leaf path. A single
// leaf has depth 1.
func Depth(n Node) int {
	d := 0
	Walk(n, func(_ Node, level int) bool {
		if level+1 > d {
			d = level + 1
		}
		return true
	})
	return d
}

// Size counts the nodes of n.
func Size(n Node) int {
	count := 0
	Walk(n, func(Node, int) bool {
		count++
		return true
	})
	return count
}

// LeafDepths returns the depth of every leaf in left-to-right order.
func LeafDepths(n Node) []int {
	var depths []int
	Walk(n, func(node Node, level int) bool {
		if _, ok := node.(*Leaf); ok {
			depths = append(depths, level+1)
		}
		return true
	})
	return depths
}
