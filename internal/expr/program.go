package expr

// Program is a tree flattened into postfix order. Leaf primitives push their
// projection of the coordinate; combinator primitives pop three values and
// push their result.
type Program struct {
	ops      []Primitive
	maxStack int
}

// Stack is scratch space for Program.EvalWith.
type Stack struct {
	vals []float64
}

// Compile flattens n. It fails only if n is not a valid tree.
func Compile(n Node) (Program, error) {
	if err := Validate(n); err != nil {
		return Program{}, err
	}
	var p Program
	p.emit(n, 0)
	return p, nil
}

func (p *Program) emit(n Node, height int) {
	if c, ok := n.(*Combinator); ok {
		for i, arg := range c.Args {
			p.emit(arg, height+i)
		}
	}
	p.ops = append(p.ops, n.Prim())
	if height+1 > p.maxStack {
		p.maxStack = height + 1
	}
}

func (p Program) Len() int { return len(p.ops) }

// MaxStack is the deepest the value stack gets while evaluating p.
func (p Program) MaxStack() int { return p.maxStack }

func (p Program) Eval(c Coord) float64 {
	s := Stack{vals: make([]float64, 0, p.maxStack)}
	return p.EvalWith(&s, c)
}

// EvalWith evaluates p reusing s. s must not be shared between goroutines.
func (p Program) EvalWith(s *Stack, c Coord) float64 {
	vals := s.vals[:0]
	for _, op := range p.ops {
		if op.IsLeaf() {
			vals = append(vals, op.Apply(c.X, c.Y, c.T))
			continue
		}
		top := len(vals) - 3
		vals[top] = op.Apply(vals[top], vals[top+1], vals[top+2])
		vals = vals[:top+1]
	}
	s.vals = vals
	if len(vals) == 0 {
		return 0
	}
	return vals[0]
}
