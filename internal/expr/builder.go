package expr

import (
	"math/rand"
	"time"
)

// Tree is the root of one channel's expression together with its compiled
// program.
type Tree struct {
	root Node
	prog Program
}

// NewTree validates and compiles root.
func NewTree(root Node) (Tree, error) {
	prog, err := Compile(root)
	if err != nil {
		return Tree{}, err
	}
	return Tree{root: root, prog: prog}, nil
}

func (t Tree) Root() Node           { return t.root }
func (t Tree) Program() Program     { return t.prog }
func (t Tree) Depth() int           { return Depth(t.root) }
func (t Tree) Size() int            { return Size(t.root) }
func (t Tree) String() string       { return t.root.String() }
func (t Tree) Eval(c Coord) float64 { return t.prog.Eval(c) }

// EvalWith evaluates the compiled program with caller-owned scratch space.
func (t Tree) EvalWith(s *Stack, c Coord) float64 { return t.prog.EvalWith(s, c) }

// Channels holds one tree per color channel.
type Channels struct {
	R, G, B Tree
}

// Strings returns the channel expressions in R, G, B order.
func (ch Channels) Strings() [3]string {
	return [3]string{ch.R.String(), ch.G.String(), ch.B.String()}
}

// Builder grows random trees from the fixed primitive pools.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder uses rng for every choice. A nil rng is replaced by a
// time-seeded source, so trees differ between runs.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{rng: rng}
}

// NewSeededBuilder returns a Builder whose trees are reproducible for seed.
func NewSeededBuilder(seed int64) *Builder {
	return NewBuilder(rand.New(rand.NewSource(seed)))
}

// Build returns a tree whose every root-to-leaf path visits exactly depth
// nodes. depth <= 1 yields a single leaf.
func (b *Builder) Build(depth int) Tree {
	root := b.BuildNode(depth)
	// built nodes are always valid, Compile cannot fail
	prog, _ := Compile(root)
	return Tree{root: root, prog: prog}
}

func (b *Builder) BuildNode(depth int) Node {
	if depth <= 1 {
		return NewLeaf(LeafPrimitives[b.rng.Intn(len(LeafPrimitives))])
	}
	op := CombinatorPrimitives[b.rng.Intn(len(CombinatorPrimitives))]
	return NewCombinator(op,
		b.BuildNode(depth-1),
		b.BuildNode(depth-1),
		b.BuildNode(depth-1),
	)
}

// BuildChannels builds the red, green and blue trees in that order.
func (b *Builder) BuildChannels(depth int) Channels {
	return Channels{
		R: b.Build(depth),
		G: b.Build(depth),
		B: b.Build(depth),
	}
}
