// Package expr builds and evaluates random expression trees over (x, y, t).
//
// A tree is made of two node kinds:
//
//   - [Leaf]: a projection primitive (x, y or t)
//   - [Combinator]: one of the six combining primitives applied to the
//     results of exactly three child nodes
//
// Trees are built by a [Builder] at a fixed depth and are immutable once
// built. Every root-to-leaf path of a tree built at depth d visits exactly d
// nodes.
//
// # Example
//
//	b := expr.NewSeededBuilder(42)
//	ch := b.BuildChannels(7)
//	v := ch.R.Eval(expr.Coord{X: 0.1, Y: -0.4, T: 0})
//
// # Evaluation
//
// [Node.Eval] walks the tree recursively in post order. [Compile] flattens a
// tree into a postfix [Program] evaluated with an explicit stack; both give
// identical results. [Tree] carries the compiled program and is what the
// renderer evaluates per pixel.
//
// # Thread Safety
//
// Nodes, Programs and Trees are read-only after construction and safe for
// concurrent evaluation. Program.Eval allocates its stack per call; use
// [Program.EvalWith] with a caller-owned [Stack] in hot loops. A Builder is
// NOT safe for concurrent use.
package expr
