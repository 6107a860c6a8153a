package expr

import (
	"fmt"
	"math"
)

// Primitive identifies one of the fixed ternary functions f(x, y, t).
type Primitive uint8

const (
	SelectX Primitive = iota
	SelectY
	SelectT
	Product
	Average
	CosPi
	SinPi
	Square
	Root

	numPrimitives
)

var (
	// LeafPrimitives may only appear at the leaves of a tree.
	LeafPrimitives = []Primitive{SelectX, SelectY, SelectT}

	// CombinatorPrimitives may only appear at internal nodes.
	CombinatorPrimitives = []Primitive{Product, Average, CosPi, SinPi, Square, Root}
)

var primitiveNames = [numPrimitives]string{
	SelectX: "x",
	SelectY: "y",
	SelectT: "t",
	Product: "prod",
	Average: "avg",
	CosPi:   "cos_pi",
	SinPi:   "sin_pi",
	Square:  "square",
	Root:    "root",
}

func (p Primitive) Valid() bool { return p < numPrimitives }

func (p Primitive) IsLeaf() bool { return p <= SelectT }

func (p Primitive) IsCombinator() bool { return p >= Product && p < numPrimitives }

func (p Primitive) Name() string {
	if !p.Valid() {
		return fmt.Sprintf("prim(%d)", uint8(p))
	}
	return primitiveNames[p]
}

func (p Primitive) String() string { return p.Name() }

// Apply evaluates the primitive. Every primitive is defined for all finite
// inputs; Root takes the absolute value before the square root.
func (p Primitive) Apply(x, y, t float64) float64 {
	switch p {
	case SelectX:
		return x
	case SelectY:
		return y
	case SelectT:
		return t
	case Product:
		return x * y * t
	case Average:
		return (x + y + t) / 3
	case CosPi:
		return math.Cos(math.Pi * x)
	case SinPi:
		return math.Sin(math.Pi * x)
	case Square:
		return x * x
	case Root:
		return math.Sqrt(math.Abs(x))
	default:
		return 0
	}
}
