// Package interval implements affine remapping between closed intervals.
package interval

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when an input interval has zero width.
var ErrDegenerate = errors.New("interval: degenerate input interval (zero width)")

// Interval is the closed range [Lo, Hi]. Lo may be greater than Hi, in which
// case the interval is reversed.
type Interval struct {
	Lo, Hi float64
}

// Unit is the signed unit interval [-1, 1] that coordinates are normalized to.
var Unit = Interval{Lo: -1, Hi: 1}

func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// Valid reports whether iv can be used as the input side of a mapping.
func (iv Interval) Valid() bool { return iv.Hi != iv.Lo }

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Lo, iv.Hi)
}

// Remap rescales val from [inLo, inHi] to [outLo, outHi].
//
//	Remap(0.5, 0, 1, 0, 10) == 5
//	Remap(5, 4, 6, 1, 2)    == 1.5
func Remap(val, inLo, inHi, outLo, outHi float64) (float64, error) {
	m, err := NewMapping(Interval{inLo, inHi}, Interval{outLo, outHi})
	if err != nil {
		return 0, err
	}
	return m.Map(val), nil
}

// Mapping is a validated affine map from one interval onto another.
type Mapping struct {
	in, out  Interval
	scale    float64
	identity bool
}

func NewMapping(in, out Interval) (Mapping, error) {
	if !in.Valid() {
		return Mapping{}, fmt.Errorf("%w: %s", ErrDegenerate, in)
	}
	return Mapping{
		in:       in,
		out:      out,
		scale:    out.Width() / in.Width(),
		identity: in == out,
	}, nil
}

// MustMapping is like NewMapping but panics on a degenerate input interval.
// Intended for package-level mappings with constant bounds.
func MustMapping(in, out Interval) Mapping {
	m, err := NewMapping(in, out)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Mapping) Map(val float64) float64 {
	// (val-lo)+lo is not exact in floating point
	if m.identity {
		return val
	}
	return m.out.Lo + (val-m.in.Lo)*m.scale
}

func (m Mapping) In() Interval  { return m.in }
func (m Mapping) Out() Interval { return m.out }
