package viz

import "math"

// LevelSource reports the current signal level driving frame selection.
type LevelSource interface {
	Level() float64
}

// Select maps a level to a frame index: int(level/scale) mod n. The result is
// always in [0, n). A non-positive scale is treated as 1.
func Select(level, scale float64, n int) int {
	if n <= 0 {
		return 0
	}
	if scale <= 0 {
		scale = 1
	}
	q := math.Trunc(level / scale)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	k := int(math.Mod(q, float64(n)))
	if k < 0 {
		k += n
	}
	return k
}

// DecayLevel is a level that grows on Bump and shrinks by a constant factor
// on every Tick.
type DecayLevel struct {
	level float64
	decay float64
}

func NewDecayLevel(decay float64) *DecayLevel {
	return &DecayLevel{decay: min(max(decay, 0), 1)}
}

func (d *DecayLevel) Level() float64 { return d.level }

func (d *DecayLevel) Bump(amount float64) {
	d.level = max(d.level+amount, 0)
}

func (d *DecayLevel) Tick() {
	d.level *= d.decay
	if d.level < 1e-6 {
		d.level = 0
	}
}

// ConstLevel is a fixed level.
type ConstLevel float64

func (c ConstLevel) Level() float64 { return float64(c) }
