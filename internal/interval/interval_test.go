package interval

import (
	"errors"
	"math"
	"testing"
)

func TestRemap(t *testing.T) {
	tests := []struct {
		name                          string
		val, inLo, inHi, outLo, outHi float64
		expected                      float64
	}{
		{"unit to ten", 0.5, 0, 1, 0, 10, 5.0},
		{"shifted", 5, 4, 6, 0, 2, 1.0},
		{"shifted offset", 5, 4, 6, 1, 2, 1.5},
		{"pixel to unit", 0, 0, 350, -1, 1, -1.0},
		{"frame midpoint", 25, 0, 50, -1, 1, 0.0},
		{"reversed output", 0.25, 0, 1, 1, 0, 0.75},
		{"outside input", 2, 0, 1, 0, 10, 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Remap(tt.val, tt.inLo, tt.inHi, tt.outLo, tt.outHi)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Remap(%v, %v, %v, %v, %v) = %v, want %v",
					tt.val, tt.inLo, tt.inHi, tt.outLo, tt.outHi, got, tt.expected)
			}
		})
	}
}

func TestRemapIdentity(t *testing.T) {
	vals := []float64{0.1, -0.3, 1e-9, 123.456, -7, 0}
	bounds := []Interval{{0.3, 0.7}, {-1, 1}, {4, 6}, {1e6, -1e6}}

	for _, iv := range bounds {
		for _, v := range vals {
			got, err := Remap(v, iv.Lo, iv.Hi, iv.Lo, iv.Hi)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != v {
				t.Errorf("identity remap on %s changed %v to %v", iv, v, got)
			}
		}
	}
}

func TestRemapDegenerate(t *testing.T) {
	_, err := Remap(1, 3, 3, 0, 1)
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}

	if _, err := NewMapping(Interval{0, 0}, Unit); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate from NewMapping, got %v", err)
	}
}

func TestMappingMonotonic(t *testing.T) {
	m, err := NewMapping(Interval{0, 100}, Unit)
	if err != nil {
		t.Fatal(err)
	}

	prev := math.Inf(-1)
	for i := 0; i <= 100; i++ {
		v := m.Map(float64(i))
		if v <= prev {
			t.Fatalf("Map not increasing at %d: %v <= %v", i, v, prev)
		}
		prev = v
	}
}

func TestMustMappingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for degenerate interval")
		}
	}()
	MustMapping(Interval{2, 2}, Unit)
}
