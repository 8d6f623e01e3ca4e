package kernel

import (
	"math"
	"testing"
)

func TestStampHardEdged(t *testing.T) {
	tests := []struct {
		hardness float64
		expect   bool
	}{
		{0, false},
		{0.5, false},
		{0.89, false},
		{0.9, true},
		{1, true},
	}
	for _, tt := range tests {
		s := Stamp{Hardness: tt.hardness}
		if got := s.HardEdged(); got != tt.expect {
			t.Errorf("Stamp{Hardness: %v}.HardEdged() = %v, want %v", tt.hardness, got, tt.expect)
		}
	}
}

// A hard brush of diameter 20 centered on a pixel grid must cover exactly
// the 20x20 pixel square around the center, with weight 1 throughout and no
// falloff.
func TestWeightHardSquareExact(t *testing.T) {
	s := Stamp{X: 50, Y: 50, Radius: 10, Strength: 1, Hardness: 1}

	covered := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			w := s.Weight(float64(x)+0.5, float64(y)+0.5)
			inside := x >= 40 && x < 60 && y >= 40 && y < 60
			switch {
			case inside && w != 1:
				t.Fatalf("Weight at inside pixel (%d,%d) = %v, want 1", x, y, w)
			case !inside && w != 0:
				t.Fatalf("Weight at outside pixel (%d,%d) = %v, want 0", x, y, w)
			}
			if w != 0 {
				covered++
			}
		}
	}
	if covered != 400 {
		t.Errorf("hard square covers %d pixels, want 400", covered)
	}
}

func TestWeightSoftStrictlyDecreasing(t *testing.T) {
	for _, hardness := range []float64{0, 0.3, 0.5, 0.89} {
		s := Stamp{X: 0, Y: 0, Radius: 10, Hardness: hardness}

		if w := s.Weight(0, 0); w != 1 {
			t.Errorf("hardness %v: center weight = %v, want 1", hardness, w)
		}

		prev := s.Weight(0, 0)
		for d := 0.25; d < 10; d += 0.25 {
			w := s.Weight(d, 0)
			if w >= prev {
				t.Fatalf("hardness %v: weight at d=%v is %v, not below %v", hardness, d, w, prev)
			}
			prev = w
		}
	}
}

func TestWeightSoftZeroOutsideRadius(t *testing.T) {
	s := Stamp{X: 0, Y: 0, Radius: 10, Hardness: 0.5}
	for _, d := range []float64{10, 10.01, 15, 100} {
		if w := s.Weight(d, 0); w != 0 {
			t.Errorf("weight at distance %v = %v, want 0", d, w)
		}
	}
	// The circle bounds the footprint even though the bounding box is square.
	if w := s.Weight(8, 8); w != 0 {
		t.Errorf("weight at corner distance %v = %v, want 0", math.Hypot(8, 8), w)
	}
}

func TestStampBounds(t *testing.T) {
	tests := []struct {
		name           string
		stamp          Stamp
		w, h           int
		x0, y0, x1, y1 int
	}{
		{"interior", Stamp{X: 50, Y: 50, Radius: 10}, 100, 100, 40, 40, 61, 61},
		{"clipped top-left", Stamp{X: 2, Y: 3, Radius: 10}, 100, 100, 0, 0, 13, 14},
		{"clipped bottom-right", Stamp{X: 98, Y: 97, Radius: 10}, 100, 100, 88, 87, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := tt.stamp.Bounds(tt.w, tt.h)
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Errorf("Bounds() = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
			}
		})
	}
}

func TestStampBoundsOutsideImageEmpty(t *testing.T) {
	for _, s := range []Stamp{
		{X: -50, Y: -50, Radius: 10},
		{X: 150, Y: 50, Radius: 10},
		{X: 50, Y: 200, Radius: 10},
	} {
		x0, y0, x1, y1 := s.Bounds(100, 100)
		if x0 < x1 && y0 < y1 {
			t.Errorf("Bounds() for stamp at (%v,%v) = (%d,%d,%d,%d), want empty",
				s.X, s.Y, x0, y0, x1, y1)
		}
	}
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		radius float64
		expect float64
	}{
		{2, 1},
		{4, 1},
		{8, 2},
		{40, 10},
		{75, 18.75},
	}
	for _, tt := range tests {
		if got := Spacing(tt.radius); got != tt.expect {
			t.Errorf("Spacing(%v) = %v, want %v", tt.radius, got, tt.expect)
		}
	}
}
