package kernel

import (
	"math"
	"testing"
)

func TestGaussian1DNormalized(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 2.5, 10} {
		kernel := Gaussian1D(radius)

		if len(kernel)%2 != 1 {
			t.Errorf("radius %v: kernel length %d is even", radius, len(kernel))
		}

		sum := 0.0
		for _, w := range kernel {
			sum += float64(w)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("radius %v: kernel sum = %v, want 1", radius, sum)
		}
	}
}

func TestGaussian1DSymmetric(t *testing.T) {
	kernel := Gaussian1D(3)
	for i, j := 0, len(kernel)-1; i < j; i, j = i+1, j-1 {
		if kernel[i] != kernel[j] {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v", i, kernel[i], j, kernel[j])
		}
	}

	// Peak at the center.
	center := len(kernel) / 2
	for i, w := range kernel {
		if i != center && w >= kernel[center] {
			t.Errorf("kernel[%d] = %v >= center %v", i, w, kernel[center])
		}
	}
}

func TestGaussian1DIdentityForZeroRadius(t *testing.T) {
	for _, radius := range []float64{0, -1} {
		kernel := Gaussian1D(radius)
		if len(kernel) != 1 || kernel[0] != 1 {
			t.Errorf("Gaussian1D(%v) = %v, want [1]", radius, kernel)
		}
	}
}

func TestCachedGaussian1DReuse(t *testing.T) {
	a := CachedGaussian1D(7.5)
	b := CachedGaussian1D(7.5)
	if &a[0] != &b[0] {
		t.Error("repeated radius did not hit the kernel cache")
	}

	c := CachedGaussian1D(3)
	if len(c) == len(a) {
		t.Errorf("distinct radii produced same kernel size %d", len(a))
	}
}
