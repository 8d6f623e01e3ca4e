package kernel

import (
	"math"
	"testing"
)

// noisyImage builds a deterministic pseudo-random skin-toned image so the
// low-pass transforms have texture to act on.
func noisyImage(w, h int) Image {
	im := Image{Pix: make([]uint8, w*h*4), Width: w, Height: h}
	seed := uint32(12345)
	next := func() uint8 {
		seed = seed*1664525 + 1013904223
		return uint8(seed >> 24 & 0x1f)
	}
	for i := 0; i < len(im.Pix); i += 4 {
		im.Pix[i+0] = 180 + next()
		im.Pix[i+1] = 130 + next()
		im.Pix[i+2] = 110 + next()
		im.Pix[i+3] = 255
	}
	return im
}

func uniformImage(w, h int, r, g, b uint8) Image {
	im := Image{Pix: make([]uint8, w*h*4), Width: w, Height: h}
	for i := 0; i < len(im.Pix); i += 4 {
		im.Pix[i+0] = r
		im.Pix[i+1] = g
		im.Pix[i+2] = b
		im.Pix[i+3] = 255
	}
	return im
}

func cloneImage(im Image) Image {
	out := Image{Pix: make([]uint8, len(im.Pix)), Width: im.Width, Height: im.Height}
	copy(out.Pix, im.Pix)
	return out
}

// diffOutsideDisc returns the first changed pixel whose center lies at or
// beyond radius r from (cx, cy), or (-1, -1) if all changes are confined.
func diffOutsideDisc(before, after Image, cx, cy, r float64) (int, int) {
	for y := 0; y < after.Height; y++ {
		for x := 0; x < after.Width; x++ {
			i := after.idx(x, y)
			if before.Pix[i] == after.Pix[i] &&
				before.Pix[i+1] == after.Pix[i+1] &&
				before.Pix[i+2] == after.Pix[i+2] &&
				before.Pix[i+3] == after.Pix[i+3] {
				continue
			}
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) >= r {
				return x, y
			}
		}
	}
	return -1, -1
}

func countDiffs(before, after Image) int {
	n := 0
	for i := 0; i < len(after.Pix); i += 4 {
		if before.Pix[i] != after.Pix[i] ||
			before.Pix[i+1] != after.Pix[i+1] ||
			before.Pix[i+2] != after.Pix[i+2] {
			n++
		}
	}
	return n
}

func TestSmoothConfinedToFootprint(t *testing.T) {
	im := noisyImage(100, 100)
	before := cloneImage(im)

	Smooth(im, Stamp{X: 50, Y: 50, Radius: 10, Strength: 1, Hardness: 0})

	if x, y := diffOutsideDisc(before, im, 50, 50, 10); x >= 0 {
		t.Errorf("smooth changed pixel (%d,%d) outside the radius-10 disc", x, y)
	}
	if n := countDiffs(before, im); n == 0 {
		t.Error("smooth changed no pixels on a noisy image")
	}
}

func TestSmoothPreservesAlpha(t *testing.T) {
	im := noisyImage(60, 60)
	Smooth(im, Stamp{X: 30, Y: 30, Radius: 15, Strength: 1, Hardness: 0})
	for i := 3; i < len(im.Pix); i += 4 {
		if im.Pix[i] != 255 {
			t.Fatalf("alpha modified at byte %d: %d", i, im.Pix[i])
		}
	}
}

func TestBlemishPullsOutlierTowardSurroundings(t *testing.T) {
	im := uniformImage(100, 100, 180, 140, 120)
	// Dark 3x3 spot in the middle of uniform skin.
	for y := 49; y <= 51; y++ {
		for x := 49; x <= 51; x++ {
			i := im.idx(x, y)
			im.Pix[i+0] = 60
			im.Pix[i+1] = 40
			im.Pix[i+2] = 30
		}
	}
	before := cloneImage(im)

	Blemish(im, Stamp{X: 50, Y: 50, Radius: 10, Strength: 1, Hardness: 0})

	if x, y := diffOutsideDisc(before, im, 50, 50, 10); x >= 0 {
		t.Errorf("blemish changed pixel (%d,%d) outside the radius-10 disc", x, y)
	}

	i := im.idx(50, 50)
	beforeDist := math.Abs(float64(before.Pix[i]) - 180)
	afterDist := math.Abs(float64(im.Pix[i]) - 180)
	if afterDist >= beforeDist {
		t.Errorf("blemish did not pull the spot toward the surroundings: red %d -> %d (background 180)",
			before.Pix[i], im.Pix[i])
	}
}

func TestWrinkleConfinedToFootprint(t *testing.T) {
	im := noisyImage(100, 100)
	before := cloneImage(im)

	Wrinkle(im, Stamp{X: 50, Y: 50, DirX: 1, DirY: 0, Radius: 12, Strength: 1, Hardness: 0})

	if x, y := diffOutsideDisc(before, im, 50, 50, 12); x >= 0 {
		t.Errorf("wrinkle changed pixel (%d,%d) outside the radius-12 disc", x, y)
	}
	if n := countDiffs(before, im); n == 0 {
		t.Error("wrinkle changed no pixels on a noisy image")
	}
}

func TestWrinkleIsotropicFallbackForSingleton(t *testing.T) {
	im := noisyImage(60, 60)
	before := cloneImage(im)

	// No direction: singleton stamp falls back to isotropic smoothing.
	Wrinkle(im, Stamp{X: 30, Y: 30, Radius: 10, Strength: 1, Hardness: 0})

	if n := countDiffs(before, im); n == 0 {
		t.Error("directionless wrinkle stamp changed no pixels")
	}
}

func TestTeethWhiteningTargetsBrightLowSat(t *testing.T) {
	im := uniformImage(20, 20, 200, 200, 200)
	// Right half saturated red, far from the tooth heuristic.
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			i := im.idx(x, y)
			im.Pix[i+0] = 200
			im.Pix[i+1] = 40
			im.Pix[i+2] = 40
		}
	}
	before := cloneImage(im)

	// Hard full-coverage stamp so the heuristic, not the footprint, decides.
	TeethWhitening(im, Stamp{X: 10, Y: 10, Radius: 10, Strength: 1, Hardness: 1})

	iGray := im.idx(5, 10)
	if im.Pix[iGray] <= before.Pix[iGray] {
		t.Errorf("tooth-like pixel not brightened: %d -> %d", before.Pix[iGray], im.Pix[iGray])
	}

	iRed := im.idx(15, 10)
	for c := 0; c < 3; c++ {
		if im.Pix[iRed+c] != before.Pix[iRed+c] {
			t.Errorf("saturated pixel channel %d changed: %d -> %d",
				c, before.Pix[iRed+c], im.Pix[iRed+c])
		}
	}
}

func TestSkinToneShiftsSkinOnly(t *testing.T) {
	// Skin-like color inside the skin-likelihood window.
	im := uniformImage(40, 40, 204, 140, 115)
	before := cloneImage(im)

	SkinTone(im, Stamp{X: 20, Y: 20, Radius: 10, Strength: 1, Hardness: 0})

	if x, y := diffOutsideDisc(before, im, 20, 20, 10); x >= 0 {
		t.Errorf("skin tone changed pixel (%d,%d) outside the footprint", x, y)
	}
	if n := countDiffs(before, im); n == 0 {
		t.Error("skin tone left a skin-colored region untouched")
	}

	// A blue region has zero skin likelihood and must not move at all.
	blue := uniformImage(40, 40, 30, 60, 200)
	blueBefore := cloneImage(blue)
	SkinTone(blue, Stamp{X: 20, Y: 20, Radius: 10, Strength: 1, Hardness: 0})
	if n := countDiffs(blueBefore, blue); n != 0 {
		t.Errorf("skin tone changed %d pixels of a blue region", n)
	}
}

func TestAutoExpandsToneRange(t *testing.T) {
	// Flat, hazy exposure: luma confined to a narrow band.
	im := noisyImage(64, 64)
	for i := 0; i < len(im.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			im.Pix[i+c] = 100 + im.Pix[i+c]/8
		}
	}

	rangeOf := func(im Image) int {
		minV, maxV := 255, 0
		for i := 0; i < len(im.Pix); i += 4 {
			v := int(im.Pix[i])
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		return maxV - minV
	}

	before := rangeOf(im)
	Auto(im)
	after := rangeOf(im)

	if after <= before {
		t.Errorf("auto enhancement did not expand the tone range: %d -> %d", before, after)
	}
}

func TestAutoDoesNotSaturateBrightChannel(t *testing.T) {
	// Low-contrast skin tone: red sits well above mean luma. The stretch
	// must shift channels together, not clamp red to the top of the range.
	im := Image{Pix: make([]uint8, 64*64*4), Width: 64, Height: 64}
	seed := uint32(777)
	for i := 0; i < len(im.Pix); i += 4 {
		seed = seed*1664525 + 1013904223
		im.Pix[i+0] = 200 + uint8(seed>>24&0x07)
		im.Pix[i+1] = 150 + uint8(seed>>16&0x07)
		im.Pix[i+2] = 130 + uint8(seed>>8&0x07)
		im.Pix[i+3] = 255
	}

	Auto(im)

	minR, maxR := 255, 0
	for i := 0; i < len(im.Pix); i += 4 {
		v := int(im.Pix[i])
		if v < minR {
			minR = v
		}
		if v > maxR {
			maxR = v
		}
	}
	if maxR == 255 && minR == 255 {
		t.Fatal("red channel saturated across the whole image")
	}
	if maxR-minR < 2 {
		t.Errorf("red channel collapsed: range %d -> %d", minR, maxR)
	}
}

func TestAutoEmptyImageNoop(t *testing.T) {
	Auto(Image{}) // must not panic
}
