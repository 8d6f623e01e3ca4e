package retouch

import (
	"image"
	"image/color"
	"testing"
)

func TestNewPixmap(t *testing.T) {
	pm := NewPixmap(10, 5)
	if pm.Width() != 10 || pm.Height() != 5 {
		t.Errorf("dimensions = %dx%d, want 10x5", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 10*5*4 {
		t.Errorf("data length = %d, want %d", len(pm.Data()), 10*5*4)
	}
}

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 4)
	c := RGBA{R: 1, G: 0.5, B: 0.25, A: 1}
	pm.SetPixel(2, 3, c)

	got := pm.GetPixel(2, 3)
	if got.Color() != c.Color() {
		t.Errorf("GetPixel = %+v, want %+v", got, c)
	}

	// Out of bounds: write ignored, read transparent.
	pm.SetPixel(-1, 0, c)
	pm.SetPixel(4, 0, c)
	if pm.GetPixel(-1, 0) != Transparent || pm.GetPixel(0, 9) != Transparent {
		t.Error("out-of-bounds GetPixel is not transparent")
	}
}

func TestPixmapCloneIndependent(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.SetPixel(1, 1, RGBA{R: 1, A: 1})

	dup := pm.Clone()
	if !dup.Equal(pm) {
		t.Fatal("clone differs from original")
	}

	dup.SetPixel(1, 1, RGBA{G: 1, A: 1})
	if dup.Equal(pm) {
		t.Error("mutating the clone changed the original")
	}
}

func TestPixmapCloneInto(t *testing.T) {
	src := NewPixmap(3, 3)
	src.Fill(RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})

	dst := NewPixmap(3, 3)
	if err := src.CloneInto(dst); err != nil {
		t.Fatalf("CloneInto: %v", err)
	}
	if !dst.Equal(src) {
		t.Error("CloneInto did not copy content")
	}

	if err := src.CloneInto(NewPixmap(4, 3)); err != ErrSizeMismatch {
		t.Errorf("CloneInto size mismatch error = %v, want ErrSizeMismatch", err)
	}
}

func TestPixmapEqual(t *testing.T) {
	a := NewPixmap(2, 2)
	b := NewPixmap(2, 2)
	if !a.Equal(b) {
		t.Error("identical pixmaps not equal")
	}
	b.SetPixel(0, 0, RGBA{R: 1, A: 1})
	if a.Equal(b) {
		t.Error("different pixmaps equal")
	}
	if a.Equal(NewPixmap(2, 3)) {
		t.Error("different dimensions equal")
	}
	if a.Equal(nil) {
		t.Error("nil comparand equal")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	pm := FromImage(img)
	if pm.Width() != 4 || pm.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 4x2", pm.Width(), pm.Height())
	}
	i := (1*4 + 1) * 4
	if pm.Data()[i] != 200 || pm.Data()[i+1] != 100 || pm.Data()[i+2] != 50 {
		t.Errorf("pixel (1,1) = %v", pm.Data()[i:i+4])
	}
}

func TestFromImageFit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 200))

	pm := FromImageFit(img, 100)
	if pm.Width() != 100 || pm.Height() != 50 {
		t.Errorf("downscaled dimensions = %dx%d, want 100x50", pm.Width(), pm.Height())
	}

	// Within the limit: no resampling.
	pm = FromImageFit(img, 400)
	if pm.Width() != 400 || pm.Height() != 200 {
		t.Errorf("dimensions = %dx%d, want 400x200", pm.Width(), pm.Height())
	}

	// Portrait orientation scales by height.
	tall := image.NewNRGBA(image.Rect(0, 0, 200, 400))
	pm = FromImageFit(tall, 100)
	if pm.Width() != 50 || pm.Height() != 100 {
		t.Errorf("portrait dimensions = %dx%d, want 50x100", pm.Width(), pm.Height())
	}
}

func TestPixmapImageInterface(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.SetPixel(1, 2, RGBA{R: 1, A: 1})

	var img image.Image = pm
	if img.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	if img.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBA")
	}
	r, _, _, a := img.At(1, 2).RGBA()
	if r == 0 || a == 0 {
		t.Error("At(1,2) lost the written pixel")
	}
}

func TestWrapPixmapSharesBuffer(t *testing.T) {
	buf := make([]uint8, 2*2*4)
	pm := WrapPixmap(2, 2, buf)
	pm.SetPixel(0, 0, RGBA{R: 1, A: 1})
	if buf[0] != 255 {
		t.Error("WrapPixmap copied instead of wrapping")
	}
}
