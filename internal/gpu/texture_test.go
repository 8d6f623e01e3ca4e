package gpu

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewTextureInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 10}} {
		if _, err := newTexture(dims[0], dims[1], "test"); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("newTexture(%d, %d) error = %v, want ErrInvalidDimensions",
				dims[0], dims[1], err)
		}
	}
}

func TestTextureUploadDownloadRoundtrip(t *testing.T) {
	tex, err := newTexture(8, 4, "test")
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}
	defer tex.Release()

	pix := make([]uint8, 8*4*4)
	for i := range pix {
		pix[i] = uint8(i)
	}
	if err := tex.Upload(pix); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got := make([]uint8, len(pix))
	if err := tex.Download(got); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.Equal(got, pix) {
		t.Error("downloaded pixels differ from upload")
	}
}

func TestTextureUploadRegion(t *testing.T) {
	tex, err := newTexture(10, 10, "test")
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}
	defer tex.Release()

	// Surface-sized buffer with a marked 3x2 region at (4,5).
	stride := 10 * 4
	src := make([]uint8, 10*10*4)
	for y := 5; y < 7; y++ {
		for x := 4; x < 7; x++ {
			for c := 0; c < 4; c++ {
				src[y*stride+x*4+c] = 0xAB
			}
		}
	}
	if err := tex.UploadRegion(4, 5, 3, 2, src, stride); err != nil {
		t.Fatalf("UploadRegion: %v", err)
	}

	got := make([]uint8, 10*10*4)
	if err := tex.Download(got); err != nil {
		t.Fatalf("Download: %v", err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if x >= 4 && x < 7 && y >= 5 && y < 7 {
				want = 0xAB
			}
			if got[y*stride+x*4] != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x", x, y, got[y*stride+x*4], want)
			}
		}
	}
}

func TestTextureUploadRegionOutOfRange(t *testing.T) {
	tex, err := newTexture(10, 10, "test")
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}
	defer tex.Release()

	src := make([]uint8, 10*10*4)
	tests := [][4]int{
		{-1, 0, 2, 2},
		{0, -1, 2, 2},
		{9, 0, 2, 2},
		{0, 9, 2, 2},
		{0, 0, 0, 2},
	}
	for _, r := range tests {
		err := tex.UploadRegion(r[0], r[1], r[2], r[3], src, 40)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("UploadRegion(%v) error = %v, want ErrInvalidDimensions", r, err)
		}
	}
}

func TestTextureBufferSizeMismatch(t *testing.T) {
	tex, err := newTexture(4, 4, "test")
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}
	defer tex.Release()

	short := make([]uint8, 10)
	if err := tex.Upload(short); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Upload(short) error = %v, want ErrBufferSize", err)
	}
	if err := tex.Download(short); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Download(short) error = %v, want ErrBufferSize", err)
	}
}

func TestTextureReleasedErrors(t *testing.T) {
	tex, err := newTexture(4, 4, "test")
	if err != nil {
		t.Fatalf("newTexture: %v", err)
	}
	tex.Release()
	tex.Release() // idempotent

	buf := make([]uint8, 4*4*4)
	if err := tex.Upload(buf); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("Upload after release error = %v, want ErrTextureReleased", err)
	}
	if err := tex.UploadRegion(0, 0, 1, 1, buf, 16); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("UploadRegion after release error = %v, want ErrTextureReleased", err)
	}
	if err := tex.Download(buf); !errors.Is(err, ErrTextureReleased) {
		t.Errorf("Download after release error = %v, want ErrTextureReleased", err)
	}
	if !tex.Released() {
		t.Error("Released() = false after Release")
	}
}
