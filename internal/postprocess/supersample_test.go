package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsampleSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 200, 255
	}

	got := Downsample(src, 16, 8)
	if b := got.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("bounds = %v, want 16x8", b)
	}
	c := got.NRGBAAt(8, 4)
	if c.A != 255 || c.R < 195 || c.R > 205 {
		t.Errorf("center pixel = %v, want opaque red ~200", c)
	}
}

func TestDownsampleKeepsColorAtTransparentEdge(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 20; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	got := Downsample(src, 10, 10)
	// Partially covered edge pixels keep full red instead of darkening.
	for x := 0; x < 10; x++ {
		c := got.NRGBAAt(x, 5)
		if c.A > 10 && c.R < 240 {
			t.Errorf("pixel %d = %v, red darkened at alpha edge", x, c)
		}
	}
}

func TestDownsampleNoop(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if got := Downsample(src, 8, 8); got != src {
		t.Error("expected the same image back when already at target size")
	}
}

func TestDownsampleBoxWeightsByAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 40, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 0})

	got := Downsample(src, 1, 1).NRGBAAt(0, 0)
	if want := (color.NRGBA{R: 255, G: 40, A: 64}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDownsampleFractionalRatio(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+1], src.Pix[i+3] = 180, 255
	}

	got := Downsample(src, 7, 7)
	if b := got.Bounds(); b.Dx() != 7 || b.Dy() != 7 {
		t.Fatalf("bounds = %v, want 7x7", b)
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if c := got.NRGBAAt(x, y); c.A < 250 || c.G < 175 || c.G > 185 {
				t.Fatalf("pixel (%d,%d) = %v, want opaque green ~180", x, y, c)
			}
		}
	}
}
