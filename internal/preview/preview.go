// Package preview draws baked locator channels as a curve sheet image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"anim-loc-baker/internal/postprocess"
	"anim-loc-baker/internal/scene"
)

// Options controls the output image.
type Options struct {
	Width       int
	Height      int
	Supersample int
	Backdrop    image.Image // optional, stretched to fill the sheet
}

// Defaults for zero Options fields.
const (
	DefaultWidth       = 512
	DefaultHeight      = 256
	DefaultSupersample = 2
)

var (
	background = color.NRGBA{R: 40, G: 40, B: 44, A: 255}
	gridColor  = color.NRGBA{R: 70, G: 70, B: 76, A: 255}
	labelColor = color.NRGBA{R: 220, G: 220, B: 220, A: 255}

	// X, Y, Z in the usual red, green, blue.
	axisColors = [3]color.NRGBA{
		{R: 230, G: 80, B: 80, A: 255},
		{R: 110, G: 210, B: 90, A: 255},
		{R: 90, G: 140, B: 240, A: 255},
	}
)

const margin = 0.06 // fraction of a panel left empty around the curves

// panel is one stacked plot area in supersampled pixel coordinates.
type panel struct {
	title    string
	channels [3]scene.Channel
	x0, y0   float64
	w, h     float64
	lo, hi   float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Supersample <= 0 {
		o.Supersample = DefaultSupersample
	}
	return o
}

// RenderCurves draws translate channels in the upper half and rotate
// channels in the lower half. Channels without keys are skipped.
func RenderCurves(loc scene.Locator, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	ss := opts.Supersample
	w, h := opts.Width*ss, opts.Height*ss

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	if opts.Backdrop != nil {
		draw.ApproxBiLinear.Scale(img, img.Bounds(), opts.Backdrop, opts.Backdrop.Bounds(), draw.Over, nil)
	}

	t0, t1 := timeRange(loc)
	half := float64(h) / 2
	panels := []panel{
		{title: "translate", channels: scene.TranslateChannels, x0: 0, y0: 0, w: float64(w), h: half},
		{title: "rotate", channels: scene.RotateChannels, x0: 0, y0: half, w: float64(w), h: half},
	}

	z := vector.NewRasterizer(w, h)
	stroke := float64(ss)
	for i := range panels {
		p := &panels[i]
		p.lo, p.hi = valueRange(loc, p.channels)

		// Frame and zero line.
		z.Reset(w, h)
		z.DrawOp = draw.Over
		strokeLine(z, p.x0, p.y0+p.h-stroke/2, p.x0+p.w, p.y0+p.h-stroke/2, stroke/2)
		if p.lo < 0 && p.hi > 0 {
			y := p.mapY(0)
			strokeLine(z, p.x0, y, p.x0+p.w, y, stroke/2)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(gridColor), image.Point{})

		for axis, ch := range p.channels {
			keys := loc.Keys[ch]
			if len(keys) == 0 {
				continue
			}
			z.Reset(w, h)
			z.DrawOp = draw.Over
			for k := 1; k < len(keys); k++ {
				strokeLine(z,
					p.mapX(keys[k-1].Time, t0, t1), p.mapY(keys[k-1].Value),
					p.mapX(keys[k].Time, t0, t1), p.mapY(keys[k].Value),
					stroke)
			}
			// Key markers keep single-key channels visible.
			for _, k := range keys {
				square(z, p.mapX(k.Time, t0, t1), p.mapY(k.Value), stroke*2.5)
			}
			z.Draw(img, img.Bounds(), image.NewUniform(axisColors[axis]), image.Point{})
		}
	}

	out := postprocess.Downsample(img, opts.Width, opts.Height)

	// Labels are drawn at final resolution so the bitmap font stays sharp.
	header := fmt.Sprintf("%s <- %s  [%s]  t %g..%g", loc.Name, loc.Link, loc.RotationOrder, t0, t1)
	label(out, 4, 13, header)
	for i, p := range panels {
		y := int(p.y0/float64(ss)) + 13
		if i == 0 {
			y += 13 // below the header
		}
		label(out, 4, y, fmt.Sprintf("%s %.3g..%.3g", p.title, p.lo, p.hi))
	}
	return out
}

func (p panel) mapX(t, t0, t1 float64) float64 {
	inner := p.w * (1 - 2*margin)
	return p.x0 + p.w*margin + (t-t0)/(t1-t0)*inner
}

func (p panel) mapY(v float64) float64 {
	inner := p.h * (1 - 2*margin)
	return p.y0 + p.h*margin + (p.hi-v)/(p.hi-p.lo)*inner
}

// timeRange spans every key; a single time is widened by one frame each way.
func timeRange(loc scene.Locator) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, keys := range loc.Keys {
		for _, k := range keys {
			lo = math.Min(lo, k.Time)
			hi = math.Max(hi, k.Time)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi-lo < 1e-9 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

func valueRange(loc scene.Locator, channels [3]scene.Channel) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ch := range channels {
		for _, k := range loc.Keys[ch] {
			lo = math.Min(lo, k.Value)
			hi = math.Max(hi, k.Value)
		}
	}
	if math.IsInf(lo, 1) {
		return -1, 1
	}
	if hi-lo < 1e-9 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// strokeLine adds a segment of half-width r as a quad. Every quad winds the
// same way so overlapping segments add coverage instead of cancelling.
func strokeLine(z *vector.Rasterizer, x0, y0, x1, y1, r float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return
	}
	nx, ny := -dy/l*r, dx/l*r
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
}

func square(z *vector.Rasterizer, cx, cy, r float64) {
	z.MoveTo(float32(cx-r), float32(cy-r))
	z.LineTo(float32(cx+r), float32(cy-r))
	z.LineTo(float32(cx+r), float32(cy+r))
	z.LineTo(float32(cx-r), float32(cy+r))
	z.ClosePath()
}

func label(img *image.NRGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
