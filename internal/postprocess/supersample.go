// Package postprocess holds image filters applied after rasterization.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled image to w×h. Colour is averaged with
// alpha weighting so curves keep their hue where they fade into a
// transparent background. Whole-number factors use a box filter, any other
// ratio goes through CatmullRom. Images no larger than w×h are returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	if b.Dx()%w == 0 && b.Dy()%h == 0 {
		return boxReduce(img, b.Dx()/w, b.Dy()/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premultiply(img), b, draw.Src, nil)
	return unpremultiply(dst)
}

// boxReduce averages each fx×fy block of img into one output pixel.
func boxReduce(img *image.NRGBA, fx, fy int) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()/fx, b.Dy()/fy))
	n := uint32(fx * fy)

	for oy := 0; oy < out.Rect.Dy(); oy++ {
		for ox := 0; ox < out.Rect.Dx(); ox++ {
			var sr, sg, sb, sa uint32
			for y := 0; y < fy; y++ {
				i := img.PixOffset(b.Min.X+ox*fx, b.Min.Y+oy*fy+y)
				for end := i + fx*4; i < end; i += 4 {
					a := uint32(img.Pix[i+3])
					sr += uint32(img.Pix[i]) * a
					sg += uint32(img.Pix[i+1]) * a
					sb += uint32(img.Pix[i+2]) * a
					sa += a
				}
			}

			o := out.PixOffset(ox, oy)
			if sa > 0 {
				out.Pix[o] = uint8((sr + sa/2) / sa)
				out.Pix[o+1] = uint8((sg + sa/2) / sa)
				out.Pix[o+2] = uint8((sb + sa/2) / sa)
			}
			out.Pix[o+3] = uint8((sa + n/2) / n)
		}
	}
	return out
}

func premultiply(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si, di := img.PixOffset(b.Min.X, y), dst.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			s, d := img.Pix[si+x*4:si+x*4+4], dst.Pix[di+x*4:di+x*4+4]
			a := uint32(s[3])
			d[0] = uint8((uint32(s[0])*a + 127) / 255)
			d[1] = uint8((uint32(s[1])*a + 127) / 255)
			d[2] = uint8((uint32(s[2])*a + 127) / 255)
			d[3] = s[3]
		}
	}
	return dst
}

// unpremultiply clamps colour to alpha first; CatmullRom can overshoot it.
func unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	for i := 0; i < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		dst.Pix[i+3] = img.Pix[i+3]
		if a == 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			v := uint32(img.Pix[i+c])
			if v > a {
				v = a
			}
			dst.Pix[i+c] = uint8((v*255 + a/2) / a)
		}
	}
	return dst
}
