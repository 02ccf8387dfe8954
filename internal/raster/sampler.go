package raster

import (
	"image"
	"math"
)

// SampleTexture performs bilinear filtering with UVs clamped to [0, 1].
// Returns RGBA as uint8. Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u = math.Max(0, math.Min(1, u))
	v = math.Max(0, math.Min(1, v))

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	pix := tex.Pix

	// Four texels
	i00 := tex.PixOffset(tex.Rect.Min.X+x0, tex.Rect.Min.Y+y0)
	i10 := tex.PixOffset(tex.Rect.Min.X+x1, tex.Rect.Min.Y+y0)
	i01 := tex.PixOffset(tex.Rect.Min.X+x0, tex.Rect.Min.Y+y1)
	i11 := tex.PixOffset(tex.Rect.Min.X+x1, tex.Rect.Min.Y+y1)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}
