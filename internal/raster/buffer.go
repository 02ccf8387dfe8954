package raster

import (
	"image"
	"math"
)

// FrameBuffer pairs an NRGBA color target with a depth buffer.
// Depth holds view-space z per pixel; larger is closer.
type FrameBuffer struct {
	Img   *image.NRGBA
	Depth []float64
}

// NewFrameBuffer allocates a transparent w×h target with depth at -inf.
func NewFrameBuffer(w, h int) *FrameBuffer {
	depth := make([]float64, w*h)
	for i := range depth {
		depth[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Img:   image.NewNRGBA(image.Rect(0, 0, w, h)),
		Depth: depth,
	}
}

// Size returns the buffer dimensions.
func (fb *FrameBuffer) Size() (w, h int) {
	return fb.Img.Rect.Dx(), fb.Img.Rect.Dy()
}

// Plot writes c at (x, y) when z is nearer than what is already there.
func (fb *FrameBuffer) Plot(x, y int, z float64, c [4]uint8) bool {
	w, _ := fb.Size()
	i := y*w + x
	if z <= fb.Depth[i] {
		return false
	}
	fb.Depth[i] = z
	copy(fb.Img.Pix[fb.Img.PixOffset(x, y):], c[:])
	return true
}
