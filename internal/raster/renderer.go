package raster

import (
	"image"
	"math"

	"meshweld/internal/mathutil"
	"meshweld/internal/mesh"
)

// BaseColor is the surface color used when no matcap is given.
var BaseColor = [4]uint8{160, 160, 170, 255}

// Render draws m with view rotation R into a size×size NRGBA image using
// orthographic projection fitted to the mesh bounds. With a matcap,
// faces take the matcap texel addressed by their view-space normal;
// otherwise BaseColor is lit by DefaultLightConfig.
func Render(m mesh.Mesh, R mathutil.Mat3, matcap *image.NRGBA, size int) *image.NRGBA {
	if len(m.Vertices) == 0 || len(m.Triangles) == 0 || size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(size, 0), max(size, 0)))
	}

	view := make([]mathutil.Vec3, len(m.Vertices))
	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, v := range m.Vertices {
		tv := R.Mul3x1(mathutil.FromPosition(v))
		view[i] = tv
		for k := 0; k < 3; k++ {
			allMin[k] = math.Min(allMin[k], tv[k])
			allMax[k] = math.Max(allMax[k], tv[k])
		}
	}

	center := [2]float64{(allMin[0] + allMax[0]) / 2, (allMin[1] + allMax[1]) / 2}
	span := math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}
	margin := float64(size) / 16
	scale := (float64(size) - 2*margin) / span
	half := float64(size) / 2

	px := make([]float64, len(view))
	py := make([]float64, len(view))
	pz := make([]float64, len(view))
	for i, t := range view {
		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}

	fb := NewFrameBuffer(size, size)
	lc := DefaultLightConfig()

	for _, tri := range m.Triangles {
		idx := tri.Indices()
		vi := [3]int{int(idx[0]), int(idx[1]), int(idx[2])}
		if vi[0] >= len(view) || vi[1] >= len(view) || vi[2] >= len(view) {
			continue
		}

		// Face normal for flat shading
		n := mathutil.Unit(view[vi[1]].Sub(view[vi[0]]).Cross(view[vi[2]].Sub(view[vi[0]])))
		if n == (mathutil.Vec3{}) {
			continue
		}

		var color [4]uint8
		if matcap != nil {
			// Matcap is addressed by the camera-facing normal.
			if n[2] < 0 {
				n = n.Mul(-1)
			}
			r, g, b, a := SampleTexture(matcap, n[0]*0.5+0.5, 0.5-n[1]*0.5)
			color = [4]uint8{r, g, b, a}
			if color[3] < 8 {
				continue
			}
		} else {
			color = lc.Apply(BaseColor, lc.Shade(n))
		}

		RasterizeTriangle(fb, px, py, pz, vi, color)
	}

	return fb.Img
}
