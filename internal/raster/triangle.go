package raster

import "math"

// coverEps lets pixel centers on a shared edge land in both triangles.
const coverEps = 0.001

// RasterizeTriangle fills one screen-space triangle with a flat color,
// z-buffered (larger z is closer). Indices outside px are ignored.
func RasterizeTriangle(fb *FrameBuffer, px, py, pz []float64, vi [3]int, color [4]uint8) {
	var p [3][3]float64
	for k, i := range vi {
		if i < 0 || i >= len(px) {
			return
		}
		p[k] = [3]float64{px[i], py[i], pz[i]}
	}
	a, b, c := p[0], p[1], p[2]

	area := edge(a, b, c[0], c[1])
	if math.Abs(area) < 1e-8 {
		return
	}

	w, h := fb.Size()
	x0 := clampInt(int(math.Floor(min(a[0], b[0], c[0]))), 0, w-1)
	x1 := clampInt(int(math.Ceil(max(a[0], b[0], c[0]))), 0, w-1)
	y0 := clampInt(int(math.Floor(min(a[1], b[1], c[1]))), 0, h-1)
	y1 := clampInt(int(math.Ceil(max(a[1], b[1], c[1]))), 0, h-1)

	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			sx := float64(x) + 0.5
			wa := edge(b, c, sx, sy) / area
			wb := edge(c, a, sx, sy) / area
			wc := 1 - wa - wb
			if wa < -coverEps || wb < -coverEps || wc < -coverEps {
				continue
			}
			fb.Plot(x, y, wa*a[2]+wb*b[2]+wc*c[2], color)
		}
	}
}

// edge is twice the signed area of triangle (p, q, (x, y)).
func edge(p, q [3]float64, x, y float64) float64 {
	return (q[0]-p[0])*(y-p[1]) - (q[1]-p[1])*(x-p[0])
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
