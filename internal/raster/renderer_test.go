package raster

import (
	"image"
	"image/color"
	"testing"

	"meshweld/internal/mathutil"
	"meshweld/internal/mesh"

	"github.com/go-gl/mathgl/mgl64"
)

var unitTri = mesh.Mesh{
	Vertices:  []mesh.Position{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	Triangles: []mesh.Triangle{{0, 1, 2}},
}

func TestRenderEmpty(t *testing.T) {
	img := Render(mesh.Mesh{}, mgl64.Ident3(), nil, 16)
	if img.Bounds().Dx() != 16 {
		t.Fatalf("size = %v", img.Bounds())
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("empty mesh produced opaque pixels")
		}
	}
}

func TestRenderTriangleCoverage(t *testing.T) {
	img := Render(unitTri, mgl64.Ident3(), nil, 32)

	if a := img.NRGBAAt(8, 24).A; a != 255 {
		t.Errorf("inside pixel alpha = %d, want 255", a)
	}
	if a := img.NRGBAAt(28, 4).A; a != 0 {
		t.Errorf("outside pixel alpha = %d, want 0", a)
	}
}

func TestRenderMatcap(t *testing.T) {
	matcap := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			matcap.SetNRGBA(x, y, color.NRGBA{200, 10, 20, 255})
		}
	}
	img := Render(unitTri, mgl64.Ident3(), matcap, 32)
	if got := img.NRGBAAt(8, 24); got != (color.NRGBA{200, 10, 20, 255}) {
		t.Errorf("matcap pixel = %v", got)
	}
}

func TestRasterizeDepth(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	px := []float64{0, 8, 0}
	py := []float64{0, 0, 8}
	near := []float64{1, 1, 1}
	far := []float64{-1, -1, -1}

	RasterizeTriangle(fb, px, py, near, [3]int{0, 1, 2}, [4]uint8{255, 0, 0, 255})
	RasterizeTriangle(fb, px, py, far, [3]int{0, 1, 2}, [4]uint8{0, 255, 0, 255})

	if got := fb.Img.Pix[:4]; got[0] != 255 || got[1] != 0 {
		t.Errorf("far triangle overwrote near one: %v", got)
	}
	if fb.Plot(0, 0, 0, [4]uint8{0, 0, 255, 255}) {
		t.Error("Plot behind stored depth succeeded")
	}
}

func TestShadeBounds(t *testing.T) {
	lc := DefaultLightConfig()
	for _, n := range []mathutil.Vec3{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}, {0, 0, -1}} {
		if s := lc.Shade(n); s < lc.Ambient {
			t.Errorf("Shade(%v) = %v below ambient", n, s)
		}
	}
}
