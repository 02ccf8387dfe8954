// Package preview renders welded meshes to WebP thumbnails.
package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"meshweld/internal/mathutil"
	"meshweld/internal/mesh"
	"meshweld/internal/raster"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Options controls preview rendering.
type Options struct {
	Size        int
	Supersample int
	UpAxis      string       // "y" (default) or "z"
	Matcap      *image.NRGBA // optional
}

// Render draws m into an Options.Size square image.
func Render(m mesh.Mesh, opts Options) *image.NRGBA {
	size := opts.Size
	if size <= 0 {
		size = 256
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}

	img := raster.Render(m, mathutil.ViewFor(opts.UpAxis), opts.Matcap, size*ss)
	if ss > 1 {
		img = shrink(img, size)
	}
	return img
}

// shrink filters a supersampled render down to size×size. The scaler
// premultiplies NRGBA input, so the transparent background does not
// darken silhouette edges.
func shrink(src *image.NRGBA, size int) *image.NRGBA {
	premul := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(premul, premul.Bounds(), src, src.Bounds(), draw.Src, nil)
	out := image.NewNRGBA(premul.Bounds())
	draw.Draw(out, out.Bounds(), premul, image.Point{}, draw.Src)
	return out
}

// LoadMatcap decodes a PNG, JPEG or TGA matcap texture.
func LoadMatcap(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preview: read matcap %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("preview: decode matcap %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// WriteWebP encodes img to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("preview: WebP encode %s: %w", path, err)
	}
	return f.Close()
}
