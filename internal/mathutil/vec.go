package mathutil

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera and shading math runs in double precision.
type (
	Vec3 = mgl64.Vec3
	Mat3 = mgl64.Mat3
)

// FromPosition widens a float32 mesh position.
func FromPosition(p mgl32.Vec3) Vec3 {
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Unit returns v scaled to length 1, or the zero vector if v is too short.
func Unit(v Vec3) Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}
