package mathutil

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// PreviewView is the three-quarter camera used for mesh previews:
	// Rx(-25°) × Ry(35°), looking down -Z with Y up.
	PreviewView = mgl64.Rotate3DX(mgl64.DegToRad(-25)).Mul3(mgl64.Rotate3DY(mgl64.DegToRad(35)))

	// ZUpToYUp turns Z-up models (STL, most CAD exports) Y-up.
	ZUpToYUp = mgl64.Rotate3DX(-math.Pi / 2)
)

// ViewFor returns the preview camera for a model's up axis ("y" or "z").
// Unknown axes fall back to Y-up.
func ViewFor(upAxis string) Mat3 {
	if strings.EqualFold(upAxis, "z") {
		return PreviewView.Mul3(ZUpToYUp)
	}
	return PreviewView
}
