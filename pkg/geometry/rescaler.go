// Package geometry rescales bezel bounding boxes between coordinate spaces.
package geometry

import (
	"github.com/attractmode/bezel-analyzer/pkg/types"
)

// ScaleFactor derives the uniform scale between a native image size and its
// resized dimensions. The factor comes from whichever native dimension is
// larger, because the resize operation bounds the larger dimension; both
// axes then share one proportional factor.
func ScaleFactor(oldWidth, oldHeight, newWidth, newHeight float64) float64 {
	if oldWidth >= oldHeight {
		if oldWidth == 0 {
			return 1
		}
		return newWidth / oldWidth
	}
	if oldHeight == 0 {
		return 1
	}
	return newHeight / oldHeight
}

// ScaleBox applies a uniform scale to all four components of a box. The
// result stays in floating point; rounding is the store writer's job.
func ScaleBox(b types.Box, scale float64) types.Box {
	return types.Box{
		X:      b.X * scale,
		Y:      b.Y * scale,
		Width:  b.Width * scale,
		Height: b.Height * scale,
	}
}

// Rescaler carries the scale factor for one asset and applies it to the
// boxes extracted from that asset's layout.
type Rescaler struct {
	scale float64
}

// NewRescaler builds a Rescaler from old and new pixel dimensions.
func NewRescaler(oldWidth, oldHeight, newWidth, newHeight float64) Rescaler {
	return Rescaler{scale: ScaleFactor(oldWidth, oldHeight, newWidth, newHeight)}
}

// Identity returns a Rescaler that leaves coordinates unchanged. Used on the
// link path and when the dimension query failed for an asset.
func Identity() Rescaler {
	return Rescaler{scale: 1}
}

// Scale returns the uniform factor.
func (r Rescaler) Scale() float64 {
	return r.scale
}

// Apply rescales one box.
func (r Rescaler) Apply(b types.Box) types.Box {
	return ScaleBox(b, r.scale)
}

// ApplyAll rescales the screen, bezel and total boxes of a record in place
// and returns it.
func (r Rescaler) ApplyAll(rec types.BezelRecord) types.BezelRecord {
	rec.Screen = r.Apply(rec.Screen)
	rec.Bezel = r.Apply(rec.Bezel)
	rec.Total = r.Apply(rec.Total)
	return rec
}
