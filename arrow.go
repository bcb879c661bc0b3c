package smartsym

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Axis identifies one of the object's three local basis axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// ArrowSpec is one directional mirror candidate: a world-space polyline
// (shaft plus a 4-blade head drawn as a single line strip) and the tip
// point used for hover hit-testing.
type ArrowSpec struct {
	Axis   Axis
	Sign   int
	Points []mgl32.Vec3
	Tip    mgl32.Vec3
	Color  [4]float32
}

const (
	arrowHeadStart = 0.75 // head begins at 75% of total length
	arrowHeadWidth = 0.12 // head half-width relative to total length

	// negativeDarken is how far negative-sign arrow colors are blended
	// toward black, leaving 45% of the original channel values.
	negativeDarken = 0.55
)

var axisBaseColors = [3]colorful.Color{
	{R: 1, G: 0.1, B: 0.1},
	{R: 0.1, G: 1, B: 0.1},
	{R: 0.1, G: 0.5, B: 1},
}

// ArrowColor returns the display color for an axis/sign pair. Negative
// directions use the same hue darkened toward black, alpha unchanged.
func ArrowColor(axis Axis, sign int) [4]float32 {
	c := axisBaseColors[axis]
	if sign < 0 {
		c = c.BlendRgb(colorful.Color{}, negativeDarken)
	}
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
}

// BuildArrow computes the polyline for an arrow of the given world-space
// length starting at base. The strip visits the tip between every head
// stroke so shaft and head render as one line-strip draw call.
//
// Pure and deterministic. A near-zero length produces a degenerate
// zero-length strip rather than an error.
func BuildArrow(base, direction mgl32.Vec3, length float32) ([]mgl32.Vec3, mgl32.Vec3) {
	dirN := direction.Normalize()
	tip := base.Add(dirN.Mul(length))
	shaftMid := base.Add(dirN.Mul(length * arrowHeadStart))

	side := dirN.Cross(mgl32.Vec3{0, 1, 0})
	if side.Len() < 1e-6 {
		// direction is parallel to world Y; fall back to world X
		side = mgl32.Vec3{1, 0, 0}
	}
	side = side.Normalize()
	side2 := dirN.Cross(side).Normalize()

	headW := length * arrowHeadWidth
	points := []mgl32.Vec3{
		base,
		shaftMid,
		tip,
		shaftMid.Add(side.Mul(headW)),
		tip,
		shaftMid.Sub(side.Mul(headW)),
		tip,
		shaftMid.Add(side2.Mul(headW)),
		tip,
		shaftMid.Sub(side2.Mul(headW)),
	}
	return points, tip
}
