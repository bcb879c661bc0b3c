package smartsym

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// viewParallelLimit is the |dot| between an axis direction and the
	// view ray above which the axis would foreshorten into an
	// unclickable point and gets tilted instead.
	viewParallelLimit = 0.96

	viewTiltMagnitude = 0.1
)

var arrowOrder = [6]struct {
	Axis Axis
	Sign int
}{
	{AxisX, 1}, {AxisX, -1},
	{AxisY, 1}, {AxisY, -1},
	{AxisZ, 1}, {AxisZ, -1},
}

// RefreshArrows computes the six half-axis arrows for the current
// object transform and viewport. The world-space arrow length is chosen
// so every arrow spans targetPixelLength pixels at the object's depth,
// independent of camera distance or zoom. Directions whose origin does
// not project on-screen are omitted for this refresh.
//
// The result replaces any previous arrow list wholesale; it is safe to
// call on a timer with no input event in between.
func RefreshArrows(transform ObjectTransform, view ViewState, targetPixelLength float32) []ArrowSpec {
	origin := transform.Position

	origin2D, visible := view.WorldToScreen(origin)
	if !visible {
		return nil
	}

	offset2D := origin2D.Add(mgl32.Vec2{targetPixelLength, 0})
	tipWS, err := view.ScreenToWorldAtDepth(offset2D, origin)
	if err != nil {
		return nil
	}
	length := tipWS.Sub(origin).Len()

	viewDir := view.Forward()

	arrows := make([]ArrowSpec, 0, len(arrowOrder))
	for _, entry := range arrowOrder {
		dirWS := transform.BasisAxis(entry.Axis).Mul(float32(entry.Sign)).Normalize()
		dirWS = tiltAwayFromView(dirWS, viewDir)

		points, tip := BuildArrow(origin, dirWS, length)
		arrows = append(arrows, ArrowSpec{
			Axis:   entry.Axis,
			Sign:   entry.Sign,
			Points: points,
			Tip:    tip,
			Color:  ArrowColor(entry.Axis, entry.Sign),
		})
	}
	return arrows
}

// tiltAwayFromView nudges a unit direction that points nearly straight
// at or away from the viewer by a small perpendicular tilt, so its
// arrow keeps a clickable on-screen extent.
func tiltAwayFromView(dir, viewDir mgl32.Vec3) mgl32.Vec3 {
	if mgl32.Abs(dir.Dot(viewDir)) <= viewParallelLimit {
		return dir
	}
	perp := viewDir.Cross(dir)
	if perp.Len() < 1e-6 {
		// exactly parallel; any perpendicular will do
		perp = dir.Cross(mgl32.Vec3{0, 1, 0})
		if perp.Len() < 1e-6 {
			perp = dir.Cross(mgl32.Vec3{1, 0, 0})
		}
	}
	tilt := perp.Normalize().Mul(viewTiltMagnitude)
	return dir.Add(tilt).Normalize()
}
