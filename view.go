package smartsym

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Region is the pixel size of the viewport being drawn into.
type Region struct {
	Width  int
	Height int
}

// ViewState is a snapshot of the viewport camera used for projecting
// between world space and screen space. Screen coordinates are
// bottom-left origin (GL window convention).
type ViewState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Region     Region
}

// Forward returns the camera's world-space view ray direction.
func (v ViewState) Forward() mgl32.Vec3 {
	inv := v.View.Inv()
	return inv.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}

// WorldToScreen projects a world point to 2D screen coordinates. The
// second return is false when the point falls outside the visible
// screen region (including behind the near plane).
func (v ViewState) WorldToScreen(p mgl32.Vec3) (mgl32.Vec2, bool) {
	win := mgl32.Project(p, v.View, v.Projection, 0, 0, v.Region.Width, v.Region.Height)
	if win.Z() <= 0 || win.Z() >= 1 {
		return mgl32.Vec2{}, false
	}
	if win.X() < 0 || win.X() > float32(v.Region.Width) ||
		win.Y() < 0 || win.Y() > float32(v.Region.Height) {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{win.X(), win.Y()}, true
}

// ScreenToWorldAtDepth back-projects a 2D screen point to the 3D point
// lying at the same view depth as the anchor. This is the
// perspective-correct pixel-to-world conversion at the anchor's plane.
func (v ViewState) ScreenToWorldAtDepth(screen mgl32.Vec2, anchor mgl32.Vec3) (mgl32.Vec3, error) {
	win := mgl32.Project(anchor, v.View, v.Projection, 0, 0, v.Region.Width, v.Region.Height)
	return mgl32.UnProject(
		mgl32.Vec3{screen.X(), screen.Y(), win.Z()},
		v.View, v.Projection,
		0, 0, v.Region.Width, v.Region.Height,
	)
}

// ObjectTransform is the world transform of the active editable object.
type ObjectTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewObjectTransform(pos mgl32.Vec3) ObjectTransform {
	return ObjectTransform{
		Position: pos,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// BasisAxis returns one of the object's local basis axes transformed to
// world space through the rotation/scale part of the transform.
func (t ObjectTransform) BasisAxis(axis Axis) mgl32.Vec3 {
	var local mgl32.Vec3
	switch axis {
	case AxisX:
		local = mgl32.Vec3{t.Scale.X(), 0, 0}
	case AxisY:
		local = mgl32.Vec3{0, t.Scale.Y(), 0}
	case AxisZ:
		local = mgl32.Vec3{0, 0, t.Scale.Z()}
	}
	return t.Rotation.Rotate(local)
}
