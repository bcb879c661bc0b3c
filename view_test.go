package smartsym

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToScreen(t *testing.T) {
	view := testViewState()

	center, ok := view.WorldToScreen(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 640, center.X(), 0.5)
	assert.InDelta(t, 360, center.Y(), 0.5)

	_, ok = view.WorldToScreen(mgl32.Vec3{0, 0, 50})
	assert.False(t, ok, "points behind the camera are not visible")

	_, ok = view.WorldToScreen(mgl32.Vec3{200, 0, 0})
	assert.False(t, ok, "points outside the frustum are not visible")
}

func TestScreenToWorldAtDepth_roundTrip(t *testing.T) {
	view := testViewState()
	anchor := mgl32.Vec3{1, 2, -3}

	screen, ok := view.WorldToScreen(anchor)
	require.True(t, ok)

	world, err := view.ScreenToWorldAtDepth(screen, anchor)
	require.NoError(t, err)

	for c := 0; c < 3; c++ {
		assert.InDelta(t, anchor[c], world[c], 1e-3)
	}
}

func TestObjectTransform_BasisAxis(t *testing.T) {
	tr := NewObjectTransform(mgl32.Vec3{})
	tr.Scale = mgl32.Vec3{2, 3, 4}

	assert.Equal(t, mgl32.Vec3{2, 0, 0}, tr.BasisAxis(AxisX))
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, tr.BasisAxis(AxisY))
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, tr.BasisAxis(AxisZ))

	// 90 degrees around Z sends local X to world Y
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	rotated := tr.BasisAxis(AxisX)
	assert.InDelta(t, 0, rotated.X(), 1e-5)
	assert.InDelta(t, 2, rotated.Y(), 1e-5)
}
