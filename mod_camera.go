package smartsym

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is an orbit (turntable) viewport camera around a target point.
// Yaw, Pitch and Fov are in degrees.
type Camera struct {
	Target      mgl32.Vec3
	Distance    float32
	Yaw         float32
	Pitch       float32
	Fov         float32
	Sensitivity float32

	lastX, lastY float64
	orbiting     bool
}

func NewCamera(target mgl32.Vec3, distance float32) *Camera {
	return &Camera{
		Target:      target,
		Distance:    distance,
		Fov:         60,
		Sensitivity: 0.25,
	}
}

func (c *Camera) forward() mgl32.Vec3 {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}.Normalize()
}

func (c *Camera) Position() mgl32.Vec3 {
	return c.Target.Sub(c.forward().Mul(c.Distance))
}

// ViewState snapshots the camera for a viewport region.
func (c *Camera) ViewState(region Region) ViewState {
	aspect := float32(region.Width) / float32(region.Height)
	return ViewState{
		View:       mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0}),
		Projection: mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, 0.1, 1000),
		Region:     region,
	}
}

type CameraModule struct {
	Target   mgl32.Vec3
	Distance float32
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	distance := m.Distance
	if distance <= 0 {
		distance = 10
	}
	cmd.AddResources(NewCamera(m.Target, distance))
	app.UseSystem(
		System(orbitCameraSystem).
			InStage(Update),
	)
}

// orbitCameraSystem implements the host-side viewport navigation that
// modal sessions pass through: middle-drag (or alt-drag) orbits, the
// scroll wheel dollies.
func orbitCameraSystem(input *Input, cam *Camera) {
	dragging := input.Pressed[MouseButtonMiddle] ||
		(input.Pressed[KeyLeftAlt] && input.Pressed[MouseButtonLeft])

	if dragging {
		if cam.orbiting {
			dx := input.MouseX - cam.lastX
			dy := input.MouseY - cam.lastY
			cam.Yaw += float32(dx) * cam.Sensitivity
			cam.Pitch += float32(dy) * cam.Sensitivity
			if cam.Pitch > 89 {
				cam.Pitch = 89
			}
			if cam.Pitch < -89 {
				cam.Pitch = -89
			}
		}
		cam.orbiting = true
		cam.lastX = input.MouseX
		cam.lastY = input.MouseY
	} else {
		cam.orbiting = false
	}

	if input.ScrollY != 0 {
		cam.Distance *= float32(math.Pow(0.9, input.ScrollY))
		if cam.Distance < 0.5 {
			cam.Distance = 0.5
		}
	}
}
