package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	smartsym "github.com/gekko3d/smartsym"
)

// demoWedge is a one-sided pyramid with its base on the X=0 plane, so
// mirroring along X produces a closed bipyramid.
func demoWedge() *smartsym.Mesh {
	return &smartsym.Mesh{
		Vertices: []mgl32.Vec3{
			{0, -1, -1},
			{0, 1, -1},
			{0, 0, 1},
			{1.2, 0, 0},
		},
		Faces: [][3]int{
			{0, 1, 2},
			{0, 3, 1},
			{1, 3, 2},
			{2, 3, 0},
		},
	}
}

func main() {
	prefs, err := smartsym.LoadPreferences()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid preferences: %v\n", err)
		prefs = smartsym.DefaultPreferences()
	}

	registry := smartsym.NewRegistry()
	defer registry.Teardown()

	ctx := &smartsym.EditContext{
		Mode: smartsym.ModeEdit,
		Object: &smartsym.MeshObject{
			Name:      "demo_wedge",
			Transform: smartsym.NewObjectTransform(mgl32.Vec3{}),
			Mesh:      demoWedge(),
		},
	}

	app := smartsym.NewAppBuilder().
		UseModule(
			smartsym.LoggingModule{Prefix: "smartsym"},
			smartsym.NewPlatformWindow(1280, 720, "Smart Symmetrize"),
			smartsym.InputModule{},
			smartsym.TimeModule{},
			smartsym.CameraModule{Distance: 8},
			smartsym.OverlayModule{},
			smartsym.SymmetrizeModule{Prefs: prefs, Registry: registry, Context: ctx},
		).
		Build()

	if binding, err := prefs.Binding(); err == nil {
		app.Logger().Infof("press %s to start mirroring, click an arrow to commit", binding)
	}

	app.Run()
}
