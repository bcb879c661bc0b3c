package smartsym

import (
	"reflect"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

type GpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
}

func createGpuState(s *WindowState) *GpuState {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(s.WindowWidth),
		Height:      uint32(s.WindowHeight),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}

	surface.Configure(adapter, device, &surfaceConfig)

	return &GpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: &surfaceConfig,
	}
}

// Overlay is the viewport draw subscription: handlers contribute
// polylines each frame until removed. It also carries the redraw
// request flag event handlers set to keep the viewport responsive.
type Overlay struct {
	handlers        []*OverlayHandle
	redrawRequested bool
}

type OverlayHandle struct {
	fn      DrawFunc
	removed bool
}

// Remove unsubscribes the handler; it contributes nothing afterwards.
// Safe to call more than once.
func (h *OverlayHandle) Remove() {
	h.removed = true
}

func (o *Overlay) AddHandler(fn DrawFunc) *OverlayHandle {
	h := &OverlayHandle{fn: fn}
	o.handlers = append(o.handlers, h)
	return h
}

func (o *Overlay) RequestRedraw() {
	o.redrawRequested = true
}

// Collect gathers the frame's polylines from live handlers and drops
// removed ones.
func (o *Overlay) Collect() []Polyline {
	var lines []Polyline
	kept := o.handlers[:0]
	for _, h := range o.handlers {
		if h.removed {
			continue
		}
		kept = append(kept, h)
		lines = append(lines, h.fn()...)
	}
	o.handlers = kept
	o.redrawRequested = false
	return lines
}

// OverlayModule owns the GPU surface and renders the overlay polylines
// every frame. Requires a WindowState (install PlatformWindowModule
// first) and a Camera.
type OverlayModule struct{}

func (m OverlayModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	ws, ok := app.resources[t].(*WindowState)
	if !ok {
		panic("OverlayModule requires a WindowState resource; install PlatformWindowModule first")
	}

	gpu := createGpuState(ws)
	pass, err := NewOverlayPass(gpu.device, gpu.surfaceConfig.Format)
	if err != nil {
		panic(err)
	}

	cmd.AddResources(gpu, pass, &Overlay{})
	app.UseSystem(
		System(overlayRenderSystem).
			InStage(Render),
	)
}

func overlayRenderSystem(s *WindowState, gpu *GpuState, pass *OverlayPass, overlay *Overlay, cam *Camera, input *Input) {
	width, height := input.WindowWidth, input.WindowHeight
	if width == 0 || height == 0 {
		return
	}

	if uint32(width) != gpu.surfaceConfig.Width || uint32(height) != gpu.surfaceConfig.Height {
		gpu.surfaceConfig.Width = uint32(width)
		gpu.surfaceConfig.Height = uint32(height)
		gpu.surface.Configure(gpu.adapter, gpu.device, gpu.surfaceConfig)
	}

	view := cam.ViewState(Region{Width: width, Height: height})
	viewProj := view.Projection.Mul4(view.View)

	pass.Update(gpu.queue, overlay.Collect(), viewProj)

	nextTexture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	textureView, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer textureView.Release()

	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       textureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.1, G: 0.1, B: 0.12, A: 1.0},
			},
		},
	})
	defer renderPass.Release()

	pass.Draw(renderPass)

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpu.queue.Submit(cmdBuffer)
	gpu.surface.Present()
}
