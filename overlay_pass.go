package smartsym

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// OverlayVertex matches the WGSL VertexInput
type OverlayVertex struct {
	Pos   [3]float32
	Color [4]float32
}

type stripSpan struct {
	first uint32
	count uint32
}

// OverlayPass renders viewport overlay polylines. Each polyline is one
// line-strip draw call; alpha blending is enabled for this pass only.
type OverlayPass struct {
	pipeline     *wgpu.RenderPipeline
	bindGroup    *wgpu.BindGroup
	cameraBuffer *wgpu.Buffer
	vertexBuffer *wgpu.Buffer
	vertexCap    uint32
	strips       []stripSpan
	device       *wgpu.Device
}

func NewOverlayPass(device *wgpu.Device, format wgpu.TextureFormat) (*OverlayPass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "OverlayShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: OverlayWGSL},
	})
	if err != nil {
		return nil, err
	}

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "OverlayCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					MinBindingSize:   64, // mat4x4<f32>
					HasDynamicOffset: false,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "OverlayPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(OverlayVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         12,
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil, // overlay draws on top of everything
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	cameraBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "OverlayCameraBuffer",
		Size:  64,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "OverlayCameraBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  cameraBuffer,
				Size:    64,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &OverlayPass{
		pipeline:     pipeline,
		bindGroup:    bindGroup,
		cameraBuffer: cameraBuffer,
		device:       device,
	}, nil
}

// Update uploads the frame's polylines and camera matrix. The previous
// frame's strips are replaced wholesale.
func (p *OverlayPass) Update(queue *wgpu.Queue, lines []Polyline, viewProj mgl32.Mat4) {
	queue.WriteBuffer(p.cameraBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&viewProj[0])), int(unsafe.Sizeof(viewProj))))

	p.strips = p.strips[:0]
	var vertices []OverlayVertex
	for _, line := range lines {
		if len(line.Points) < 2 {
			continue
		}
		p.strips = append(p.strips, stripSpan{
			first: uint32(len(vertices)),
			count: uint32(len(line.Points)),
		})
		for _, pt := range line.Points {
			vertices = append(vertices, OverlayVertex{
				Pos:   [3]float32{pt.X(), pt.Y(), pt.Z()},
				Color: line.Color,
			})
		}
	}

	if len(vertices) == 0 {
		return
	}

	vertexCount := uint32(len(vertices))
	sizeBytes := uint64(len(vertices) * int(unsafe.Sizeof(OverlayVertex{})))

	if p.vertexBuffer == nil || p.vertexCap < vertexCount {
		if p.vertexBuffer != nil {
			p.vertexBuffer.Release()
		}
		p.vertexCap = vertexCount + 128 // margin
		p.vertexBuffer, _ = p.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "OverlayVertexBuffer",
			Size:  uint64(p.vertexCap) * uint64(unsafe.Sizeof(OverlayVertex{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
	}

	queue.WriteBuffer(p.vertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), sizeBytes))
}

// Draw issues one line-strip draw call per polyline uploaded by Update.
func (p *OverlayPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.vertexBuffer == nil || len(p.strips) == 0 {
		return
	}

	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.SetVertexBuffer(0, p.vertexBuffer, 0, p.vertexBuffer.GetSize())

	for _, strip := range p.strips {
		pass.Draw(strip.count, 1, strip.first, 0)
	}
}
