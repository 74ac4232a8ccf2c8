// Package renderer provides OpenGL rendering of terrain meshes.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terraview/internal/engine/shader"
	"github.com/Faultbox/terraview/internal/engine/terrain"
	"github.com/Faultbox/terraview/internal/logger"
)

const terrainVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec4 vColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vNormal = aNormal;
	vColor = aColor;
}
`

const terrainFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vColor;

uniform vec3 uLightDir;
uniform float uAmbient;
uniform int uLitEnabled;

out vec4 FragColor;

void main() {
	if (uLitEnabled == 1) {
		float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
		FragColor = vec4(vColor.rgb * (uAmbient + (1.0 - uAmbient) * diffuse), vColor.a);
	} else {
		FragColor = vColor;
	}
}
`

// vertexStride is the byte size of terrain.Vertex: 3+3+4 float32 fields.
const vertexStride = 10 * 4

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the OpenGL state and the uploaded terrain mesh buffers.
type Renderer struct {
	config Config

	program       uint32
	locViewProj   int32
	locLightDir   int32
	locAmbient    int32
	locLitEnabled int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	wireframe bool
	lightDir  mgl32.Vec3
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		lightDir: mgl32.Vec3{0.4, 0.3, -0.85}.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// The mesh builder winds triangles clockwise under a left-handed
	// convention; front faces are CW here or the whole terrain gets culled.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CW)

	gl.ClearColor(0.08, 0.09, 0.12, 1.0)

	program, err := shader.CompileProgram(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	r.program = program

	r.locViewProj = shader.GetUniform(program, "uViewProj")
	r.locLightDir = shader.GetUniform(program, "uLightDir")
	r.locAmbient = shader.GetUniform(program, "uAmbient")
	r.locLitEnabled = shader.GetUniform(program, "uLitEnabled")

	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.deleteMeshBuffers()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func (r *Renderer) deleteMeshBuffers() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.indexCount = 0
}

// UploadMesh replaces the GPU buffers with a freshly built terrain mesh.
// Called at startup and whenever the viewer rebuilds the mesh.
func (r *Renderer) UploadMesh(mesh *terrain.Mesh) {
	r.deleteMeshBuffers()

	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		logger.Warn("terrain mesh has no drawable geometry",
			zap.Int("vertices", len(mesh.Vertices)),
			zap.Int("indices", len(mesh.Indices)),
		)
		return
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexStride,
		unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4,
		unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	// Color (location = 2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.indexCount = int32(len(mesh.Indices))

	logger.Debug("terrain mesh uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int32("indices", r.indexCount),
	)
}

// Begin clears the frame buffers.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the uploaded terrain mesh with the given view-projection.
// lit enables directional lighting for meshes built with computed normals.
func (r *Renderer) Draw(viewProj mgl32.Mat4, lit bool) {
	if r.indexCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(r.locLightDir, r.lightDir.X(), r.lightDir.Y(), r.lightDir.Z())
	gl.Uniform1f(r.locAmbient, 0.3)
	if lit {
		gl.Uniform1i(r.locLitEnabled, 1)
	} else {
		gl.Uniform1i(r.locLitEnabled, 0)
	}

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ToggleWireframe flips wireframe rendering and returns the new state.
func (r *Renderer) ToggleWireframe() bool {
	r.wireframe = !r.wireframe
	return r.wireframe
}

// Resize updates the viewport after a window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads back the current framebuffer as RGBA bytes,
// bottom-up as OpenGL stores it.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE,
		unsafe.Pointer(&pixels[0]))
	return pixels
}
