package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// bandColors is the quartile palette for ColorHeightBands, ascending:
// water, low vegetation, exposed terrain, snow caps.
var bandColors = [4][4]float32{
	{0.10, 0.25, 0.70, 1.0},
	{0.15, 0.55, 0.20, 1.0},
	{0.45, 0.35, 0.22, 1.0},
	{0.95, 0.95, 0.97, 1.0},
}

// DefaultFlatColor is used by ColorFlat when no color is configured.
var DefaultFlatColor = [4]float32{0.35, 0.65, 0.30, 1.0}

// MeshOptions control vertex attribute generation.
type MeshOptions struct {
	Mode      ColorMode
	FlatColor [4]float32 // used by ColorFlat; zero value falls back to DefaultFlatColor
}

// BuildMesh converts a height grid into an indexed triangle mesh.
//
// One vertex is emitted per grid cell in row-major order (index x + y*width),
// positioned at (x, y, sample). Each interior cell produces two triangles
// wound clockwise for the left-handed, clockwise-front-face convention the
// renderer culls with; reversing the winding culls the entire terrain.
//
// A grid with a single row or column yields a valid mesh with zero triangles.
func BuildMesh(grid *HeightGrid, opts MeshOptions) *Mesh {
	w := grid.Width
	h := grid.Height

	flat := opts.FlatColor
	if flat == ([4]float32{}) {
		flat = DefaultFlatColor
	}

	vertices := make([]Vertex, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sample := grid.Samples[x][y]

			v := Vertex{
				Position: [3]float32{float32(x), float32(y), float32(sample)},
			}

			switch opts.Mode {
			case ColorHeightBands:
				v.Color = bandColors[heightBand(sample, grid.Min, grid.Max)]
			case ColorLit:
				v.Color = [4]float32{1, 1, 1, 1}
			default:
				v.Color = flat
			}

			vertices[x+y*w] = v
		}
	}

	indices := buildIndices(w, h)

	mesh := &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds: Bounds{
			Min: [3]float32{0, 0, float32(grid.Min)},
			Max: [3]float32{float32(w - 1), float32(h - 1), float32(grid.Max)},
		},
	}

	if opts.Mode == ColorLit {
		ComputeNormals(mesh)
	}

	return mesh
}

// buildIndices emits two triangles per interior cell, 6 indices at output
// offset (x + y*(width-1))*6, each index referencing vertex cx + cy*width.
func buildIndices(w, h int) []uint32 {
	if w < 2 || h < 2 {
		return nil
	}

	idx := func(cx, cy int) uint32 {
		return uint32(cx + cy*w)
	}

	indices := make([]uint32, (w-1)*(h-1)*6)
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			base := (x + y*(w-1)) * 6

			indices[base+0] = idx(x+1, y+1)
			indices[base+1] = idx(x+1, y)
			indices[base+2] = idx(x, y)

			indices[base+3] = idx(x+1, y+1)
			indices[base+4] = idx(x, y)
			indices[base+5] = idx(x, y+1)
		}
	}
	return indices
}

// heightBand returns the quartile band of a sample within [min, max]:
// inclusive lower bound, exclusive upper bound, with the top band catching
// everything from min + 3*(max-min)/4 upward. A collapsed range puts every
// sample in band 0.
func heightBand(sample, min, max int32) int {
	if max == min {
		return 0
	}
	step := float32(max-min) / 4
	band := int(float32(sample-min) / step)
	if band > 3 {
		band = 3
	}
	return band
}

// BandColor returns the quartile palette color for a sample within the
// given range.
func BandColor(sample, min, max int32) [4]float32 {
	return bandColors[heightBand(sample, min, max)]
}

// ComputeNormals recalculates per-vertex normals by accumulating face
// normals over the index list and normalizing the sums.
//
// Faces are wound clockwise, so the outward (up-facing) normal of a face
// (v0, v1, v2) is cross(v2-v0, v1-v0).
func ComputeNormals(mesh *Mesh) {
	for i := range mesh.Vertices {
		mesh.Vertices[i].Normal = [3]float32{}
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Indices[i]
		b := mesh.Indices[i+1]
		c := mesh.Indices[i+2]

		p0 := mgl32.Vec3(mesh.Vertices[a].Position)
		p1 := mgl32.Vec3(mesh.Vertices[b].Position)
		p2 := mgl32.Vec3(mesh.Vertices[c].Position)

		face := p2.Sub(p0).Cross(p1.Sub(p0))

		for _, vi := range [3]uint32{a, b, c} {
			n := &mesh.Vertices[vi].Normal
			n[0] += face.X()
			n[1] += face.Y()
			n[2] += face.Z()
		}
	}

	for i := range mesh.Vertices {
		n := mgl32.Vec3(mesh.Vertices[i].Normal)
		if n.Len() < 1e-6 {
			// Degenerate or unreferenced vertex, point straight up.
			mesh.Vertices[i].Normal = [3]float32{0, 0, 1}
			continue
		}
		mesh.Vertices[i].Normal = n.Normalize()
	}
}
