// Package terrain builds renderable terrain meshes from heightmap data.
package terrain

// ColorMode selects how vertex attributes are derived from the height grid.
type ColorMode int

const (
	// ColorFlat assigns the same color to every vertex.
	ColorFlat ColorMode = iota
	// ColorHeightBands colors each vertex by which quartile of the height
	// range its sample falls into.
	ColorHeightBands
	// ColorLit colors vertices white and relies on computed normals for
	// directional lighting.
	ColorLit
)

// HeightGrid is a 2-D array of elevation samples indexed by (column, row),
// top-left origin. Immutable once built.
type HeightGrid struct {
	Samples [][]int32 // [column][row]
	Width   int
	Height  int
	Min     int32 // lowest sample observed during the build
	Max     int32 // highest sample observed during the build
}

// At returns the sample at the given grid coordinates.
func (g *HeightGrid) At(x, y int) int32 {
	return g.Samples[x][y]
}

// Vertex is a terrain mesh vertex: grid position plus color and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds terrain geometry ready for GPU upload: one vertex per grid
// cell and a triangle-list index buffer, two triangles per interior cell.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}
