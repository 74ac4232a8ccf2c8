package terrain

import (
	"math"
	"testing"
)

// gridFromSamples builds a HeightGrid directly from a [column][row] sample
// array, computing the observed range the way the loader would.
func gridFromSamples(samples [][]int32) *HeightGrid {
	g := &HeightGrid{
		Samples: samples,
		Width:   len(samples),
		Height:  len(samples[0]),
	}
	g.Min, g.Max = samples[0][0], samples[0][0]
	for _, col := range samples {
		for _, v := range col {
			if v < g.Min {
				g.Min = v
			}
			if v > g.Max {
				g.Max = v
			}
		}
	}
	return g
}

func flatGrid(w, h int, value int32) *HeightGrid {
	samples := make([][]int32, w)
	for x := range samples {
		samples[x] = make([]int32, h)
		for y := range samples[x] {
			samples[x][y] = value
		}
	}
	return gridFromSamples(samples)
}

func TestBuildMesh_Counts(t *testing.T) {
	cases := []struct{ w, h int }{
		{2, 2}, {2, 5}, {5, 2}, {4, 4}, {7, 3},
	}

	for _, tc := range cases {
		mesh := BuildMesh(flatGrid(tc.w, tc.h, 0), MeshOptions{})

		if len(mesh.Vertices) != tc.w*tc.h {
			t.Errorf("%dx%d: vertex count %d, want %d", tc.w, tc.h, len(mesh.Vertices), tc.w*tc.h)
		}
		wantIdx := (tc.w - 1) * (tc.h - 1) * 6
		if len(mesh.Indices) != wantIdx {
			t.Errorf("%dx%d: index count %d, want %d", tc.w, tc.h, len(mesh.Indices), wantIdx)
		}
		for i, idx := range mesh.Indices {
			if int(idx) >= tc.w*tc.h {
				t.Fatalf("%dx%d: index %d out of range at %d", tc.w, tc.h, idx, i)
			}
		}
	}
}

func TestBuildMesh_VertexPositions(t *testing.T) {
	samples := [][]int32{
		{1, 2, 3},
		{4, 5, 6},
	}
	grid := gridFromSamples(samples)
	mesh := BuildMesh(grid, MeshOptions{})

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := mesh.Vertices[x+y*grid.Width]
			want := [3]float32{float32(x), float32(y), float32(samples[x][y])}
			if v.Position != want {
				t.Errorf("vertex (%d,%d): position %v, want %v", x, y, v.Position, want)
			}
		}
	}
}

func TestBuildMesh_Winding(t *testing.T) {
	const w, h = 4, 3
	mesh := BuildMesh(flatGrid(w, h, 0), MeshOptions{})

	idx := func(cx, cy int) uint32 { return uint32(cx + cy*w) }

	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			base := (x + y*(w-1)) * 6
			tri := mesh.Indices[base : base+6]

			want := []uint32{
				idx(x+1, y+1), idx(x+1, y), idx(x, y),
				idx(x+1, y+1), idx(x, y), idx(x, y+1),
			}
			for i := range want {
				if tri[i] != want[i] {
					t.Fatalf("cell (%d,%d): indices %v, want %v", x, y, tri, want)
				}
			}

			// Each triangle's indices must be distinct.
			if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
				t.Fatalf("cell (%d,%d): degenerate triangle 1: %v", x, y, tri[:3])
			}
			if tri[3] == tri[4] || tri[4] == tri[5] || tri[3] == tri[5] {
				t.Fatalf("cell (%d,%d): degenerate triangle 2: %v", x, y, tri[3:])
			}
		}
	}
}

func TestBuildMesh_DegenerateGrid(t *testing.T) {
	// A single row or column is valid but produces no triangles.
	for _, tc := range []struct{ w, h int }{{1, 5}, {5, 1}, {1, 1}} {
		mesh := BuildMesh(flatGrid(tc.w, tc.h, 0), MeshOptions{})
		if len(mesh.Vertices) != tc.w*tc.h {
			t.Errorf("%dx%d: vertex count %d, want %d", tc.w, tc.h, len(mesh.Vertices), tc.w*tc.h)
		}
		if len(mesh.Indices) != 0 {
			t.Errorf("%dx%d: expected no indices, got %d", tc.w, tc.h, len(mesh.Indices))
		}
	}
}

func TestHeightBand_Boundaries(t *testing.T) {
	const min, max = 0, 100

	cases := []struct {
		sample int32
		want   int
	}{
		{0, 0},   // exactly min -> band 0
		{24, 0},  // just under the first boundary
		{25, 1},  // inclusive lower bound of band 1
		{49, 1},  // top of band 1
		{50, 2},  // inclusive lower bound of band 2
		{74, 2},  // top of band 2
		{75, 3},  // top band catches >= min + 3*(max-min)/4
		{100, 3}, // exactly max -> band 3
	}

	for _, tc := range cases {
		if got := heightBand(tc.sample, min, max); got != tc.want {
			t.Errorf("heightBand(%d, %d, %d) = %d, want %d", tc.sample, min, max, got, tc.want)
		}
	}
}

func TestHeightBand_CollapsedRange(t *testing.T) {
	if got := heightBand(7, 7, 7); got != 0 {
		t.Errorf("collapsed range: band %d, want 0", got)
	}
}

func TestBuildMesh_HeightBandColors(t *testing.T) {
	samples := [][]int32{
		{0, 100},
		{75, 30},
	}
	mesh := BuildMesh(gridFromSamples(samples), MeshOptions{Mode: ColorHeightBands})

	w := 2
	check := func(x, y, band int) {
		v := mesh.Vertices[x+y*w]
		if v.Color != bandColors[band] {
			t.Errorf("vertex (%d,%d): color %v, want band %d %v", x, y, v.Color, band, bandColors[band])
		}
	}
	check(0, 0, 0) // sample 0 == min
	check(0, 1, 3) // sample 100 == max
	check(1, 0, 3) // sample 75 >= min + 3*(max-min)/4
	check(1, 1, 1) // sample 30
}

func TestBuildMesh_FlatColor(t *testing.T) {
	custom := [4]float32{1, 0, 0, 1}
	mesh := BuildMesh(flatGrid(2, 2, 0), MeshOptions{Mode: ColorFlat, FlatColor: custom})
	for i, v := range mesh.Vertices {
		if v.Color != custom {
			t.Fatalf("vertex %d: color %v, want %v", i, v.Color, custom)
		}
	}

	mesh = BuildMesh(flatGrid(2, 2, 0), MeshOptions{Mode: ColorFlat})
	if mesh.Vertices[0].Color != DefaultFlatColor {
		t.Errorf("zero-value flat color: got %v, want default %v", mesh.Vertices[0].Color, DefaultFlatColor)
	}
}

func TestBuildMesh_Bounds(t *testing.T) {
	samples := [][]int32{
		{-5, 2, 0},
		{9, 1, 3},
	}
	mesh := BuildMesh(gridFromSamples(samples), MeshOptions{})

	wantMin := [3]float32{0, 0, -5}
	wantMax := [3]float32{1, 2, 9}
	if mesh.Bounds.Min != wantMin || mesh.Bounds.Max != wantMax {
		t.Errorf("bounds %v..%v, want %v..%v", mesh.Bounds.Min, mesh.Bounds.Max, wantMin, wantMax)
	}
}

func TestComputeNormals_FlatGridPointsUp(t *testing.T) {
	mesh := BuildMesh(flatGrid(3, 3, 7), MeshOptions{Mode: ColorLit})

	for i, v := range mesh.Vertices {
		if math.Abs(float64(v.Normal[0])) > 1e-5 ||
			math.Abs(float64(v.Normal[1])) > 1e-5 ||
			math.Abs(float64(v.Normal[2]-1)) > 1e-5 {
			t.Errorf("vertex %d: normal %v, want (0, 0, 1)", i, v.Normal)
		}
	}
}

func TestComputeNormals_Normalized(t *testing.T) {
	samples := [][]int32{
		{0, 4, 0},
		{8, 0, 2},
		{1, 6, 3},
	}
	mesh := BuildMesh(gridFromSamples(samples), MeshOptions{Mode: ColorLit})

	for i, v := range mesh.Vertices {
		len := math.Sqrt(float64(v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2]))
		if math.Abs(len-1) > 1e-4 {
			t.Errorf("vertex %d: normal %v has length %f", i, v.Normal, len)
		}
		// Terrain is a height field, every normal should face upward.
		if v.Normal[2] <= 0 {
			t.Errorf("vertex %d: normal %v faces down", i, v.Normal)
		}
	}
}
