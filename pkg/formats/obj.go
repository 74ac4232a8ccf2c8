package formats

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes an indexed triangle mesh as Wavefront OBJ text.
//
// normals may be nil; when present it must be the same length as positions
// and faces are written with normal references. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, positions [][3]float32, normals [][3]float32, indices []uint32) error {
	if normals != nil && len(normals) != len(positions) {
		return fmt.Errorf("normal count %d does not match position count %d", len(normals), len(positions))
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	bw := bufio.NewWriter(w)

	for _, p := range positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, n := range normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i]+1, indices[i+1]+1, indices[i+2]+1
		if normals != nil {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}

	return bw.Flush()
}
