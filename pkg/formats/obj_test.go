package formats

import (
	"strings"
	"testing"
)

func TestWriteOBJ_PositionsOnly(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	indices := []uint32{0, 1, 2}

	var sb strings.Builder
	if err := WriteOBJ(&sb, positions, nil, indices); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	want := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if sb.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriteOBJ_WithNormals(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	indices := []uint32{0, 1, 2}

	var sb strings.Builder
	if err := WriteOBJ(&sb, positions, normals, indices); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "vn 0 0 1\n") {
		t.Errorf("expected normal lines in output:\n%s", out)
	}
	if !strings.Contains(out, "f 1//1 2//2 3//3\n") {
		t.Errorf("expected face with normal refs in output:\n%s", out)
	}
}

func TestWriteOBJ_Mismatches(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}}

	var sb strings.Builder
	if err := WriteOBJ(&sb, positions, [][3]float32{{0, 0, 1}, {0, 0, 1}}, nil); err == nil {
		t.Error("expected error for mismatched normal count")
	}
	if err := WriteOBJ(&sb, positions, nil, []uint32{0, 0}); err == nil {
		t.Error("expected error for partial triangle")
	}
}
