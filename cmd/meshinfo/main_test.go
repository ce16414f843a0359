package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rapyuta-robotics/geometric-shapes/pkg/meshops"
)

func TestParseScale(t *testing.T) {
	cases := []struct {
		in   string
		want mgl64.Vec3
	}{
		{"1", mgl64.Vec3{1, 1, 1}},
		{"2.5", mgl64.Vec3{2.5, 2.5, 2.5}},
		{"1:2:3", mgl64.Vec3{1, 2, 3}},
		{"0.5:1:-2", mgl64.Vec3{0.5, 1, -2}},
	}
	for _, c := range cases {
		got, err := parseScale(c.in)
		if err != nil {
			t.Errorf("parseScale(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseScale(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	for _, in := range []string{"", "1:2", "1:2:3:4", "a", "1:b:3"} {
		if _, err := parseScale(in); err == nil {
			t.Errorf("parseScale(%q): expected error", in)
		}
	}
}

// TestExportReload exercises the same path the -stl flag takes: build a
// mesh, write it as binary STL, and load it back through the resource
// pipeline.
func TestExportReload(t *testing.T) {
	box := meshops.Box(mgl64.Vec3{1, 1, 1})
	path := filepath.Join(t.TempDir(), "box.stl")

	if err := writeSTL(path, box); err != nil {
		t.Fatalf("writeSTL: %v", err)
	}

	got, err := meshops.FromResource(path)
	if err != nil {
		t.Fatalf("FromResource: %v", err)
	}
	if got.TriangleCount() != box.TriangleCount() {
		t.Errorf("triangle count = %d, want %d", got.TriangleCount(), box.TriangleCount())
	}
	// STL stores one vertex record per corner; the importer merges
	// identical positions back into the original eight.
	if got.VertexCount() != 8 {
		t.Errorf("vertex count = %d, want 8", got.VertexCount())
	}
	if v := got.Volume(); math.Abs(v-8) > 1e-9 {
		t.Errorf("volume = %g, want 8", v)
	}
}
