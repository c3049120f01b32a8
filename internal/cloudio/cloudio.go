// Package cloudio reads and writes colour point clouds as JSON files and
// exports hull geometry in the Wavefront OBJ format.
package cloudio

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/geo/r3"
)

// File is the on-disk form of a colour point cloud: a named colour space,
// the data shape and the values flattened in row-major order.
type File struct {
	Space  string    `json:"space"`
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

// Load reads and parses a point cloud file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading point cloud file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing point cloud file: %w", err)
	}
	return &f, nil
}

// Save writes a point cloud file.
func Save(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding point cloud file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing point cloud file: %w", err)
	}
	return nil
}

// WriteOBJ writes vertices and triangular faces as a Wavefront OBJ file.
// Faces index into the vertex list and are written with the 1-based
// indices the format expects.
func WriteOBJ(path string, vertices []r3.Vector, faces [][3]int) error {
	var b strings.Builder
	for _, v := range vertices {
		fmt.Fprintf(&b, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, f := range faces {
		fmt.Fprintf(&b, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing OBJ file: %w", err)
	}
	return nil
}
