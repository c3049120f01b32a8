package colourspace

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/LarsNiebuhr/colourspace/internal/cloudio"
	"github.com/LarsNiebuhr/colourspace/space"
)

func TestNewMapper_Defaults(t *testing.T) {
	m, err := NewMapper(nil, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	if _, ok := m.Space().(*space.CIELABSpace); !ok {
		t.Errorf("default hull space: got %T, want *space.CIELABSpace", m.Space())
	}
}

func TestNewMapper_BadSpace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hull.Space = SpaceSpec{Type: "nope"}
	if _, err := NewMapper(&cfg, nil); !errors.Is(err, ErrUnknownSpace) {
		t.Errorf("got error %v, want ErrUnknownSpace", err)
	}
}

func TestMapper_BuildInsideClip(t *testing.T) {
	cfg := xyzConfig()
	m, err := NewMapper(&cfg, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	data, err := space.NewPoints(space.XYZ, []int{8, 3}, cubeValues(-1, 1))
	if err != nil {
		t.Fatalf("NewPoints failed: %v", err)
	}
	g, err := m.BuildGamut(data)
	if err != nil {
		t.Fatalf("BuildGamut failed: %v", err)
	}
	if got := len(g.Vertices()); got != 8 {
		t.Errorf("hull vertices: got %d, want 8", got)
	}

	target, err := space.NewPoints(space.XYZ, []int{2, 3}, []float64{0, 0, 0, 3, 0, 0})
	if err != nil {
		t.Fatalf("NewPoints failed: %v", err)
	}
	mask, err := m.InsideMask(g, target)
	if err != nil {
		t.Fatalf("InsideMask failed: %v", err)
	}
	if !mask.At(0) || mask.At(1) {
		t.Errorf("mask: got (%v, %v), want (true, false)", mask.At(0), mask.At(1))
	}

	clipped, err := m.Clip(g, target)
	if err != nil {
		t.Fatalf("Clip failed: %v", err)
	}
	out := clipped.Get(space.XYZ)
	if out[0] != (r3.Vector{}) {
		t.Errorf("inside point moved: got %v", out[0])
	}
	want := r3.Vector{X: 1}
	if d := out[1].Sub(want).Norm(); d > 1e-9 {
		t.Errorf("outside point: got %v, want %v (off by %.2e)", out[1], want, d)
	}
}

func TestRun_Pipeline(t *testing.T) {
	dir := t.TempDir()
	gamutPath := filepath.Join(dir, "gamut.json")
	targetPath := filepath.Join(dir, "target.json")
	outPath := filepath.Join(dir, "out.json")

	err := cloudio.Save(gamutPath, &cloudio.File{
		Space:  "xyz",
		Shape:  []int{8, 3},
		Values: cubeValues(-1, 1),
	})
	if err != nil {
		t.Fatalf("saving gamut cloud failed: %v", err)
	}
	err = cloudio.Save(targetPath, &cloudio.File{
		Space:  "xyz",
		Shape:  []int{2, 3},
		Values: []float64{0.25, -0.5, 0, 3, 0, 0},
	})
	if err != nil {
		t.Fatalf("saving target cloud failed: %v", err)
	}

	cfg := xyzConfig()
	m, err := NewMapper(&cfg, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	if err := m.Run(context.Background(), gamutPath, targetPath, outPath); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out, err := cloudio.Load(outPath)
	if err != nil {
		t.Fatalf("loading result failed: %v", err)
	}
	if out.Space != "xyz" {
		t.Errorf("result space: got %q, want %q", out.Space, "xyz")
	}
	if len(out.Shape) != 2 || out.Shape[0] != 2 || out.Shape[1] != 3 {
		t.Errorf("result shape: got %v, want [2 3]", out.Shape)
	}
	want := []float64{0.25, -0.5, 0, 1, 0, 0}
	if len(out.Values) != len(want) {
		t.Fatalf("got %d values, want %d", len(out.Values), len(want))
	}
	for i, v := range out.Values {
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("value %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	m, err := NewMapper(nil, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx, "gamut.json", "target.json", "out.json"); !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
}

func TestLoadPoints_UnknownSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.json")
	err := cloudio.Save(path, &cloudio.File{
		Space:  "nope",
		Shape:  []int{1, 3},
		Values: []float64{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("saving fixture failed: %v", err)
	}
	m, err := NewMapper(nil, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	if _, err := m.LoadPoints(path); !errors.Is(err, ErrUnknownSpace) {
		t.Errorf("got error %v, want ErrUnknownSpace", err)
	}
}

// xyzConfig returns the default configuration with the hull space pinned
// to CIE XYZ, so test fixtures need no colour conversion.
func xyzConfig() Config {
	cfg := DefaultConfig()
	cfg.Hull.Space = SpaceSpec{Type: "xyz"}
	return cfg
}

// cubeValues returns the eight corners of the axis aligned cube spanning
// [lo, hi] on every axis, flattened in row-major order.
func cubeValues(lo, hi float64) []float64 {
	out := make([]float64, 0, 24)
	for _, x := range []float64{lo, hi} {
		for _, y := range []float64{lo, hi} {
			for _, z := range []float64{lo, hi} {
				out = append(out, x, y, z)
			}
		}
	}
	return out
}
