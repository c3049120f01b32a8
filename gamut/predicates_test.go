package gamut

import (
	"testing"

	"github.com/golang/geo/r3"
)

func TestSignedOrientation_Signs(t *testing.T) {
	o := r3.Vector{}
	ex := r3.Vector{X: 1}
	ey := r3.Vector{Y: 1}
	ez := r3.Vector{Z: 1}

	if got := SignedOrientation(o, ex, ey, ez); got != 1 {
		t.Errorf("positive tetrahedron: got %d, want 1", got)
	}
	if got := SignedOrientation(o, ey, ex, ez); got != -1 {
		t.Errorf("mirrored tetrahedron: got %d, want -1", got)
	}
	flat := r3.Vector{X: 0.5, Y: 0.5}
	if got := SignedOrientation(o, ex, ey, flat); got != 0 {
		t.Errorf("flat tetrahedron: got %d, want 0", got)
	}
}

func TestCoplanar_FourPoints(t *testing.T) {
	square := []r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}
	if !Coplanar(square) {
		t.Error("square corners reported as spanning")
	}
	tetra := []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}
	if Coplanar(tetra) {
		t.Error("tetrahedron corners reported as coplanar")
	}
	if !Coplanar(tetra[:3]) {
		t.Error("three points must always count as coplanar")
	}
}

func TestPointOnSegment_EndpointsAndInterior(t *testing.T) {
	a := r3.Vector{}
	b := r3.Vector{X: 2}
	mid := r3.Vector{X: 1}

	if !PointOnSegment(a, b, mid, false) {
		t.Error("midpoint not on closed segment")
	}
	if !PointOnSegment(a, b, mid, true) {
		t.Error("midpoint not on strict segment")
	}
	if !PointOnSegment(a, b, a, false) || !PointOnSegment(a, b, b, false) {
		t.Error("endpoints not on closed segment")
	}
	if PointOnSegment(a, b, a, true) || PointOnSegment(a, b, b, true) {
		t.Error("endpoints on strict segment")
	}
}

func TestPointOnSegment_OffSegment(t *testing.T) {
	a := r3.Vector{}
	b := r3.Vector{X: 2}

	if PointOnSegment(a, b, r3.Vector{X: 1, Y: 0.1}, false) {
		t.Error("point off the line reported on segment")
	}
	if PointOnSegment(a, b, r3.Vector{X: 3}, false) {
		t.Error("point beyond b reported on segment")
	}
	if PointOnSegment(a, b, r3.Vector{X: -1}, false) {
		t.Error("point before a reported on segment")
	}
}

func TestPointInTriangle_InteriorEdgeOutside(t *testing.T) {
	t0 := r3.Vector{}
	t1 := r3.Vector{X: 4}
	t2 := r3.Vector{Y: 4}

	interior := r3.Vector{X: 1, Y: 1}
	if !PointInTriangle(t0, t1, t2, interior, false) ||
		!PointInTriangle(t0, t1, t2, interior, true) {
		t.Errorf("interior point %v not contained", interior)
	}

	edge := r3.Vector{X: 2}
	if !PointInTriangle(t0, t1, t2, edge, false) {
		t.Errorf("edge point %v not on closed triangle", edge)
	}
	if PointInTriangle(t0, t1, t2, edge, true) {
		t.Errorf("edge point %v on strict triangle", edge)
	}
	if PointInTriangle(t0, t1, t2, t1, true) {
		t.Error("vertex on strict triangle")
	}

	if PointInTriangle(t0, t1, t2, r3.Vector{X: 3, Y: 3}, false) {
		t.Error("point beyond the hypotenuse contained")
	}
	if PointInTriangle(t0, t1, t2, r3.Vector{X: 1, Y: 1, Z: 1}, false) {
		t.Error("point off the triangle plane contained")
	}
}

func TestPointInTriangle_CoincidentVertices(t *testing.T) {
	a := r3.Vector{}
	b := r3.Vector{X: 2}

	// Two coincident vertices collapse the triangle to a segment.
	if !PointInTriangle(a, a, b, r3.Vector{X: 1}, false) {
		t.Error("collapsed triangle does not contain its segment midpoint")
	}
	if PointInTriangle(a, a, b, r3.Vector{X: 3}, false) {
		t.Error("collapsed triangle contains a point beyond the segment")
	}
	if !PointInTriangle(a, b, b, r3.Vector{X: 1}, false) {
		t.Error("collapsed triangle with repeated last vertex fails")
	}
}

func TestPointInTetrahedron_InteriorFaceOutside(t *testing.T) {
	t0 := r3.Vector{}
	t1 := r3.Vector{X: 1}
	t2 := r3.Vector{Y: 1}
	t3 := r3.Vector{Z: 1}

	interior := r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}
	if !PointInTetrahedron(t0, t1, t2, t3, interior, false) ||
		!PointInTetrahedron(t0, t1, t2, t3, interior, true) {
		t.Errorf("interior point %v not contained", interior)
	}

	face := r3.Vector{X: 0.25, Y: 0.25}
	if !PointInTetrahedron(t0, t1, t2, t3, face, false) {
		t.Errorf("face point %v not in closed tetrahedron", face)
	}
	if PointInTetrahedron(t0, t1, t2, t3, face, true) {
		t.Errorf("face point %v in strict tetrahedron", face)
	}

	edge := r3.Vector{X: 0.5, Y: 0.5}
	if !PointInTetrahedron(t0, t1, t2, t3, edge, false) {
		t.Errorf("edge point %v not in closed tetrahedron", edge)
	}
	if PointInTetrahedron(t0, t1, t2, t3, edge, true) {
		t.Errorf("edge point %v in strict tetrahedron", edge)
	}

	if PointInTetrahedron(t0, t1, t2, t3, r3.Vector{X: 1, Y: 1, Z: 1}, false) {
		t.Error("outside point contained")
	}
	if PointInTetrahedron(t0, t1, t2, r3.Vector{X: 1, Y: 1}, interior, false) {
		t.Error("flat tetrahedron contains a point")
	}
}

func TestTrueShape_Reductions(t *testing.T) {
	p := r3.Vector{X: 1, Y: 2, Z: 3}
	q := r3.Vector{X: 4, Y: 5, Z: 6}

	if got := TrueShape([]r3.Vector{p, p, p}); len(got) != 1 || got[0] != p {
		t.Errorf("coincident points: got %v, want [%v]", got, p)
	}
	if got := TrueShape([]r3.Vector{p, q, p}); len(got) != 2 || got[0] != p || got[1] != q {
		t.Errorf("duplicate removal: got %v, want [%v %v]", got, p, q)
	}

	// The middle point of a collinear triple is absorbed into the segment.
	line := []r3.Vector{{}, {X: 2}, {X: 1}}
	got := TrueShape(line)
	if len(got) != 2 || got[0] != (r3.Vector{}) || got[1] != (r3.Vector{X: 2}) {
		t.Errorf("collinear triple: got %v, want the outer pair", got)
	}

	// A point inside a triangle is absorbed into the triangle.
	tri := []r3.Vector{{}, {X: 4}, {Y: 4}, {X: 1, Y: 1}}
	got = TrueShape(tri)
	if len(got) != 3 {
		t.Fatalf("triangle with interior point: got %d points, want 3", len(got))
	}
	for i, want := range tri[:3] {
		if got[i] != want {
			t.Errorf("triangle point %d: got %v, want %v", i, got[i], want)
		}
	}

	// Four corners of a square stay a quadrilateral.
	sq := []r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}
	if got := TrueShape(sq); len(got) != 4 {
		t.Errorf("square corners: got %d points, want 4", len(got))
	}
}

func TestPointInPolygon_DiagonalAndEdges(t *testing.T) {
	p0 := r3.Vector{}
	p1 := r3.Vector{X: 1}
	p2 := r3.Vector{Y: 1}
	p3 := r3.Vector{X: 1, Y: 1}

	center := r3.Vector{X: 0.5, Y: 0.5}
	if !PointInPolygon(p0, p1, p2, p3, center, false) {
		t.Error("center not in closed polygon")
	}
	// The center sits on the split diagonal, which still counts as interior.
	if !PointInPolygon(p0, p1, p2, p3, center, true) {
		t.Error("center on the diagonal not in strict polygon")
	}

	edge := r3.Vector{X: 0.5}
	if !PointInPolygon(p0, p1, p2, p3, edge, false) {
		t.Error("outer edge point not in closed polygon")
	}
	if PointInPolygon(p0, p1, p2, p3, edge, true) {
		t.Error("outer edge point in strict polygon")
	}

	if PointInPolygon(p0, p1, p2, p3, r3.Vector{X: 1.5, Y: 0.5}, false) {
		t.Error("outside point in polygon")
	}
}

func TestInShape_Dispatch(t *testing.T) {
	p := r3.Vector{X: 1, Y: 1, Z: 1}

	// Shapes that reduce to a single location match only exactly.
	if !InShape([]r3.Vector{p, p}, p, false) {
		t.Error("single location does not match itself")
	}
	if InShape([]r3.Vector{p, p}, r3.Vector{X: 1, Y: 1, Z: 1.0000001}, false) {
		t.Error("single location matches a nearby point")
	}

	seg := []r3.Vector{{}, {X: 2}}
	if !InShape(seg, r3.Vector{X: 1}, false) {
		t.Error("segment does not contain its midpoint")
	}
	if InShape(seg, r3.Vector{X: 1, Y: 1}, false) {
		t.Error("segment contains an off-line point")
	}

	tri := []r3.Vector{{}, {X: 4}, {Y: 4}}
	if !InShape(tri, r3.Vector{X: 2}, false) {
		t.Error("triangle misses an edge point without strictness")
	}
	if InShape(tri, r3.Vector{X: 2}, true) {
		t.Error("strict triangle contains an edge point")
	}

	quad := []r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}
	if !InShape(quad, r3.Vector{X: 0.5, Y: 0.5}, true) {
		t.Error("quadrilateral misses its center")
	}

	tetra := []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}
	if !InShape(tetra, r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}, true) {
		t.Error("tetrahedron misses an interior point")
	}
	if InShape(tetra, r3.Vector{X: 1, Y: 1, Z: 1}, false) {
		t.Error("tetrahedron contains an outside point")
	}
}
