package gamut

import "github.com/golang/geo/r3"

// All predicates in this file compare against exact zero. The arithmetic
// is plain float64, so points that are meant to coincide or to lie on a
// shared plane must be constructed from identical coordinate values.

// SignedOrientation reports the orientation of the tetrahedron t0 t1 t2 t3:
// 1 for positive signed volume, -1 for negative, 0 for a flat tetrahedron.
func SignedOrientation(t0, t1, t2, t3 r3.Vector) int {
	vol := t1.Sub(t0).Dot(t2.Sub(t0).Cross(t3.Sub(t0)))
	switch {
	case vol > 0:
		return 1
	case vol < 0:
		return -1
	}
	return 0
}

// Coplanar reports whether the first four points lie in a common plane.
// Fewer than four points are always coplanar. Points beyond the fourth
// are ignored.
func Coplanar(pts []r3.Vector) bool {
	if len(pts) < 4 {
		return true
	}
	b := pts[1].Sub(pts[0])
	c := pts[2].Sub(pts[0])
	d := pts[3].Sub(pts[0])
	return d.Dot(b.Cross(c)) == 0
}

// PointOnSegment reports whether p lies on the closed segment from a to b.
// With strict set, p must not coincide with either endpoint; interior
// membership is tested the same way either way.
func PointOnSegment(a, b, p r3.Vector, strict bool) bool {
	if strict && (p == a || p == b) {
		return false
	}
	ab := b.Sub(a)
	ap := p.Sub(a)
	if ab.Cross(ap) != (r3.Vector{}) {
		return false
	}
	if ap.Dot(ab) < 0 {
		return false
	}
	return ap.Norm2() <= ab.Norm2()
}

// PointInTriangle reports whether p lies in the closed triangle t0 t1 t2,
// using barycentric coordinates. With strict set, points on the triangle
// edges are excluded. A triangle with two coincident vertices is treated
// as the segment between the remaining distinct pair.
func PointInTriangle(t0, t1, t2, p r3.Vector, strict bool) bool {
	if strict && (PointOnSegment(t0, t1, p, false) ||
		PointOnSegment(t1, t2, p, false) ||
		PointOnSegment(t0, t2, p, false)) {
		return false
	}

	switch {
	case t0 == t1:
		return PointOnSegment(t0, t2, p, false)
	case t0 == t2:
		return PointOnSegment(t0, t1, p, false)
	case t1 == t2:
		return PointOnSegment(t0, t1, p, false)
	}

	b := t1.Sub(t0)
	c := t2.Sub(t0)
	q := p.Sub(t0)

	bxc := b.Cross(c)
	if bxc.Dot(q) != 0 {
		return false
	}

	cxq := c.Cross(q)
	cxb := c.Cross(b)
	if cxq.Dot(cxb) < 0 {
		return false
	}

	bxq := b.Cross(q)
	if bxq.Dot(bxc) < 0 {
		return false
	}

	denom := bxc.Norm()
	r := cxq.Norm() / denom
	t := bxq.Norm() / denom
	return r+t <= 1
}

// PointInTetrahedron reports whether p lies in the closed tetrahedron
// t0 t1 t2 t3. With strict set, points on the four faces are excluded.
// A flat tetrahedron contains nothing.
func PointInTetrahedron(t0, t1, t2, t3, p r3.Vector, strict bool) bool {
	if strict && (PointInTriangle(t1, t2, t3, p, false) ||
		PointInTriangle(t0, t2, t3, p, false) ||
		PointInTriangle(t0, t1, t3, p, false) ||
		PointInTriangle(t0, t1, t2, p, false)) {
		return false
	}

	d0 := SignedOrientation(t0, t1, t2, t3)
	if d0 == 0 {
		return false
	}
	d1 := SignedOrientation(p, t1, t2, t3)
	d2 := SignedOrientation(t0, p, t2, t3)
	d3 := SignedOrientation(t0, t1, p, t3)
	d4 := SignedOrientation(t0, t1, t2, p)
	return (d1 == 0 || d1 == d0) && (d2 == 0 || d2 == d0) &&
		(d3 == 0 || d3 == d0) && (d4 == 0 || d4 == d0)
}

// TrueShape reduces up to four coplanar points to the vertices of their
// convex shape: duplicates are removed in first-seen order, then any point
// contained by the remaining ones is dropped. The result has one point for
// a single location, two for a segment, three for a triangle and four for
// a quadrilateral. More than four distinct points are returned unchanged.
func TrueShape(pts []r3.Vector) []r3.Vector {
	uniq := make([]r3.Vector, 0, len(pts))
	for _, p := range pts {
		seen := false
		for _, u := range uniq {
			if p == u {
				seen = true
				break
			}
		}
		if !seen {
			uniq = append(uniq, p)
		}
	}

	if len(uniq) < 3 {
		return uniq
	}

	if len(uniq) == 3 {
		for i := 0; i < 3; i++ {
			rest := dropPoint(uniq, i)
			if PointOnSegment(rest[0], rest[1], uniq[i], false) {
				return rest
			}
		}
		return uniq
	}

	if len(uniq) > 4 {
		return uniq
	}

	for i := 0; i < 4; i++ {
		rest := dropPoint(uniq, i)
		if PointInTriangle(rest[0], rest[1], rest[2], uniq[i], false) {
			return rest
		}
	}
	return uniq
}

func dropPoint(pts []r3.Vector, i int) []r3.Vector {
	out := make([]r3.Vector, 0, len(pts)-1)
	out = append(out, pts[:i]...)
	return append(out, pts[i+1:]...)
}

// PointInPolygon reports whether q lies in the planar quadrilateral
// p0 p1 p2 p3 by splitting it along the diagonal p1 p2. With strict set,
// the outer edges are excluded while the shared diagonal still counts as
// interior.
func PointInPolygon(p0, p1, p2, p3, q r3.Vector, strict bool) bool {
	if strict {
		return PointInTriangle(p0, p1, p2, q, true) ||
			PointOnSegment(p1, p2, q, true) ||
			PointInTriangle(p1, p2, p3, q, true)
	}
	return PointInTriangle(p0, p1, p2, q, false) ||
		PointInTriangle(p1, p2, p3, q, false)
}

// InShape reports whether q lies in the convex shape spanned by up to four
// points, reducing them to their true shape first and dispatching on what
// remains. Strictness only applies to shapes with an interior to exclude
// edges or surfaces from: triangles, quadrilaterals and tetrahedra.
func InShape(pts []r3.Vector, q r3.Vector, strict bool) bool {
	if Coplanar(pts) {
		ts := TrueShape(pts)
		switch len(ts) {
		case 1:
			return ts[0] == q
		case 2:
			return PointOnSegment(ts[0], ts[1], q, false)
		case 3:
			return PointInTriangle(ts[0], ts[1], ts[2], q, strict)
		case 4:
			return PointInPolygon(ts[0], ts[1], ts[2], ts[3], q, strict)
		default:
			return false
		}
	}
	return PointInTetrahedron(pts[0], pts[1], pts[2], pts[3], q, strict)
}
