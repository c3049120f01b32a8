package gamut

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/LarsNiebuhr/colourspace/space"
)

// facetPlane returns the unit normal and plane offset of a facet, with
// ok false when the facet has collapsed and spans no plane.
func facetPlane(p0, p1, p2 r3.Vector) (n r3.Vector, dist float64, ok bool) {
	cr := p2.Sub(p0).Cross(p1.Sub(p0))
	norm := cr.Norm()
	if norm == 0 {
		return r3.Vector{}, 0, false
	}
	n = cr.Mul(1 / norm)
	return n, p1.Dot(n), true
}

// lineAlpha returns the point at parameter alpha on the segment from
// center to target.
func lineAlpha(alpha float64, target, center r3.Vector) r3.Vector {
	return center.Add(target.Sub(center).Mul(alpha))
}

// NearestIntersection returns the boundary point nearest to center where
// the segment from center to target crosses a hull facet. The facet
// coordinates are resolved in sp, so the result is expressed in sp.
//
// ErrNoIntersection is returned when no facet is crossed between the two
// endpoints, for example when both lie strictly inside the hull.
func (g *Gamut) NearestIntersection(sp space.Space, target, center r3.Vector) (r3.Vector, error) {
	if sp == nil {
		return r3.Vector{}, space.ErrNilSpace
	}
	nd := g.data.Get(sp)

	best := math.Inf(1)
	found := false
	for _, el := range g.simplices {
		p0, p1, p2 := nd[el[0]], nd[el[1]], nd[el[2]]
		n, dist, ok := facetPlane(p0, p1, p2)
		if !ok {
			continue
		}
		denom := n.Dot(target.Sub(center))
		if denom == 0 {
			continue
		}
		alpha := (dist - n.Dot(center)) / denom
		if alpha < 0 || alpha > 1 {
			continue
		}
		if !PointInTriangle(p0, p1, p2, lineAlpha(alpha, target, center), false) {
			continue
		}
		if alpha < best {
			best = alpha
			found = true
		}
	}
	if !found {
		return r3.Vector{}, ErrNoIntersection
	}
	return lineAlpha(best, target, center), nil
}

// Clip maps every colour point outside the gamut onto the boundary point
// where the segment toward the hull center crosses it. Points inside are
// left untouched. The result keeps the shape and space of the input.
//
// As with IsInside, membership is evaluated against the hull geometry as
// built, so callers normally pass the space the gamut was computed in.
func (g *Gamut) Clip(sp space.Space, data *space.Points) (*space.Points, error) {
	nd, _, err := g.queryVectors(sp, data)
	if err != nil {
		return nil, err
	}
	center := g.CenterIn(sp)
	out := append([]r3.Vector(nil), nd...)
	for i, p := range nd {
		if g.contains(p) {
			continue
		}
		clipped, err := g.NearestIntersection(sp, p, center)
		if err != nil {
			return nil, fmt.Errorf("clipping point %d: %w", i, err)
		}
		out[i] = clipped
	}
	return space.FromVectors(sp, data.Shape(), out)
}
