// Package gamut represents colour gamuts as convex hulls over colour
// point clouds and answers membership and boundary queries about them.
//
// A gamut is built in one colour space and keeps its triangulation,
// facet adjacency and geometric center. Membership tests use exact
// comparisons, so querying with the very coordinates the hull was built
// from classifies boundary points as inside.
package gamut

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/LarsNiebuhr/colourspace/space"
)

// Options configure hull construction.
type Options struct {
	// Gamma modifies each point's radius about Center before the hull
	// is computed. Values below one pull distant points in, letting
	// concave regions of the cloud surface as hull vertices. 1 leaves
	// the cloud untouched.
	Gamma float64

	// Center is the expansion center radii are measured from. Only
	// used when Gamma is not 1.
	Center r3.Vector
}

// DefaultOptions returns options for a plain convex hull.
func DefaultOptions() *Options {
	return &Options{
		Gamma: 1, // radii unchanged
	}
}

// Gamut is a colour gamut computed in a fixed colour space.
//
// The triangulation indexes the original point cloud, and all stored
// geometry refers to the unmodified coordinates even when the hull was
// built with a radius modification.
type Gamut struct {
	sp    space.Space
	data  *space.Points
	cloud []r3.Vector

	simplices [][3]int
	neighbors [][3]int
	vertices  []int
	center    r3.Vector
}

// New computes the gamut of the colour data in the given space. A nil
// opts builds a plain convex hull; set Gamma and Center for the radius
// modified variant.
func New(sp space.Space, data *space.Points, opts *Options) (*Gamut, error) {
	if sp == nil {
		return nil, space.ErrNilSpace
	}
	if data == nil {
		return nil, fmt.Errorf("%w: nil colour data", ErrMalformedQuery)
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	cloud := append([]r3.Vector(nil), data.Get(sp)...)

	hullInput := cloud
	if opts.Gamma != 1 {
		hullInput = warpCloud(cloud, opts.Center, opts.Gamma)
	}
	if degenerateCloud(hullInput) {
		return nil, fmt.Errorf("computing gamut hull: %w", ErrDegenerateInput)
	}

	simplices, err := buildHull(hullInput)
	if err != nil {
		return nil, fmt.Errorf("computing gamut hull: %w", err)
	}

	g := &Gamut{
		sp:        sp,
		data:      data,
		cloud:     cloud,
		simplices: simplices,
		vertices:  hullVertices(simplices),
	}
	if opts.Gamma != 1 {
		g.center = opts.Center
	} else {
		g.center = centerOfMass(g.Coordinates(g.vertices))
	}
	g.fixOrientation()
	// Adjacency is slot-aligned with vertex positions, so it is derived
	// after the facet orientations are settled.
	g.neighbors = facetNeighbors(g.simplices)
	return g, nil
}

// fixOrientation flips facets whose normal points toward the vertex
// center of mass, so that every facet winds counterclockwise seen from
// outside.
func (g *Gamut) fixOrientation() {
	c := centerOfMass(g.Coordinates(g.vertices))
	for i, s := range g.simplices {
		f0 := g.cloud[s[0]]
		f1 := g.cloud[s[1]]
		f2 := g.cloud[s[2]]
		normal := f1.Sub(f0).Cross(f2.Sub(f0))
		if f0.Sub(c).Dot(normal) < 0 {
			g.simplices[i][0], g.simplices[i][2] = s[2], s[0]
		}
	}
}

// Space returns the colour space the gamut was computed in.
func (g *Gamut) Space() space.Space { return g.sp }

// Data returns the colour data the gamut was built from.
func (g *Gamut) Data() *space.Points { return g.data }

// Center returns the gamut center: the center of mass of the hull
// vertices, or the expansion center for a radius modified hull.
func (g *Gamut) Center() r3.Vector { return g.center }

// Simplices returns the vertex index triples of the hull facets.
func (g *Gamut) Simplices() [][3]int { return g.simplices }

// Neighbors returns, for each facet, the index of the facet sharing the
// edge opposite each vertex, -1 where there is none.
func (g *Gamut) Neighbors() [][3]int { return g.neighbors }

// Vertices returns the indices of the cloud points on the hull in
// ascending order.
func (g *Gamut) Vertices() []int { return g.vertices }

// Coordinates resolves cloud indices to coordinates in the gamut's space.
func (g *Gamut) Coordinates(indices []int) []r3.Vector {
	coords := make([]r3.Vector, len(indices))
	for i, idx := range indices {
		coords[i] = g.cloud[idx]
	}
	return coords
}

// VertexCoordinates returns the hull vertex coordinates converted to the
// given space.
func (g *Gamut) VertexCoordinates(sp space.Space) []r3.Vector {
	nd := g.data.Get(sp)
	coords := make([]r3.Vector, len(g.vertices))
	for i, idx := range g.vertices {
		coords[i] = nd[idx]
	}
	return coords
}

// CenterIn returns the hull center converted to the given space.
func (g *Gamut) CenterIn(sp space.Space) r3.Vector {
	if sp == g.sp {
		return g.center
	}
	return sp.FromXYZ(g.sp.ToXYZ([]r3.Vector{g.center}))[0]
}
