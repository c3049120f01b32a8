package gamut

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
)

// degenerateCloud reports whether the cloud cannot span a 3-D volume,
// searching for a point basis with a nonzero triple product.
func degenerateCloud(cloud []r3.Vector) bool {
	if len(cloud) < 4 {
		return true
	}
	p0 := cloud[0]
	var b1, b2 r3.Vector
	stage := 0
	for _, p := range cloud[1:] {
		v := p.Sub(p0)
		switch stage {
		case 0:
			if v != (r3.Vector{}) {
				b1 = v
				stage = 1
			}
		case 1:
			if b1.Cross(v) != (r3.Vector{}) {
				b2 = v
				stage = 2
			}
		case 2:
			if b1.Cross(b2).Dot(v) != 0 {
				return false
			}
		}
	}
	return true
}

// warpCloud moves the cloud so that center becomes the origin and raises
// each point's radius to the power gamma. The center itself maps to the
// origin.
func warpCloud(cloud []r3.Vector, center r3.Vector, gamma float64) []r3.Vector {
	warped := make([]r3.Vector, len(cloud))
	for i, p := range cloud {
		v := p.Sub(center)
		r := v.Norm()
		if r == 0 {
			continue
		}
		warped[i] = v.Mul(math.Pow(r, gamma) / r)
	}
	return warped
}

// buildHull triangulates the convex hull of the cloud and decodes the
// result into vertex index triples. The indices refer to the input cloud.
func buildHull(cloud []r3.Vector) ([][3]int, error) {
	hull := new(quickhull.QuickHull).ConvexHull(cloud, true, true, 0)
	idx := hull.Indices
	if len(idx) < 12 || len(idx)%3 != 0 {
		return nil, ErrHullConstruction
	}
	simplices := make([][3]int, len(idx)/3)
	for i := range simplices {
		simplices[i] = [3]int{idx[3*i], idx[3*i+1], idx[3*i+2]}
	}
	return simplices, nil
}

// facetNeighbors pairs each facet with the facet sharing the edge opposite
// each of its vertices, -1 where the edge is unshared.
func facetNeighbors(simplices [][3]int) [][3]int {
	type edgeRef struct {
		facet, slot int
	}
	edges := make(map[[2]int][]edgeRef, 3*len(simplices)/2)
	for f, s := range simplices {
		for k := 0; k < 3; k++ {
			a, b := s[(k+1)%3], s[(k+2)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			edges[key] = append(edges[key], edgeRef{facet: f, slot: k})
		}
	}
	neighbors := make([][3]int, len(simplices))
	for i := range neighbors {
		neighbors[i] = [3]int{-1, -1, -1}
	}
	for _, refs := range edges {
		if len(refs) != 2 {
			continue
		}
		neighbors[refs[0].facet][refs[0].slot] = refs[1].facet
		neighbors[refs[1].facet][refs[1].slot] = refs[0].facet
	}
	return neighbors
}

// hullVertices collects the distinct vertex indices of the triangulation
// in ascending order.
func hullVertices(simplices [][3]int) []int {
	seen := make(map[int]struct{}, 3*len(simplices))
	for _, s := range simplices {
		for _, v := range s {
			seen[v] = struct{}{}
		}
	}
	verts := make([]int, 0, len(seen))
	for v := range seen {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	return verts
}

// centerOfMass returns the mean of the points.
func centerOfMass(pts []r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pts)))
}
