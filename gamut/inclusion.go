package gamut

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/golang/geo/r3"

	"github.com/LarsNiebuhr/colourspace/space"
)

// Mask holds inclusion results for a batch of colour points. Its shape is
// the shape of the queried data with the final coordinate axis removed;
// a single point yields shape [1]. Values are stored flat in row-major
// order.
type Mask struct {
	shape []int
	flat  []bool
}

// Shape returns a copy of the mask shape.
func (m *Mask) Shape() []int { return append([]int(nil), m.shape...) }

// Len returns the number of entries.
func (m *Mask) Len() int { return len(m.flat) }

// Flat returns the entries in row-major order.
func (m *Mask) Flat() []bool { return m.flat }

// At returns the entry at the given multidimensional index.
func (m *Mask) At(indices ...int) bool {
	if len(indices) != len(m.shape) {
		panic("gamut: mask index rank mismatch")
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= m.shape[i] {
			panic("gamut: mask index out of range")
		}
		offset = offset*m.shape[i] + idx
	}
	return m.flat[offset]
}

// IsInside tests every point of the colour data for membership in the
// gamut and returns the results as a mask mirroring the data shape.
//
// The coordinates are taken in sp and compared against the hull geometry
// as built, so callers normally pass the space the gamut was computed in.
func (g *Gamut) IsInside(sp space.Space, data *space.Points) (*Mask, error) {
	nd, shape, err := g.queryVectors(sp, data)
	if err != nil {
		return nil, err
	}
	flat := make([]bool, len(nd))
	for i, p := range nd {
		flat[i] = g.contains(p)
	}
	return &Mask{shape: shape, flat: flat}, nil
}

// IsInsideParallel is IsInside with the points divided between workers.
// A workers value below one uses one worker per available CPU.
func (g *Gamut) IsInsideParallel(sp space.Space, data *space.Points, workers int) (*Mask, error) {
	nd, shape, err := g.queryVectors(sp, data)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	flat := make([]bool, len(nd))
	chunk := (len(nd) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(nd); start += chunk {
		end := min(start+chunk, len(nd))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				flat[i] = g.contains(nd[i])
			}
		}(start, end)
	}
	wg.Wait()
	return &Mask{shape: shape, flat: flat}, nil
}

func (g *Gamut) queryVectors(sp space.Space, data *space.Points) ([]r3.Vector, []int, error) {
	if sp == nil {
		return nil, nil, space.ErrNilSpace
	}
	if data == nil {
		return nil, nil, fmt.Errorf("%w: nil colour data", ErrMalformedQuery)
	}
	shape := []int{1}
	if data.NDim() > 1 {
		s := data.Shape()
		shape = s[:len(s)-1]
	}
	return data.Get(sp), shape, nil
}

// contains tests a single point for membership using the inclusion count
// of Feito and Torres. Every facet is joined with the coordinate origin
// into a signed tetrahedron; the accumulated signed crossings decide
// membership, with per-vertex bookkeeping so shared original edges are
// only credited once per orientation.
func (g *Gamut) contains(p r3.Vector) bool {
	var origin r3.Vector
	inclusion := 0.0
	vPlus := make(map[int]bool)
	vMinus := make(map[int]bool)

	for _, el := range g.simplices {
		f0 := g.cloud[el[0]]
		f1 := g.cloud[el[1]]
		f2 := g.cloud[el[2]]

		// A point on the hull surface itself is inside.
		if InShape([]r3.Vector{f0, f1, f2}, p, false) {
			return true
		}

		signFace := SignedOrientation(origin, f0, f1, f2)

		// Original edges of the first and last facet vertex.
		if InShape([]r3.Vector{origin, f0}, p, false) &&
			credit(signFace, el[0], vPlus, vMinus) {
			inclusion += float64(signFace)
		}
		if InShape([]r3.Vector{origin, f2}, p, false) &&
			credit(signFace, el[2], vPlus, vMinus) {
			inclusion += float64(signFace)
		}

		switch {
		case InShape([]r3.Vector{origin, f0, f1}, p, true) ||
			InShape([]r3.Vector{origin, f1, f2}, p, true) ||
			InShape([]r3.Vector{origin, f2, f0}, p, true):
			// P is strictly inside an original triangle of the facet.
			inclusion += 0.5 * float64(signFace)
		case InShape([]r3.Vector{origin, f1}, p, false) &&
			credit(signFace, el[1], vPlus, vMinus):
			// P is on the original edge of the middle vertex.
			inclusion += float64(signFace)
		case InShape([]r3.Vector{origin, f0, f1, f2}, p, true):
			// P is strictly inside the original tetrahedron.
			inclusion += float64(signFace)
		}
	}
	return inclusion > 0
}

// credit reports whether the vertex may still be counted for the given
// orientation and marks it as used.
func credit(sign, vertex int, vPlus, vMinus map[int]bool) bool {
	switch {
	case sign > 0 && !vPlus[vertex]:
		vPlus[vertex] = true
		return true
	case sign < 0 && !vMinus[vertex]:
		vMinus[vertex] = true
		return true
	}
	return false
}
