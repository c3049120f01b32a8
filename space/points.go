package space

import (
	"fmt"
	"sync"

	"github.com/golang/geo/r3"
)

// Points holds colour data of arbitrary rank whose final axis has length
// three, together with the colour space the values are expressed in.
// Conversions to other spaces are computed once and cached, so repeated
// lookups of the same space are cheap. A Points value is safe for
// concurrent readers.
type Points struct {
	sp    Space
	shape []int
	flat  []r3.Vector

	mu    sync.Mutex
	cache map[Space][]r3.Vector
}

// NewPoints creates a Points value from scalar colour data laid out in
// row-major order with the given shape. The final axis must have length
// three and the shape must account for every value.
func NewPoints(sp Space, shape []int, values []float64) (*Points, error) {
	if sp == nil {
		return nil, ErrNilSpace
	}
	if len(shape) == 0 || shape[len(shape)-1] != 3 {
		return nil, fmt.Errorf("%w: shape %v", ErrMalformedPoints, shape)
	}
	total := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: shape %v", ErrMalformedPoints, shape)
		}
		total *= dim
	}
	if total != len(values) {
		return nil, fmt.Errorf("%w: shape %v holds %d values, got %d",
			ErrMalformedPoints, shape, total, len(values))
	}
	flat := make([]r3.Vector, total/3)
	for i := range flat {
		flat[i] = r3.Vector{X: values[3*i], Y: values[3*i+1], Z: values[3*i+2]}
	}
	return &Points{sp: sp, shape: append([]int(nil), shape...), flat: flat}, nil
}

// FromVectors creates a Points value from a flat list of colour vectors.
// A nil shape defaults to a list of points, [len(vecs), 3].
func FromVectors(sp Space, shape []int, vecs []r3.Vector) (*Points, error) {
	if sp == nil {
		return nil, ErrNilSpace
	}
	if shape == nil {
		shape = []int{len(vecs), 3}
	}
	if len(shape) == 0 || shape[len(shape)-1] != 3 {
		return nil, fmt.Errorf("%w: shape %v", ErrMalformedPoints, shape)
	}
	total := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: shape %v", ErrMalformedPoints, shape)
		}
		total *= dim
	}
	if total != 3*len(vecs) {
		return nil, fmt.Errorf("%w: shape %v holds %d points, got %d",
			ErrMalformedPoints, shape, total/3, len(vecs))
	}
	flat := append([]r3.Vector(nil), vecs...)
	return &Points{sp: sp, shape: append([]int(nil), shape...), flat: flat}, nil
}

// Space returns the colour space the data was constructed in.
func (p *Points) Space() Space { return p.sp }

// Shape returns a copy of the data shape.
func (p *Points) Shape() []int { return append([]int(nil), p.shape...) }

// NDim returns the rank of the data.
func (p *Points) NDim() int { return len(p.shape) }

// Len returns the number of colour points.
func (p *Points) Len() int { return len(p.flat) }

// Get returns the colour data converted to the target space. The result
// is cached, and callers must treat it as read-only.
func (p *Points) Get(target Space) []r3.Vector {
	if target == p.sp {
		return p.flat
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if cached, ok := p.cache[target]; ok {
		return cached
	}
	converted := target.FromXYZ(p.sp.ToXYZ(p.flat))
	if p.cache == nil {
		p.cache = make(map[Space][]r3.Vector)
	}
	p.cache[target] = converted
	return converted
}

// Values returns the colour data in its native space as flat scalars in
// row-major order.
func (p *Points) Values() []float64 {
	out := make([]float64, 3*len(p.flat))
	for i, v := range p.flat {
		out[3*i] = v.X
		out[3*i+1] = v.Y
		out[3*i+2] = v.Z
	}
	return out
}
