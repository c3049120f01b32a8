// Package image applies finite difference operators to colour images.
//
// An image is colour data on a rows x cols grid. All operators replicate
// the boundary pixels, yielding zero derivatives across the image edge.
package image

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/LarsNiebuhr/colourspace/space"
)

// Image is a colour image backed by a rows x cols x 3 Points grid.
type Image struct {
	pts        *space.Points
	rows, cols int
}

// New wraps colour data as an image. The data must have rank three with a
// final axis of length three.
func New(pts *space.Points) (*Image, error) {
	if pts == nil {
		return nil, fmt.Errorf("%w: nil colour data", ErrNotImageShaped)
	}
	shape := pts.Shape()
	if len(shape) != 3 || shape[2] != 3 {
		return nil, fmt.Errorf("%w: shape %v", ErrNotImageShaped, shape)
	}
	return &Image{pts: pts, rows: shape[0], cols: shape[1]}, nil
}

// FromVectors builds an image from pixel vectors in row-major order.
func FromVectors(sp space.Space, rows, cols int, vecs []r3.Vector) (*Image, error) {
	pts, err := space.FromVectors(sp, []int{rows, cols, 3}, vecs)
	if err != nil {
		return nil, err
	}
	return New(pts)
}

// Points returns the underlying colour data.
func (im *Image) Points() *space.Points { return im.pts }

// Space returns the colour space of the pixels.
func (im *Image) Space() space.Space { return im.pts.Space() }

// Rows returns the number of pixel rows.
func (im *Image) Rows() int { return im.rows }

// Cols returns the number of pixel columns.
func (im *Image) Cols() int { return im.cols }

// At returns the pixel at row i, column j.
func (im *Image) At(i, j int) r3.Vector {
	return im.vectors()[i*im.cols+j]
}

func (im *Image) vectors() []r3.Vector {
	return im.pts.Get(im.pts.Space())
}

// withVectors wraps pixel vectors in a new image with this image's space
// and dimensions. The dimensions are those of a valid image, so
// construction cannot fail.
func (im *Image) withVectors(vecs []r3.Vector) *Image {
	out, err := FromVectors(im.pts.Space(), im.rows, im.cols, vecs)
	if err != nil {
		panic(err)
	}
	return out
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// ShiftI returns the image with every pixel row replaced by the row d
// steps further along the i axis, replicating the boundary rows.
func (im *Image) ShiftI(d int) *Image {
	src := im.vectors()
	out := make([]r3.Vector, len(src))
	for i := 0; i < im.rows; i++ {
		si := clampIndex(i+d, im.rows-1)
		copy(out[i*im.cols:(i+1)*im.cols], src[si*im.cols:(si+1)*im.cols])
	}
	return im.withVectors(out)
}

// ShiftJ returns the image with every pixel column replaced by the column
// d steps further along the j axis, replicating the boundary columns.
func (im *Image) ShiftJ(d int) *Image {
	src := im.vectors()
	out := make([]r3.Vector, len(src))
	for i := 0; i < im.rows; i++ {
		base := i * im.cols
		for j := 0; j < im.cols; j++ {
			sj := clampIndex(j+d, im.cols-1)
			out[base+j] = src[base+sj]
		}
	}
	return im.withVectors(out)
}

func subImages(a, b *Image) *Image {
	av, bv := a.vectors(), b.vectors()
	out := make([]r3.Vector, len(av))
	for i := range out {
		out[i] = av[i].Sub(bv[i])
	}
	return a.withVectors(out)
}

func scaleImage(a *Image, f float64) *Image {
	av := a.vectors()
	out := make([]r3.Vector, len(av))
	for i := range out {
		out[i] = av[i].Mul(f)
	}
	return a.withVectors(out)
}

// ForwardDiffI returns the forward finite difference along i.
func (im *Image) ForwardDiffI() *Image {
	return subImages(im.ShiftI(1), im)
}

// BackwardDiffI returns the backward finite difference along i.
func (im *Image) BackwardDiffI() *Image {
	return subImages(im, im.ShiftI(-1))
}

// CenteredDiffI returns the centered finite difference along i.
func (im *Image) CenteredDiffI() *Image {
	return scaleImage(subImages(im.ShiftI(1), im.ShiftI(-1)), 0.5)
}

// ForwardDiffJ returns the forward finite difference along j.
func (im *Image) ForwardDiffJ() *Image {
	return subImages(im.ShiftJ(1), im)
}

// BackwardDiffJ returns the backward finite difference along j.
func (im *Image) BackwardDiffJ() *Image {
	return subImages(im, im.ShiftJ(-1))
}

// CenteredDiffJ returns the centered finite difference along j.
func (im *Image) CenteredDiffJ() *Image {
	return scaleImage(subImages(im.ShiftJ(1), im.ShiftJ(-1)), 0.5)
}

// Laplacian returns the five point Laplacian stencil of the image.
func (im *Image) Laplacian() *Image {
	src := im.vectors()
	sjp := im.ShiftJ(1).vectors()
	sjm := im.ShiftJ(-1).vectors()
	sip := im.ShiftI(1).vectors()
	sim := im.ShiftI(-1).vectors()
	out := make([]r3.Vector, len(src))
	for k := range out {
		out[k] = sjp[k].Add(sjm[k]).Add(sip[k]).Add(sim[k]).Sub(src[k].Mul(4))
	}
	return im.withVectors(out)
}
