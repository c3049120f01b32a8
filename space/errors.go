package space

import "errors"

var (
	// ErrMalformedPoints is returned when colour data does not end in an axis of length three.
	ErrMalformedPoints = errors.New("colour data must have a final axis of length three")

	// ErrNilSpace is returned when a nil colour space is passed.
	ErrNilSpace = errors.New("colour space is nil")

	// ErrBadMatrix is returned when a linear transform matrix cannot be inverted.
	ErrBadMatrix = errors.New("linear transform matrix is not invertible")

	// ErrShapeMismatch is returned when point and metric counts disagree.
	ErrShapeMismatch = errors.New("metric count does not match point count")
)
