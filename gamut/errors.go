package gamut

import "errors"

var (
	// ErrDegenerateInput is returned when a point cloud does not span
	// three dimensions and no hull can be built from it.
	ErrDegenerateInput = errors.New("point cloud does not span three dimensions")

	// ErrHullConstruction is returned when hull computation produces an
	// unusable triangulation.
	ErrHullConstruction = errors.New("convex hull construction failed")

	// ErrNoIntersection is returned when a ray does not cross the hull
	// boundary between its endpoints.
	ErrNoIntersection = errors.New("no intersection with the hull boundary")

	// ErrMalformedQuery is returned when query data is missing or not
	// shaped as colour points.
	ErrMalformedQuery = errors.New("query data is malformed")
)
