package image

import "errors"

var (
	// ErrNotImageShaped is returned when colour data is not a
	// rows x cols x 3 grid.
	ErrNotImageShaped = errors.New("colour data is not shaped as an image")
)
