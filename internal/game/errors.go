package game

import "errors"

var (
	// ErrOutOfBounds is returned for any cell access outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrInvalidSize is returned when a grid is built with a non-positive dimension.
	ErrInvalidSize = errors.New("grid dimensions must be positive")
	// ErrFieldMismatch is returned when a distance field does not match the grid it is applied to.
	ErrFieldMismatch = errors.New("distance field size does not match grid")
	// ErrUnknownEntity is returned for an Entity value outside the defined set.
	ErrUnknownEntity = errors.New("unknown entity type")
)
