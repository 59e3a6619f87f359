package geometry

import "errors"

var (
	ErrEmptyBVH      = errors.New("geometry: cannot build a BVH over zero primitives")
	ErrNoBoundingBox = errors.New("geometry: primitive has no bounding box")
	ErrFaceCount     = errors.New("geometry: face indices must be a multiple of 3")
	ErrFaceIndex     = errors.New("geometry: face index out of bounds")
	ErrMaterialCount = errors.New("geometry: number of materials must match number of triangles")
)
