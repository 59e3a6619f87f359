package loaders

import "errors"

var (
	ErrOBJSyntax = errors.New("loaders: malformed OBJ statement")
	ErrOBJIndex  = errors.New("loaders: OBJ face index out of range")
	ErrOBJEmpty  = errors.New("loaders: OBJ file contains no faces")
)
