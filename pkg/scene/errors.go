package scene

import "errors"

var (
	ErrUnknownScene = errors.New("scene: unknown scene name")
	ErrNoMeshPath   = errors.New("scene: mesh scene requires an OBJ path")
)
